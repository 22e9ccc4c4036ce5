package metrics

import "time"

// TemporalWindowDays is the trailing period for the weekday and hourly
// distributions.
const TemporalWindowDays = 30

// ByWeekday buckets tickets created in the trailing 30 days by weekday,
// split into the Portal and Telefone channels. Output is dense: all seven
// days appear in Monday-first order even with zero counts.
func ByWeekday(tickets []Ticket, now time.Time) WeekdayDistribution {
	cutoff := now.In(Recife).AddDate(0, 0, -TemporalWindowDays)

	portal := make(map[time.Weekday]int)
	phone := make(map[time.Weekday]int)

	for _, t := range tickets {
		if t.Created == nil || t.Created.Before(cutoff) {
			continue
		}
		switch t.Channel {
		case ChannelPortal:
			portal[t.Created.Weekday()]++
		case ChannelTelefone:
			phone[t.Created.Weekday()]++
		}
	}

	dist := WeekdayDistribution{
		Days:     make([]string, 0, len(weekdayOrder)),
		Portal:   make([]int, 0, len(weekdayOrder)),
		Telefone: make([]int, 0, len(weekdayOrder)),
	}
	for _, day := range weekdayOrder {
		dist.Days = append(dist.Days, weekdayNames[day])
		dist.Portal = append(dist.Portal, portal[day])
		dist.Telefone = append(dist.Telefone, phone[day])
	}
	return dist
}

// ByHour buckets tickets created in the trailing 30 days by hour of day,
// same channel split. All 24 hours are present by construction.
func ByHour(tickets []Ticket, now time.Time) HourlyDistribution {
	cutoff := now.In(Recife).AddDate(0, 0, -TemporalWindowDays)

	var dist HourlyDistribution
	for _, t := range tickets {
		if t.Created == nil || t.Created.Before(cutoff) {
			continue
		}
		hour := t.Created.Hour()
		switch t.Channel {
		case ChannelPortal:
			dist.Portal[hour]++
		case ChannelTelefone:
			dist.Telefone[hour]++
		}
	}
	return dist
}
