package metrics

import "time"

// Sector is a canonical organizational grouping. Multiple raw Zammad queue
// names map many-to-one onto a sector; the campus units keep their own name.
type Sector string

const (
	SectorSistemas  Sector = "Sistemas"
	SectorSuporte   Sector = "Suporte ao Usuário"
	SectorServicos  Sector = "Serviços Computacionais"
	SectorMicroInfo Sector = "Micro Informática"
	SectorConect    Sector = "Conectividade"
	SectorCODAI     Sector = "CODAI"
	SectorUABJ      Sector = "UABJ"
	SectorUAST      Sector = "UAST"
	SectorUACSA     Sector = "UACSA"
	SectorUAEADTec  Sector = "UAEADTec"
)

// StdSectors are the central IT teams; CampusSectors the university campus
// units. Presentation renders them as two separate lead-time tables.
var (
	StdSectors    = []Sector{SectorSistemas, SectorSuporte, SectorServicos, SectorMicroInfo, SectorConect}
	CampusSectors = []Sector{SectorCODAI, SectorUABJ, SectorUAST, SectorUACSA, SectorUAEADTec}
	AllSectors    = append(append([]Sector{}, StdSectors...), CampusSectors...)
)

// groupToSector maps raw Zammad queue names onto the sector taxonomy.
var groupToSector = map[string]Sector{
	"SIG@":                    SectorSistemas,
	"SIGAA":                   SectorSistemas,
	"SIPAC":                   SectorSistemas,
	"SIGRH":                   SectorSistemas,
	"Sistemas Diversos":       SectorSistemas,
	"Web Sites":               SectorSistemas,
	"Triagem":                 SectorSuporte,
	"Serviços Computacionais": SectorServicos,
	"Micro Informática":       SectorMicroInfo,
	"Conectividade":           SectorConect,
	"CODAI":                   SectorCODAI,
	"UABJ":                    SectorUABJ,
	"UAST":                    SectorUAST,
	"UACSA":                   SectorUACSA,
	"UAEADTec":                SectorUAEADTec,
}

// rawGroupOrder fixes iteration order for RawGroups and the partition tests.
var rawGroupOrder = []string{
	"SIG@", "SIGAA", "SIPAC", "SIGRH", "Sistemas Diversos", "Web Sites",
	"Triagem", "Serviços Computacionais", "Micro Informática", "Conectividade",
	"CODAI", "UABJ", "UAST", "UACSA", "UAEADTec",
}

// RawGroups returns the raw queue names constituting a sector, in a stable
// order. Backlog baseline queries run against these raw names because the
// store keeps the unmapped group field.
func RawGroups(sector Sector) []string {
	var groups []string
	for _, g := range rawGroupOrder {
		if groupToSector[g] == sector {
			groups = append(groups, g)
		}
	}
	return groups
}

// SectorFor maps a raw queue name onto its sector. Unknown names return false.
func SectorFor(rawGroup string) (Sector, bool) {
	s, ok := groupToSector[rawGroup]
	return s, ok
}

// Ticket lifecycle states, display vocabulary.
const (
	StateClosed   = "Fechado"
	StateOpen     = "Aberto"
	StateResolved = "Resolvido"
	StateNew      = "Novo"
	StateWaiting  = "Aguardando Resposta"
	StatePending  = "Pendente"
	StateReturn   = "Retorno"
)

// RawStateClosed is the source vocabulary for a closed ticket, used by
// baseline count queries that run against unmapped stored rows.
const RawStateClosed = "closed"

// stateMap maps the source lifecycle vocabulary onto the display vocabulary.
// Values outside the map (merge sentinels and the like) normalize to the
// empty string and are filtered before aggregation.
var stateMap = map[string]string{
	"closed":              StateClosed,
	"open":                StateOpen,
	"resolvido":           StateResolved,
	"new":                 StateNew,
	"aguardando resposta": StateWaiting,
	"pendente":            StatePending,
	"retorno":             StateReturn,
}

// Channel is the collapsed opening channel of a ticket.
type Channel string

const (
	ChannelPortal   Channel = "Portal"
	ChannelTelefone Channel = "Telefone"
)

// channelMap collapses the raw article types into the two display channels.
var channelMap = map[string]Channel{
	"email": ChannelPortal,
	"web":   ChannelPortal,
	"note":  ChannelPortal,
	"phone": ChannelTelefone,
}

// monthNames are the Portuguese month names used in "MonthName/YY" labels.
var monthNames = map[time.Month]string{
	time.January:   "Janeiro",
	time.February:  "Fevereiro",
	time.March:     "Março",
	time.April:     "Abril",
	time.May:       "Maio",
	time.June:      "Junho",
	time.July:      "Julho",
	time.August:    "Agosto",
	time.September: "Setembro",
	time.October:   "Outubro",
	time.November:  "Novembro",
	time.December:  "Dezembro",
}

// weekdayNames are the localized weekday labels, Monday first.
var weekdayNames = map[time.Weekday]string{
	time.Monday:    "Segunda",
	time.Tuesday:   "Terça",
	time.Wednesday: "Quarta",
	time.Thursday:  "Quinta",
	time.Friday:    "Sexta",
	time.Saturday:  "Sábado",
	time.Sunday:    "Domingo",
}

// weekdayOrder fixes the chart axis: Monday through Sunday.
var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// Recife is the fixed reporting offset (America/Recife, no DST).
var Recife = time.FixedZone("America/Recife", -3*60*60)
