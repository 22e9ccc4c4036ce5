package commands

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"dsc-metrics/internal/metrics"
	"dsc-metrics/internal/store"
	"dsc-metrics/internal/survey"
)

var reportSector string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute the aggregate bundle and emit it as JSON",
	Long: `Computes the dashboard aggregates from the current store contents and
writes them to stdout as JSON. With --sector only that sector's bundle is
produced; without it the unfiltered view plus every sector.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		now := time.Now()

		st, err := store.Connect(ctx, cfg.Postgres)
		if err != nil {
			return err
		}
		defer st.Close()

		src := survey.NewSource(cfg.Survey)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		if reportSector != "" {
			snap, err := metrics.LoadSnapshot(ctx, st, now)
			if err != nil {
				return err
			}
			responses, err := src.Responses(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("Survey feed unavailable; skipping satisfaction histogram")
				responses = nil
			}
			report, err := metrics.BuildReport(ctx, st, snap, responses, metrics.Sector(reportSector), now)
			if err != nil {
				return err
			}
			return enc.Encode(report)
		}

		reports, err := metrics.BuildAllReports(ctx, st, src, now)
		if err != nil {
			return err
		}
		return enc.Encode(reports)
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportSector, "sector", "", "restrict the bundle to one sector (e.g. \"Sistemas\")")
	rootCmd.AddCommand(reportCmd)
}
