package commands

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"dsc-metrics/internal/ingest"
	"dsc-metrics/internal/store"
	"dsc-metrics/internal/zammad"
)

var ingestDays int

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Sync tickets from Zammad into the store",
	Long: `Fetches tickets from Zammad and merges them into Postgres by ticket number.
With --days N only tickets touched within the trailing N days are fetched;
without it the whole listing is synced. Intended to be triggered from cron.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		st, err := store.Connect(ctx, cfg.Postgres)
		if err != nil {
			return err
		}
		defer st.Close()

		client := zammad.NewClient(cfg.Zammad)

		result, err := ingest.Run(ctx, client, st, ingest.Options{Days: ingestDays})
		if err != nil {
			return err
		}

		log.Info().
			Int("fetched", result.Fetched).
			Int("inserted", result.Inserted).
			Int("updated", result.Updated).
			Int("skipped", result.Skipped).
			Msg("Ingest completed")
		return nil
	},
}

func init() {
	ingestCmd.Flags().IntVar(&ingestDays, "days", 0, "sync only tickets touched within the trailing N days (0 = full sync)")
	rootCmd.AddCommand(ingestCmd)
}
