package commands

import (
	"dsc-metrics/internal/config"
	"dsc-metrics/internal/logging"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "dsc-metrics",
	Short: "dsc-metrics ingests Zammad helpdesk tickets and computes dashboard aggregates",
	Long: `A ticket metrics pipeline: syncs Zammad tickets into Postgres and computes
per-sector dashboard aggregates (state counts with backlog carry-forward,
lead times, weekday/hour distributions, satisfaction histograms).`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("dsc-metrics starting")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
