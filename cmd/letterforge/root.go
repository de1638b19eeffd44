package main

import (
	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/letterforge/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "letterforge",
	Short: "Recommendation letters assembled from a teacher's own writing",
	Long: `Letterforge learns a teacher's voice from past recommendation letters.

Samples are split into sentences and sorted into five rhetorical
categories by a local language model. New letters reuse the structure of
one past letter, refill it from the whole corpus, keep the teacher's
usual opening and closing lines, and are then personalized for a student.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		setupLogging(cfg.LogLevel)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, importCmd, exportCmd, reanalyzeCmd)
}
