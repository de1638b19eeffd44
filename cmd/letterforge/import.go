package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/letterforge/internal/ingest"
)

var importCfg ingest.Config

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a directory of .txt letters as writing samples",
	RunE: func(cmd *cobra.Command, args []string) error {
		if importCfg.Owner == "" || importCfg.Dir == "" {
			return fmt.Errorf("--owner and --dir are required")
		}
		logger := slog.Default()

		a, err := buildApp(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		_, err = ingest.NewRunner(importCfg, a.svc, cmd.OutOrStdout(), logger).Run(cmd.Context())
		return err
	},
}

func init() {
	importCmd.Flags().StringVar(&importCfg.Dir, "dir", "", "directory of .txt letters")
	importCmd.Flags().StringVar(&importCfg.Owner, "owner", "", "teacher the samples belong to")
	importCmd.Flags().StringVar(&importCfg.StatePath, "state", ingest.DefaultStatePath, "resume state file")
	importCmd.Flags().BoolVar(&importCfg.DryRun, "dry-run", false, "list files without saving")
}
