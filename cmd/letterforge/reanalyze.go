package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var reanalyzeOwner string

var reanalyzeCmd = &cobra.Command{
	Use:   "reanalyze",
	Short: "Retry categorization of samples saved while the model was unavailable",
	RunE: func(cmd *cobra.Command, args []string) error {
		if reanalyzeOwner == "" {
			return fmt.Errorf("--owner is required")
		}

		a, err := buildApp(cmd.Context(), cfg, slog.Default())
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.svc.Reanalyze(cmd.Context(), reanalyzeOwner)
		fmt.Fprintf(cmd.OutOrStdout(), "Samples analyzed: %d\n", n)
		return err
	},
}

func init() {
	reanalyzeCmd.Flags().StringVar(&reanalyzeOwner, "owner", "", "teacher whose samples to retry")
}
