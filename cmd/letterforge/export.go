package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/letterforge/internal/export"
)

var (
	exportOwner string
	exportDir   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write an owner's categories as one text file per category",
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportOwner == "" {
			return fmt.Errorf("--owner is required")
		}

		a, err := buildApp(cmd.Context(), cfg, slog.Default())
		if err != nil {
			return err
		}
		defer a.Close()

		cats, err := a.svc.Categories(cmd.Context(), exportOwner)
		if err != nil {
			return err
		}
		paths, err := export.WriteDir(exportDir, cats)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOwner, "owner", "", "teacher whose categories to export")
	exportCmd.Flags().StringVar(&exportDir, "out", ".", "output directory")
}
