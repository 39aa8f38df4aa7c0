package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/SAP-F-2025/participation-service/internal/config"
	"github.com/spf13/cobra"
)

func newExportCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var userID uint
	var outDir string

	cmd := &cobra.Command{
		Use:   "export <participation-id>",
		Short: "Write the task status report of a participation to an xlsx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			participationID, err := parseID(args[0])
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			rt, err := newRuntime(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			file, err := rt.services.Export.ExportTaskStatusReport(cmd.Context(), participationID, userID)
			if err != nil {
				return err
			}

			path := filepath.Join(outDir, file.Filename)
			if err := os.WriteFile(path, file.Content, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().UintVar(&userID, "user", 0, "ID of the user requesting the export")
	cmd.Flags().StringVar(&outDir, "out", ".", "Output directory")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", raw)
	}
	return uint(id), nil
}
