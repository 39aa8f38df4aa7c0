package cli

import (
	"fmt"

	"github.com/SAP-F-2025/participation-service/internal/config"
	"github.com/spf13/cobra"
)

func newCacheCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached feedback and hints",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "invalidate <exercise-id>",
		Short: "Drop the cached hints and result feedback of an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exerciseID, err := parseID(args[0])
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
			if rt.redis == nil {
				return fmt.Errorf("redis is unavailable")
			}

			if err := rt.services.Hint.InvalidateExercise(cmd.Context(), exerciseID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "invalidated cache of exercise %d\n", exerciseID)
			return nil
		},
	})

	return cmd
}
