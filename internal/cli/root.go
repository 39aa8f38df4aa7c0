package cli

import (
	"github.com/SAP-F-2025/participation-service/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level command. loadConfig is called lazily by
// each subcommand so that --help works without an environment.
func NewRootCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	root := &cobra.Command{
		Use:           "participation-service",
		Short:         "Participation view state for programming exercises, exams and conversations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(loadConfig),
		newMigrateCmd(loadConfig),
		newExportCmd(loadConfig),
		newCacheCmd(loadConfig),
	)

	return root
}
