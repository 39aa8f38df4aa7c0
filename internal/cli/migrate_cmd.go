package cli

import (
	"github.com/SAP-F-2025/participation-service/internal/config"
	"github.com/SAP-F-2025/participation-service/internal/utils"
	"github.com/SAP-F-2025/participation-service/pkg"
	"github.com/spf13/cobra"
)

func newMigrateCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := pkg.InitDatabase(cfg)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			logger := utils.NewLogger(cfg.Environment)
			if err := pkg.Migrate(db); err != nil {
				return err
			}
			logger.Info("Database migrated")
			return nil
		},
	}
}

func runMigrations(rt *runtime) error {
	if err := pkg.Migrate(rt.db); err != nil {
		return err
	}
	rt.logger.Info("Database migrated")
	return nil
}
