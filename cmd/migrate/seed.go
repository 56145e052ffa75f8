package main

import (
	"fmt"

	assetapp "github.com/KRaymonne/appli-sitinfra-sub004/internal/application/asset"
	financeapp "github.com/KRaymonne/appli-sitinfra-sub004/internal/application/finance"
	identityapp "github.com/KRaymonne/appli-sitinfra-sub004/internal/application/identity"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/config"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/logger"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/migration"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/persistence"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert fixtures from a YAML file; existing records are skipped",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fx, err := migration.LoadFixtures(seedFile)
		if err != nil {
			return err
		}

		db, err := persistence.NewDatabase(&cfg.Database, logger.NewGormLogger(log, gormlogger.Warn))
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Warn("Failed to close database", zap.Error(err))
			}
		}()
		if db.Driver == config.DriverSQLite {
			if err := db.AutoMigrate(); err != nil {
				return err
			}
		}

		// Seeding creates accounts only, so no tokens exist to revoke.
		users := identityapp.NewUserService(persistence.NewGormUserRepository(db.DB), nil, cfg.JWT.Expiration, log)
		banks := financeapp.NewBankService(persistence.NewGormBankRepository(db.DB), log)
		equipment := assetapp.NewEquipmentService(persistence.NewGormEquipmentRepository(db.DB), log)

		res, err := migration.NewSeeder(users, banks, equipment, log).Seed(cmd.Context(), fx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %d, skipped %d\n", res.Created, res.Skipped)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "seeds/demo.yaml", "YAML fixtures to load")
	rootCmd.AddCommand(seedCmd)
}
