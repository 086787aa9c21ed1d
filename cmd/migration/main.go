package main

import (
	"ehr-bundle-service/internal/app/config"
	"ehr-bundle-service/internal/app/drivers/database"
	"ehr-bundle-service/internal/app/drivers/logger"
	"os"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	log := logger.NewZapLogger(driverConfig, internalConfig)
	defer log.Sync()

	var steps int
	run := func(direction migrate.MigrationDirection) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			db := database.NewPostgresDB(driverConfig, log)
			defer db.Close()

			_, err := database.Migrate(db, driverConfig.PostgresDB.MigrationDir, direction, steps, log)
			return err
		}
	}

	rootCmd := &cobra.Command{
		Use:           "migration",
		Short:         "Apply bundle store schema migrations to postgres",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE:  run(migrate.Up),
	}
	upCmd.Flags().IntVar(&steps, "max", -1, "maximum number of migrations to apply")

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		RunE:  run(migrate.Down),
	}
	downCmd.Flags().IntVar(&steps, "max", 1, "maximum number of migrations to roll back")

	rootCmd.AddCommand(upCmd, downCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error("Migration failed", zap.Error(err))
		os.Exit(1)
	}
}
