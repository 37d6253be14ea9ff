package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/userbase/internal/config"
	"github.com/templui/userbase/internal/db"
	"github.com/templui/userbase/internal/repository"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the schema",
	}

	cmd.AddCommand(migrateUpCmd())
	cmd.AddCommand(migrateDownCmd())
	return cmd
}

func migrateUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply SQL migrations, or create the mongo indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			switch cfg.DBDriver {
			case config.DriverMongo:
				uri := db.MongoURI(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword)
				client, database, err := db.ConnectMongo(cmd.Context(), uri, cfg.DBName)
				if err != nil {
					return err
				}
				defer func() { _ = client.Disconnect(cmd.Context()) }()

				err = repository.EnsureMongoIndexes(cmd.Context(), database)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "indexes ensured")
				return nil

			case config.DriverSQLite, config.DriverPgx:
				database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
				if err != nil {
					return err
				}
				defer func() { _ = db.Close(database) }()

				err = db.RunMigrations(database.DB, cfg.DBDriver)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
				return nil
			}

			return fmt.Errorf("driver %q has no schema to migrate", cfg.DBDriver)
		},
	}
}

func migrateDownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent SQL migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if cfg.DBDriver != config.DriverSQLite && cfg.DBDriver != config.DriverPgx {
				return fmt.Errorf("driver %q has no migrations to roll back", cfg.DBDriver)
			}

			database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(database) }()

			err = db.MigrateDown(database.DB, cfg.DBDriver)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "rolled back one migration")
			return nil
		},
	}
}
