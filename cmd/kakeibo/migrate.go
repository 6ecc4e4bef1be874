package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"kakeibo/internal/cli"
	"kakeibo/internal/config"
	"kakeibo/internal/storage"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Initialize or update the ledger database",
		Long: `Initialize or update the database schema to the latest version.

Migrations also run automatically before every command that touches the
database, so this is mainly useful to create the database up front or to
verify that an existing file is healthy.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbPath := viper.GetString("database.path")
			if dbPath == "" {
				dbPath = config.DefaultDatabasePath
			}
			dbPath = config.ExpandPath(dbPath)

			slog.Info("Starting database migration", "database", dbPath)

			store, err := storage.NewSQLiteStorage(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("Database is up to date"))
			return nil
		},
	}
}
