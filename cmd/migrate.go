package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/GolpiraElmiA/OSRTickets/internal/config"
	"github.com/GolpiraElmiA/OSRTickets/internal/model"
	"github.com/GolpiraElmiA/OSRTickets/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Rewrite a legacy-schema remote ticket file to the canonical columns",
	Long: "Fetches the configured Drive file, converts historical headers " +
		"(Department renamed Section, Name/Priority columns added or dropped " +
		"across revisions) to the canonical column set, and rewrites the file. " +
		"A file that is already canonical is left untouched.",
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	ctx := cmd.Context()

	driveStore, err := store.NewDrive(ctx, cfg.CredentialsFile)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	data, found, err := driveStore.Fetch(ctx, cfg.DriveFileName)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", cfg.DriveFileName, err)
	}
	if !found {
		logrus.Infof("migrate: %s does not exist yet, nothing to do", cfg.DriveFileName)
		return nil
	}
	tickets, migrated, err := model.MigrateLegacy(data)
	if err != nil {
		return fmt.Errorf("migrate %s: %w", cfg.DriveFileName, err)
	}
	if !migrated {
		logrus.Infof("migrate: %s already canonical (%d rows)", cfg.DriveFileName, len(tickets))
		return nil
	}
	if err := driveStore.Save(ctx, tickets, cfg.DriveFileName); err != nil {
		return fmt.Errorf("save %s: %w", cfg.DriveFileName, err)
	}
	logrus.Infof("migrate: %s rewritten canonical (%d rows)", cfg.DriveFileName, len(tickets))
	return nil
}
