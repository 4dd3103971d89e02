package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/vibes/internal/shared"
)

// SetupDatabase initializes the database and runs migrations, creating config.toml from the template when missing.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	r.logger.Info("initializing database", "driver", config.Database.Driver)

	_, closeDB, err := r.openStore(config)
	if err != nil {
		return err
	}
	defer closeDB()

	r.logger.Infof("setup complete for %s database", config.Database.Driver)
	return r.writePlain("✓ Database ready (%s)\n", config.Database.Driver)
}

// SetupRollback rolls back the most recent migration.
func (r *Runner) SetupRollback(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	dialect := shared.Dialect(config.Database.Driver)
	db, err := shared.NewDatabase(dialect, config.Database.Source())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := shared.RollbackMigration(db, dialect); err != nil {
		return err
	}
	return r.writePlain("✓ Rolled back the latest migration\n")
}
