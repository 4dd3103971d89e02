package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/vibes/internal/repositories"
	"github.com/desertthunder/vibes/internal/seed"
	"github.com/desertthunder/vibes/internal/server"
	"github.com/desertthunder/vibes/internal/shared"
)

// Serve opens the database, seeds the sample playlist and serves the API until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	addr := config.Server.Addr()
	if a := cmd.String("addr"); a != "" {
		if _, _, err := net.SplitHostPort(a); err != nil {
			return fmt.Errorf("%w: --addr %q: %v", shared.ErrInvalidFlag, a, err)
		}
		addr = a
	}

	store, closeDB, err := r.openStore(config)
	if err != nil {
		return err
	}
	defer closeDB()

	if cmd.Bool("no-seed") {
		r.logger.Info("skipping seed")
	} else if _, err := r.runSeed(ctx, store, config.Seed.Mode); err != nil {
		return err
	}

	api := server.NewAPI(store, server.APIOptions{
		AllowedOrigins: config.Server.AllowedOrigins,
		RateLimit:      config.Server.RateLimit,
		RateBurst:      config.Server.RateBurst,
	}, r.logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(addr, api, config.Server.ShutdownTimeout.Duration, r.logger)
	return srv.ListenAndServe(ctx)
}

// runSeed loads the embedded fixture into store.
func (r *Runner) runSeed(ctx context.Context, store *repositories.Store, mode string) (*seed.Result, error) {
	m, err := seed.ParseMode(mode)
	if err != nil {
		return nil, err
	}

	fixture, err := seed.Default()
	if err != nil {
		return nil, err
	}

	return seed.NewSeeder(store, fixture, m, r.logger).Run(ctx)
}

// Seed loads the sample playlist into the configured database.
func (r *Runner) Seed(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	mode := config.Seed.Mode
	if cmd.IsSet("mode") {
		mode = cmd.String("mode")
	}

	store, closeDB, err := r.openStore(config)
	if err != nil {
		return err
	}
	defer closeDB()

	result, err := r.runSeed(ctx, store, mode)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"playlistId": result.PlaylistID,
			"songs":      result.Songs,
			"version":    result.Version,
			"skipped":    result.Skipped,
		}, true)
	}

	if result.Skipped {
		return r.writePlain("Seed version %d already applied, nothing to do\n", result.Version)
	}
	return r.writePlain("✓ Seeded playlist %d with %d songs (version %d)\n", result.PlaylistID, result.Songs, result.Version)
}
