package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/vibes/internal/shared"
	"github.com/desertthunder/vibes/internal/ui"
)

// TUI launches the interactive player for the configured playlist.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	_, baseURL, id, err := r.playlistTarget(cmd)
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)
	r.logger.Info("starting tui", "server", baseURL, "playlist", id)

	model := ui.NewModel(ctx, r.newFetcher(baseURL), id)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	if err := model.Err(); err != nil {
		return fmt.Errorf("failed to load playlist: %w", err)
	}
	return nil
}
