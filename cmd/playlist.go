package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/vibes/internal/formatter"
	"github.com/desertthunder/vibes/internal/models"
	"github.com/desertthunder/vibes/internal/shared"
)

// playlistTarget resolves the server and playlist id from flags, falling back to config.
func (r *Runner) playlistTarget(cmd *cli.Command) (*shared.Config, string, int64, error) {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return nil, "", 0, err
	}

	baseURL := config.Client.BaseURL
	if s := cmd.String("server"); s != "" {
		baseURL = s
	}

	id := config.Client.PlaylistID
	if cmd.IsSet("id") {
		id = cmd.Int64("id")
	}
	if id <= 0 {
		return nil, "", 0, fmt.Errorf("%w: playlist id must be positive", shared.ErrInvalidFlag)
	}

	return config, baseURL, id, nil
}

// fetchExport loads the playlist and, when withSongs is set, its songs.
func (r *Runner) fetchExport(ctx context.Context, cmd *cli.Command, withSongs bool) (*formatter.Export, error) {
	_, baseURL, id, err := r.playlistTarget(cmd)
	if err != nil {
		return nil, err
	}

	fetcher := r.newFetcher(baseURL)
	var (
		playlist *models.Playlist
		songs    []models.Song
	)

	err = r.withSpinner(ctx, "Fetching playlist...", func(ctx context.Context) error {
		var err error
		if playlist, err = fetcher.GetPlaylist(ctx, id); err != nil || playlist == nil {
			return err
		}
		if withSongs {
			songs, err = fetcher.GetPlaylistSongs(ctx, id)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist: %w", err)
	}
	if playlist == nil {
		return nil, fmt.Errorf("%w: %d", shared.ErrPlaylistNotFound, id)
	}

	r.logger.Debug("fetched playlist", "id", id, "songs", len(songs))
	return &formatter.Export{Playlist: *playlist, Songs: songs}, nil
}

// PlaylistShow prints the playlist header.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	export, err := r.fetchExport(ctx, cmd, format == formatter.Text)
	if err != nil {
		return err
	}

	if format == formatter.JSON {
		return r.writeJSON(export.Playlist, true)
	}
	if format == formatter.Text {
		p := export.Playlist
		r.writePlain("%s\n", p.Name)
		if d := p.DescriptionText(); d != "" {
			r.writePlain("%s\n", d)
		}
		return r.writePlain("%s\n", formatter.Summary(p, export.Songs))
	}

	data, err := formatter.Render(export, format)
	if err != nil {
		return err
	}
	return r.writeBytes(data)
}

// PlaylistSongs prints the playlist with its songs.
func (r *Runner) PlaylistSongs(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	export, err := r.fetchExport(ctx, cmd, true)
	if err != nil {
		return err
	}

	data, err := formatter.Render(export, format)
	if err != nil {
		return err
	}
	return r.writeBytes(data)
}

// PlaylistExport writes the playlist and its songs to disk.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	export, err := r.fetchExport(ctx, cmd, true)
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if format == formatter.Markdown {
		httpClient := r.httpClient
		if !cmd.Bool("cover") {
			httpClient = nil
		}
		result, err := formatter.WriteMarkdownExport(ctx, export, output, httpClient)
		if err != nil {
			return err
		}
		if result.Warning != nil {
			r.logger.Warn("cover image skipped", "error", result.Warning)
		}
		for _, f := range result.Files {
			r.writePlain("✓ Wrote %s\n", f)
		}
		return nil
	}

	path, err := formatter.WriteFile(export, format, output)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Wrote %s\n", path)
}
