// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// clientFlags locate the playlist on a running server. Zero values fall back to the [client] config section.
func clientFlags() []cli.Flag {
	return []cli.Flag{
		configFlag(),
		&cli.StringFlag{
			Name:  "server",
			Usage: "Base URL of the vibes server",
		},
		&cli.Int64Flag{
			Name:  "id",
			Usage: "Playlist ID",
		},
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: text, markdown, csv or json",
		Value:   "text",
	}
}

// serveCommand starts the HTTP API
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the playlist API server",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (host:port), overrides server.host and server.port",
			},
			&cli.BoolFlag{
				Name:  "no-seed",
				Usage: "Skip seeding the sample playlist on startup",
			},
		},
		Action: r.Serve,
	}
}

// seedCommand loads the sample playlist into the database
func seedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Load the sample playlist into the database",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "mode",
				Usage: "always rewrites the fixture rows, once skips an applied fixture version (default from seed.mode)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the result as JSON",
			},
		},
		Action: r.Seed,
	}
}

// setupCommand handles database setup operations.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create config.toml if missing, initialize the database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupRollback,
			},
		},
	}
}

// playlistCommand reads the playlist from a running server
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Playlist operations against a running server",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the playlist header",
				Flags:  append(clientFlags(), formatFlag()),
				Action: r.PlaylistShow,
			},
			{
				Name:   "songs",
				Usage:  "Print the playlist with its songs",
				Flags:  append(clientFlags(), formatFlag()),
				Action: r.PlaylistSongs,
			},
			{
				Name:  "export",
				Usage: "Write the playlist and its songs to a file",
				Flags: append(clientFlags(),
					formatFlag(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file, or directory for markdown (default: playlist_{id})",
					},
					&cli.BoolFlag{
						Name:  "cover",
						Usage: "Download the cover image next to a markdown export",
					},
				),
				Action: r.PlaylistExport,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for browsing and playing the playlist.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive player",
		Flags: append(clientFlags(), &cli.StringFlag{
			Name:  "log-file",
			Usage: "Where TUI logs are written",
			Value: "./tmp/vibes-tui.log",
		}),
		Action: r.TUI,
	}
}
