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

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
			Value: true,
		},
	}
}

// trackArgs are the optional positional track/artist pair; commands fall back
// to the currently playing track when both are omitted.
func trackArgs() []cli.Argument {
	return []cli.Argument{
		&cli.StringArg{Name: "track"},
		&cli.StringArg{Name: "artist"},
	}
}

// setupCommand handles setup operations for the local cache database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize cache database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:   "spotify",
				Usage:  "Authenticate with Spotify using OAuth2",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SpotifyAuth,
			},
			{
				Name:  "token",
				Usage: "Extract a bearer token from a browser cURL snippet",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing cURL command",
					},
				},
				Action: r.SpotifyToken,
			},
			{
				Name:   "status",
				Usage:  "Show configured credentials and token state",
				Action: r.AuthStatus,
			},
		},
	}
}

// lyricsCommand handles lyrics fetch and analysis operations
func lyricsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "lyrics",
		Aliases: []string{"ly"},
		Usage:   "Fetch lyrics for a track",
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Print lyrics for a track (or the currently playing one)",
				Arguments: trackArgs(),
				Flags: append(outputFlags(),
					configFlag(),
					&cli.BoolFlag{
						Name:  "timestamps",
						Usage: "Show line timestamps for time-synced lyrics",
					},
				),
				Action: r.LyricsShow,
			},
			{
				Name:      "analyze",
				Usage:     "Summarize lyrics and surface language insights",
				Arguments: trackArgs(),
				Flags:     append(outputFlags(), configFlag()),
				Action:    r.Analyze,
			},
		},
	}
}

// translateCommand handles translation operations
func translateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "translate",
		Aliases: []string{"tr"},
		Usage:   "Translate lyrics and words",
		Commands: []*cli.Command{
			{
				Name:      "track",
				Usage:     "Translate lyrics for a track (or the currently playing one)",
				Arguments: trackArgs(),
				Flags: append(outputFlags(),
					configFlag(),
					&cli.StringFlag{
						Name:  "to",
						Usage: "Target language code (defaults to translation.target_lang)",
					},
					&cli.BoolFlag{
						Name:  "overlay",
						Usage: "Show line-paired translation under each original line",
					},
				),
				Action: r.Translate,
			},
			{
				Name:  "word",
				Usage: "Translate a single word",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "word"},
				},
				Flags: append(outputFlags(),
					&cli.StringFlag{
						Name:  "to",
						Usage: "Target language code (defaults to translation.target_lang)",
					},
					&cli.StringFlag{
						Name:  "from",
						Usage: "Source language hint (defaults to translation.source_lang)",
					},
				),
				Action: r.TranslateWord,
			},
		},
	}
}

// languagesCommand lists supported translation targets
func languagesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "languages",
		Usage:  "List supported translation languages",
		Flags:  outputFlags(),
		Action: r.Languages,
	}
}

// speakCommand handles pronunciation playback
func speakCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "speak",
		Usage: "Synthesize and play pronunciation audio for text",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "text"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "lang",
				Usage: "Language to pronounce in (defaults to translation.target_lang)",
			},
		},
		Action: r.Speak,
	}
}

// playbackCommand handles playback state and control
func playbackCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playback",
		Aliases: []string{"pb"},
		Usage:   "Show and control playback",
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Show the currently playing track",
				Flags:  outputFlags(),
				Action: r.PlaybackStatus,
			},
			{
				Name:   "play",
				Usage:  "Resume playback",
				Action: r.PlaybackPlay,
			},
			{
				Name:   "pause",
				Usage:  "Pause playback",
				Action: r.PlaybackPause,
			},
		},
	}
}

// browseCommand handles artist discovery
func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "artists",
		Usage: "List top artists for a genre with their top tracks",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "genre"},
		},
		Flags: append(outputFlags(),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of artists to return",
				Value: 10,
			},
		),
		Action: r.TopArtists,
	}
}

// exportCommand handles lyrics export operations
func exportCommand(r *Runner) *cli.Command {
	exportFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Export format: txt, lrc, markdown, json",
			Value:   "txt",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output directory",
		},
		&cli.StringFlag{
			Name:  "translate",
			Usage: "Translate lyrics to this language before export",
		},
	}

	return &cli.Command{
		Name:  "export",
		Usage: "Export lyrics to files",
		Commands: []*cli.Command{
			{
				Name:  "bulk",
				Usage: "Export lyrics for a JSON list of tracks",
				Flags: append(append([]cli.Flag{}, exportFlags...),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "JSON file with tracks to export",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent export workers",
						Value: 3,
					},
					&cli.Float64Flag{
						Name:  "rate",
						Usage: "Lyrics requests per second",
						Value: 2,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output result summary as JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				),
				Action: r.ExportBulk,
			},
			{
				Name:   "current",
				Usage:  "Export lyrics for the currently playing track",
				Flags:  append(append([]cli.Flag{}, exportFlags...), outputFlags()...),
				Action: r.ExportCurrent,
			},
		},
	}
}

// cacheCommand handles the local translation cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect and manage the translation cache",
		Commands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show cache statistics",
				Flags:  outputFlags(),
				Action: r.CacheStats,
			},
			{
				Name:   "purge",
				Usage:  "Remove all cached translations and lyrics",
				Action: r.CachePurge,
			},
		},
	}
}

// followCommand returns the top-level TUI command for the live lyrics display.
func followCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "follow",
		Aliases: []string{"tui", "ui"},
		Usage:   "Live synced lyrics display for the currently playing track",
		Action:  r.Follow,
	}
}
