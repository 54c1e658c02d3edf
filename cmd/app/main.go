package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/uruz/internal"
	"github.com/starford/uruz/internal/export"
	"github.com/starford/uruz/internal/habitservice"
	"github.com/starford/uruz/internal/mcpserver"
	pkgconfig "github.com/starford/uruz/pkg/config"
)

// loadConfig reads the YAML config when present and falls back to defaults
// otherwise, so a fresh checkout runs without any setup.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")
	cfg := internal.NewDefaultConfig()
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err := pkgconfig.Load(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

// serveMCP runs the MCP server on stdio. Logs go to stderr because stdout is
// the MCP transport.
func serveMCP(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	db, err := internal.OpenStore(cfg.SQLite, logger)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer db.Close()

	srv := mcpserver.New(habitservice.NewService(db))
	return srv.ServeStdio()
}

func exportSnapshot(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	db, err := internal.OpenStore(cfg.SQLite, logger)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer db.Close()

	w, err := export.NewWriter(cmd.String("out"))
	if err != nil {
		return err
	}
	m, err := w.Snapshot(ctx, habitservice.NewService(db))
	if err != nil {
		return err
	}
	logger.Info("snapshot written",
		slog.String("file", m.File),
		slog.Int("habits", m.Habits),
		slog.Int("dailies", m.Dailies))
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:   "uruz",
		Usage:  "Habit and daily tracker with a REST API, SQLite storage, and MCP integration",
		Action: serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP server (default)",
				Action: serve,
			},
			{
				Name:   "mcp",
				Usage:  "Serve MCP tools on stdio against the same store",
				Action: serveMCP,
			},
			{
				Name:   "export",
				Usage:  "Write a JSON snapshot of all habits and dailies",
				Action: exportSnapshot,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "Directory to write the snapshot into",
						Value: "./export",
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
