// @title			TaskBoard API
// @version		1.0
// @description	Single-user kanban task board.
// @BasePath		/api/v1

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mtlprog/taskboard/internal/auth"
	"github.com/mtlprog/taskboard/internal/board"
	"github.com/mtlprog/taskboard/internal/config"
	"github.com/mtlprog/taskboard/internal/handler"
	"github.com/mtlprog/taskboard/internal/logger"
	"github.com/mtlprog/taskboard/internal/middleware"
	"github.com/mtlprog/taskboard/internal/report"
	"github.com/mtlprog/taskboard/internal/storage"
	"github.com/mtlprog/taskboard/internal/template"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "taskboard",
		Usage: "Single-user kanban task board",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultConfigFileName,
				Usage:   "Path to the TOML configuration file",
				EnvVars: []string{"TASKBOARD_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "db-path",
				Aliases: []string{"d"},
				Usage:   "Path to the SQLite database file",
				EnvVars: []string{"TASKBOARD_DB"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the web server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Usage:   "HTTP server port",
						EnvVars: []string{"PORT"},
					},
				},
				Action: runServe,
			},
			{
				Name:      "export",
				Usage:     "Write the task collection to stdout or a file",
				ArgsUsage: "[csv|full-csv|json]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write to this file instead of stdout",
					},
				},
				Action: runExport,
			},
			{
				Name:   "reset",
				Usage:  "Delete every task and the activity log",
				Action: runReset,
			},
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: the TOML file first,
// then flag/env overrides on top.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.LoadOrCreate(c.String("config"))
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	if v := c.String("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v := c.String("db-path"); v != "" {
		cfg.DBPath = v
	}
	if c.IsSet("port") {
		cfg.Port = c.String("port")
	}

	logger.Setup(logger.ParseLevel(cfg.LogLevel))
	return cfg, nil
}

// openBoard opens the database, runs migrations, and loads the board
// state into memory.
func openBoard(ctx context.Context, cfg config.Config) (*storage.DB, *board.Store, error) {
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := storage.RunMigrations(ctx, db.Handle()); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, board.New(ctx, storage.NewGateway(db)), nil
}

func runServe(c *cli.Context) error {
	ctx := c.Context

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	db, store, err := openBoard(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	gateway := storage.NewGateway(db)
	authManager := auth.New(ctx, gateway, cfg.Credentials.Email, cfg.Credentials.Password)

	templates, err := template.Load()
	if err != nil {
		return fmt.Errorf("failed to load template packs: %w", err)
	}

	h := handler.New(db, store, authManager, templates)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.RequestID(mux),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func runExport(c *cli.Context) error {
	ctx := c.Context

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	db, store, err := openBoard(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	format := c.Args().First()
	if format == "" {
		format = "csv"
	}

	var out []byte
	switch format {
	case "csv":
		out = []byte(report.BoardCSV(store.Tasks()))
	case "full-csv":
		out = []byte(report.FullCSV(store.Tasks()))
	case "json":
		out, err = report.TasksJSON(store.Tasks())
		if err != nil {
			return fmt.Errorf("failed to encode tasks: %w", err)
		}
	default:
		return fmt.Errorf("unknown export format %q (want csv, full-csv, or json)", format)
	}

	if path := c.String("output"); path != "" {
		return os.WriteFile(path, out, 0o644)
	}
	_, err = os.Stdout.Write(out)
	return err
}

func runReset(c *cli.Context) error {
	ctx := c.Context

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	db, store, err := openBoard(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset board: %w", err)
	}

	slog.Info("board reset")
	return nil
}
