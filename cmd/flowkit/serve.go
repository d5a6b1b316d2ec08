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

	"github.com/spf13/cobra"

	httpAdapter "github.com/quotedeck/flowkit/internal/adapters/http"
	"github.com/quotedeck/flowkit/internal/config"
	"github.com/quotedeck/flowkit/internal/logging"
	"github.com/quotedeck/flowkit/internal/metrics"
	"github.com/quotedeck/flowkit/pkg/adapters/file"
	"github.com/quotedeck/flowkit/pkg/adapters/memory"
	redisAdapter "github.com/quotedeck/flowkit/pkg/adapters/redis"
	"github.com/quotedeck/flowkit/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the flow service HTTP server",
	Long:  `Starts the JSON API for flow documents and intake sessions: builder CRUD, validation, publication, and session execution.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		catalogPath, _ := cmd.Flags().GetString("catalog")
		levelName, _ := cmd.Flags().GetString("log-level")

		if err := runServe(configPath, catalogPath, levelName); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("config", "c", "", "Path to the server config file (YAML)")
	serveCmd.Flags().String("catalog", "", "Path to a catalog document (YAML) for field/product lookups")
}

func runServe(configPath, catalogPath, levelName string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		level = slog.LevelInfo
	}
	logger := logging.New(level)

	flows, err := buildFlowStore(cfg)
	if err != nil {
		return err
	}
	sessions, closeSessions, err := buildSessionStore(cfg)
	if err != nil {
		return err
	}
	defer closeSessions()

	opts := []httpAdapter.Option{
		httpAdapter.WithLogger(logger),
		httpAdapter.WithMetrics(metrics.New()),
	}
	if cfg.LoopLimit() > 0 {
		opts = append(opts, httpAdapter.WithLoopLimit(cfg.LoopLimit()))
	}
	if catalogPath != "" {
		catalogCfg, err := config.LoadCatalog(catalogPath)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		catalog := memory.NewCatalog()
		catalogCfg.Seed(catalog)
		opts = append(opts, httpAdapter.WithCatalogs(catalog, catalog))
	}

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: httpAdapter.NewHandler(flows, sessions, opts...),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr,
			"flows", cfg.FlowBackend(), "sessions", cfg.SessionBackend())
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("graceful shutdown did not complete", "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("close server: %w", err)
			}
		}
		logger.Info("server stopped")
	}
	return nil
}

func buildFlowStore(cfg *config.ServerConfig) (ports.FlowStore, error) {
	switch cfg.FlowBackend() {
	case "memory":
		return memory.NewFlowStore(), nil
	case "file":
		return file.NewFlowStore(cfg.Flows.Dir), nil
	default:
		return nil, fmt.Errorf("unknown flow backend %q", cfg.FlowBackend())
	}
}

func buildSessionStore(cfg *config.ServerConfig) (ports.SessionStore, func(), error) {
	switch cfg.SessionBackend() {
	case "memory":
		return memory.NewSessionStore(), func() {}, nil
	case "redis":
		var opts []redisAdapter.Option
		if cfg.Sessions.TTL > 0 {
			opts = append(opts, redisAdapter.WithTTL(cfg.Sessions.TTL))
		}
		store := redisAdapter.New(cfg.Sessions.Addr, cfg.Sessions.Password, cfg.Sessions.DB, opts...)
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend())
	}
}
