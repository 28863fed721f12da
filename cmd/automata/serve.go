package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/pkg/adapters/file"
	httpAdapter "github.com/aretw0/automata/pkg/adapters/http"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/persistence/middleware"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/session"
	"github.com/aretw0/automata/pkg/traversal"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the visualizer over HTTP: stateless step generation, export and
validation, plus server-side sessions with step controls, Mermaid rendering,
SSE updates and Prometheus metrics. Sessions live in Redis when an address is
configured, in JSON files with --store-dir, and in memory otherwise.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.HTTP.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("store-dir") {
			cfg.Store.Dir, _ = cmd.Flags().GetString("store-dir")
		}
		frontier, err := traversal.ParseFrontier(cfg.Frontier)
		if err != nil {
			return err
		}

		mgr, closeStore, err := newSessionManager(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		handler := httpAdapter.NewHandler(mgr,
			httpAdapter.WithMetrics(observability.NewMetrics()),
			httpAdapter.WithFrontier(frontier),
			httpAdapter.WithLogger(logger),
		)
		srv := &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, srv)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on (default from config)")
	serveCmd.Flags().String("store-dir", "", "Persist sessions as JSON files in this directory")
}

// newSessionManager builds the session store chosen by c: Redis when an
// address is set, JSON files when a directory is set, memory otherwise.
// Sessions are sealed with AES-GCM when a key is configured.
func newSessionManager(c config.Config) (*session.Manager, func(), error) {
	opts := []session.Option{session.WithLogger(logger)}
	var store ports.SessionStore
	closeStore := func() {}

	switch {
	case c.Redis.Addr != "":
		rs := redis.New(c.Redis.Addr, c.Redis.Password, c.Redis.DB,
			redis.WithPrefix(c.Redis.Prefix),
			redis.WithTTL(c.Redis.TTL),
		)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rs.Client().Ping(pingCtx).Err(); err != nil {
			_ = rs.Close()
			return nil, nil, fmt.Errorf("redis %s unreachable: %w", c.Redis.Addr, err)
		}
		logger.Info("using redis session store", "addr", c.Redis.Addr, "prefix", c.Redis.Prefix, "ttl", c.Redis.TTL)

		store = rs
		opts = append(opts, session.WithLocker(redis.NewLocker(rs.Client(), rs.Prefix())))
		closeStore = func() {
			if err := rs.Close(); err != nil {
				logger.Warn("failed to close redis client", "error", err)
			}
		}
	case c.Store.Dir != "":
		logger.Info("using file session store", "dir", c.Store.Dir)
		store = file.New(c.Store.Dir)
	default:
		logger.Info("using in-memory session store")
		store = memory.NewStore()
	}

	if c.Store.Key != "" {
		enc, err := encryptionMiddleware(c.Store)
		if err != nil {
			closeStore()
			return nil, nil, err
		}
		store = middleware.Chain(store, enc)
		logger.Info("session encryption enabled", "fallback_keys", len(c.Store.FallbackKeys))
	}
	return session.NewManager(store, opts...), closeStore, nil
}

func encryptionMiddleware(c config.StoreConfig) (middleware.Middleware, error) {
	active, err := middleware.ParseKey(c.Key)
	if err != nil {
		return nil, fmt.Errorf("store key: %w", err)
	}
	enc := middleware.EncryptionConfig{ActiveKey: active}
	for i, k := range c.FallbackKeys {
		key, err := middleware.ParseKey(k)
		if err != nil {
			return nil, fmt.Errorf("store fallback key %d: %w", i, err)
		}
		enc.FallbackKeys = append(enc.FallbackKeys, key)
	}
	return middleware.NewEncryptionMiddleware(enc)
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server) error {
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting automata server", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("start shutdown")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("could not stop server: %w", err)
			}
		}
		logger.Info("automata server stopped gracefully")
		return nil
	}
}
