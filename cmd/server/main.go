package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avdeyev/classpack/internal/server/handlers"
	"github.com/avdeyev/classpack/internal/server/jwt"
	"github.com/avdeyev/classpack/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const (
	accessTokenTTL       = 15 * time.Minute
	refreshTokenTTL      = 30 * 24 * time.Hour
	shutdownTimeout      = 10 * time.Second
	tokenCleanupInterval = time.Hour
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", ":8080", "HTTP listen address")
	dbPath := flag.String("db", "classpack-server.db", "Path to SQLite database")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(logger, *addr, *dbPath); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, addr, dbPath string) error {
	secret := os.Getenv("CLASSPACK_JWT_SECRET")
	if len(secret) < 32 {
		return fmt.Errorf("CLASSPACK_JWT_SECRET must be set to at least 32 bytes")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	router := handlers.NewRouter(handlers.RouterConfig{
		Logger:     logger,
		Users:      st,
		Tokens:     st,
		Rows:       st,
		Tombstones: st,
		JWT: jwt.Config{
			Secret:          []byte(secret),
			AccessTokenTTL:  accessTokenTTL,
			RefreshTokenTTL: refreshTokenTTL,
		},
		Version: Version,
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go cleanupExpiredTokens(ctx, logger, st)

	errC := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			slog.String("addr", addr),
			slog.String("version", Version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// cleanupExpiredTokens periodically purges refresh tokens past their expiry.
func cleanupExpiredTokens(ctx context.Context, logger *slog.Logger, st *sqlite.Storage) {
	ticker := time.NewTicker(tokenCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := st.DeleteExpiredTokens(ctx)
			if err != nil {
				logger.Error("failed to delete expired tokens", slog.Any("error", err))
				continue
			}
			if deleted > 0 {
				logger.Info("deleted expired refresh tokens", slog.Int("count", deleted))
			}
		}
	}
}

func printVersion() {
	fmt.Printf("Classpack Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
