package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/avdeyev/classpack/internal/client/api"
	"github.com/avdeyev/classpack/internal/client/auth"
	"github.com/avdeyev/classpack/internal/client/cli"
	"github.com/avdeyev/classpack/internal/client/content"
	"github.com/avdeyev/classpack/internal/client/iocli"
	"github.com/avdeyev/classpack/internal/client/reconcile"
	"github.com/avdeyev/classpack/internal/client/storage/boltdb"
	"github.com/avdeyev/classpack/internal/client/syncqueue"
	"github.com/avdeyev/classpack/internal/client/tombstones"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "classpack-client.db", "Path to local database")
	verbose := flag.Bool("verbose", false, "Enable debug logging")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	// Logs go to stderr so command output stays clean.
	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx := context.Background()

	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	apiClient := api.NewClient(*serverURL)
	authService := auth.NewService(apiClient, boltStorage, logger)
	tombstoneClient := tombstones.NewClient(apiClient, logger)
	queue := syncqueue.New(boltStorage, apiClient, tombstoneClient, authService, logger, syncqueue.Options{})
	reconciler := reconcile.New(boltStorage, apiClient, tombstoneClient, authService, queue, logger)
	manager := content.NewManager(boltStorage, queue, reconciler, queue, logger)

	c := cli.New(iocli.NewStdio(), authService, manager, queue)
	if err := c.Run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("Classpack Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
