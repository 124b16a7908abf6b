package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"knowvalue.app/server/common/logger"
	"knowvalue.app/server/core/config"
	"knowvalue.app/server/core/db"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: migrate [up|down|status]\n")
	}
	flag.Parse()

	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "up"
	}

	ctx := context.Background()
	cfg, err := config.Load(config.ServiceTypeMigrate)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Setup(cfg)

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	switch cmd {
	case "up":
		version, err := database.Migrate(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "migrate up failed", "error", err)
			os.Exit(1)
		}
		slog.InfoContext(ctx, "database is up to date", "version", version)
	case "down":
		if err := database.MigrateDown(ctx); err != nil {
			slog.ErrorContext(ctx, "migrate down failed", "error", err)
			os.Exit(1)
		}
	case "status":
		if err := database.MigrationStatus(ctx); err != nil {
			slog.ErrorContext(ctx, "migrate status failed", "error", err)
			os.Exit(1)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}
