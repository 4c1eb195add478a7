// Command migrate applies or inspects the database schema.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"

	"bookreview/db"
	"bookreview/internal/logging"
	"bookreview/internal/platform/postgres"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, version, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	loadEnvFiles()

	logger, err := logging.New(os.Stderr, envOr("LOG_LEVEL", "info"), envOr("LOG_FORMAT", "text"))
	if err != nil {
		logrus.Fatalf("logger: %v", err)
	}

	// create only touches the working tree.
	if *command == "create" {
		if *name == "" {
			logger.Fatal("name is required for 'create' command")
		}
		if err := goose.Create(nil, migrationsDir(), *name, "sql"); err != nil {
			logger.Fatalf("create migration: %v", err)
		}
		logger.Infof("migration created: %s", *name)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.Open(ctx, databaseDSN())
	if err != nil {
		logger.Fatal(err)
	}
	defer pool.Close()

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	goose.SetBaseFS(db.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatalf("goose dialect: %v", err)
	}

	switch *command {
	case "up":
		if err := goose.UpContext(ctx, sqlDB, db.MigrationsDir); err != nil {
			logger.Fatalf("apply migrations: %v", err)
		}
		logger.Info("migrations applied successfully")
	case "down":
		if err := goose.DownContext(ctx, sqlDB, db.MigrationsDir); err != nil {
			logger.Fatalf("roll back migration: %v", err)
		}
		logger.Info("migration rolled back successfully")
	case "status":
		if err := goose.StatusContext(ctx, sqlDB, db.MigrationsDir); err != nil {
			logger.Fatalf("migration status: %v", err)
		}
	case "version":
		if err := goose.VersionContext(ctx, sqlDB, db.MigrationsDir); err != nil {
			logger.Fatalf("migration version: %v", err)
		}
	default:
		logger.Fatalf("unknown command: %s. Use: up, down, status, version, create", *command)
	}
}
