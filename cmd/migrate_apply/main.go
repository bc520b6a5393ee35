package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	"github.com/Medinhoo/liar/internal/db"
	"github.com/Medinhoo/liar/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_JSON") == "true")

	apply := flag.Bool("apply", false, "execute the migrations instead of listing them")
	dir := flag.String("dir", filepath.Join("internal", "migrations"), "migrations directory")
	flag.Parse()

	files, err := db.MigrationFiles(*dir)
	if err != nil {
		logger.Fatal("list migrations", "dir", *dir, "error", err)
	}
	if len(files) == 0 {
		logger.Warn("no migrations found", "dir", *dir)
		return
	}

	if !*apply {
		for _, f := range files {
			logger.Info("pending migration", "file", filepath.Base(f))
		}
		logger.Info("dry run only, pass -apply to execute")
		return
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL is not set")
	}
	pool := db.Connect(dsn)
	defer pool.Close()

	if err := db.ApplyMigrations(context.Background(), pool, *dir); err != nil {
		logger.Fatal("apply migrations", "error", err)
	}
	logger.Info("migrations applied", "count", len(files))
}
