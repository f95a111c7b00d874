// Command seed recreates the news tables and loads a data set into them.
//
// Usage:
//
//	seed [-file data.yaml]
//
// Without -file the embedded development data set is loaded. The database is
// selected with the same environment variables as the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-news-backend/internal/config"
	"github.com/tbourn/go-news-backend/internal/repo"
	"github.com/tbourn/go-news-backend/internal/seed"
	"github.com/tbourn/go-news-backend/internal/sysutil"
)

func main() {
	file := flag.String("file", "", "YAML data set to load (default: embedded development data)")
	flag.Parse()

	if err := run(context.Background(), *file); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

func run(ctx context.Context, file string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	sysutil.ConfigureLogger(os.Stdout, cfg.LogPretty, "news-seed")
	sysutil.SetLogLevel(cfg.LogLevel)

	data, err := loadData(file)
	if err != nil {
		return err
	}

	dsn := cfg.DB.Path
	if cfg.DB.Driver == config.DriverPostgres {
		dsn = cfg.DB.URL
	}
	db, err := repo.Open(cfg.DB.Driver, dsn, cfg.DB.MaxOpenConns)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := seed.Drop(db); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	ids, err := seed.Apply(ctx, db, data)
	if err != nil {
		return err
	}

	log.Info().
		Str("db_driver", cfg.DB.Driver).
		Int("topics", len(data.Topics)).
		Int("users", len(data.Users)).
		Int("articles", len(ids)).
		Int("comments", len(data.Comments)).
		Msg("database seeded")
	return nil
}

func loadData(file string) (seed.Data, error) {
	if file == "" {
		return seed.Default()
	}
	b, err := os.ReadFile(file)
	if err != nil {
		return seed.Data{}, err
	}
	return seed.Parse(b)
}
