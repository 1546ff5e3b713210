package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"kiosk/m/internal/config"
	"kiosk/m/internal/database"
	"kiosk/m/internal/logger"
	"kiosk/m/internal/migrations"
	"kiosk/m/internal/seed"
	"kiosk/m/internal/store"
)

const serviceName = "kiosk-import"

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()
	// bootstrap logger early (then re-init after config load)
	logg := logger.New(logger.Options{ServiceName: serviceName})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if !requireResource(ctx, logg, "config", err) {
		return 1
	}

	file := flag.String("file", cfg.Import.File, "product file: one name,category,total_pieces,total_stocks,price per line")
	strict := flag.Bool("strict", cfg.Import.Strict, "exit non-zero when any record is invalid or fails")
	flag.Parse()

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	if *file == "" {
		fmt.Fprintf(os.Stderr, "missing -file (or %s)\n", config.EnvImportFile)
		return 2
	}

	db, err := database.Connect(ctx, cfg.DB.DSN)
	if !requireResource(ctx, logg, "database", err) {
		return 1
	}
	products := store.New(db, logg)
	defer func() {
		if err := products.Close(); err != nil {
			logg.Error(ctx, "closing database", err)
		}
	}()

	if cfg.DB.AutoMigrate {
		if !requireResource(ctx, logg, "schema", migrations.Run(ctx, db)) {
			return 1
		}
	}

	sum, err := seed.NewLoader(products, logg).LoadFile(ctx, *file)
	if !requireResource(ctx, logg, "product file", err) {
		return 1
	}

	if *strict && !sum.Clean() {
		logg.Error(ctx, "import finished with rejected records", sum.Err)
		return 1
	}
	return 0
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) bool {
	if err == nil {
		return true
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	return false
}
