// @title Lumo Internship Platform API
// @version 1.0
// @description Backend server for the Lumo internship preparation platform.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"lumo_backend/internal/app"
	"lumo_backend/internal/config"
	"lumo_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run the database migration and exit")
	migrate := flag.Bool("migrate", false, "force the database migration on startup, even in release mode")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration finished, exiting")
		return
	}

	application.Run()
}
