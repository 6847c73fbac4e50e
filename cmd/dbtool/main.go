package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"rapidaid-dashboard-service/internal/adapters/repositories"
	"rapidaid-dashboard-service/internal/config"
	"rapidaid-dashboard-service/internal/geolink"
	"rapidaid-dashboard-service/internal/platform/db"
	"rapidaid-dashboard-service/internal/services"
	"time"
)

func main() {
	config.LoadDotEnv()

	seedOnly := flag.Bool("seed-only", false, "skip schema initialization")
	schemaOnly := flag.Bool("schema-only", false, "initialize the schema without seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if !*seedOnly {
		if err := initSchema(ctx, conn); err != nil {
			log.Fatal(err)
		}
	}
	if !*schemaOnly {
		if err := seed(ctx, conn, cfg); err != nil {
			log.Fatal(err)
		}
	}
}

func initSchema(ctx context.Context, conn *sql.DB) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")
	return nil
}

// seed registers the seed stations through the same validation the HTTP
// API uses. Short links are not expanded here.
func seed(ctx context.Context, conn *sql.DB, cfg config.Config) error {
	log.Printf("Seeding stations from %s...", cfg.SeedPath)

	seeds, err := services.LoadStationSeeds(cfg.SeedPath)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	validator := geolink.NewValidator(cfg.Region, cfg.MapLinkHosts)
	links := services.NewLinkService(validator, nil, nil, nil)

	n, err := services.SeedStations(ctx, seeds, repositories.NewSQLStationRepository(conn), links)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Printf("Seeding complete. created=%d total=%d", n, len(seeds))
	return nil
}
