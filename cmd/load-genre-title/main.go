package main

import (
	"context"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"reviewhub/internal/config"
	"reviewhub/internal/loader"
)

// One-shot batch job: seeds the genre_title association table from a CSV.
// Runs offline, outside the api server, against an already migrated schema.
func main() {
	log.Println("Starting genre_title import...")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = config.DefaultDatabaseURL
		log.Println("Using default database URL (localhost)")
	}

	csvPath := os.Getenv("GENRE_TITLE_CSV")
	if csvPath == "" {
		csvPath = "static/data/genre_title.csv"
	}
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	if _, err := os.Stat(csvPath); err != nil {
		log.Fatalf("csv file not found: %v", err)
	}

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	result, err := loader.LoadGenreTitleFile(context.Background(), db, csvPath)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("total: %d, newly created: %d", result.All, result.Created)
}
