package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/WispAyr/Hik-Camera-Server/internal/repository/sqlite"
)

// Creates the events database and applies the schema, then prints current
// statistics. Useful for provisioning a unit before first boot.
func main() {
	dbPath := flag.String("db", filepath.Join("data", "events.db"), "Database path")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	db, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	repo := sqlite.NewEventRepository(db)
	stats, err := repo.GetStats()
	if err != nil {
		log.Fatalf("Failed to read stats: %v", err)
	}

	fmt.Printf("Database ready: %s\n", *dbPath)
	fmt.Printf("   Total events: %d\n", stats.TotalEvents)
	fmt.Printf("   Unique vehicles: %d\n", stats.UniqueVehicles)
	fmt.Printf("   Active channels: %d\n", stats.ActiveChannels)
	if stats.LastDetection != nil {
		fmt.Printf("   Last detection: %s\n", *stats.LastDetection)
	}
}
