// Command migrate applies the database schema and reference data. Intended
// for production deployments, where the server itself never automigrates.
package main

import (
	"log"

	"commons/internal/config"
	"commons/internal/database"
	"commons/internal/seed"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
		log.Fatalf("Schema migration failed: %v", err)
	}
	log.Println("Schema migration applied")

	if err := seed.Roles(db); err != nil {
		log.Fatalf("Role catalog seeding failed: %v", err)
	}
	if err := seed.Communities(db); err != nil {
		log.Fatalf("Built-in community seeding failed: %v", err)
	}
	log.Println("Reference data seeded")
}
