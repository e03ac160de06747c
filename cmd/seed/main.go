// Command main runs the database seeder for the Commons forum.
package main

import (
	"flag"
	"log"
	"strings"

	"commons/internal/config"
	"commons/internal/database"
	"commons/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 30, "Number of demo users to create")
	numCommunities := flag.Int("communities", 5, "Number of demo communities to create")
	numPosts := flag.Int("posts", 150, "Number of demo posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	refOnly := flag.Bool("reference-only", false, "Seed only the role catalog and built-in communities")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean && !*refOnly {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("❌ Cleanup failed: %v", err)
		}
	}

	if err := seed.Roles(db); err != nil {
		log.Fatalf("❌ Role catalog seeding failed: %v", err)
	}
	log.Printf("✓ Role catalog ready: %s", strings.Join(seed.CatalogRoleNames(), ", "))

	if err := seed.Communities(db); err != nil {
		log.Fatalf("❌ Built-in community seeding failed: %v", err)
	}
	log.Println("✓ Built-in communities ready")

	if *refOnly {
		log.Println("✨ Reference data seeded.")
		return
	}

	users, err := s.SeedUsers(*numUsers)
	if err != nil {
		log.Fatalf("❌ User seeding failed: %v", err)
	}
	if _, err := s.SeedCommunities(users, *numCommunities); err != nil {
		log.Fatalf("❌ Community seeding failed: %v", err)
	}
	if err := s.SeedForum(users, *numPosts); err != nil {
		log.Fatalf("❌ Forum seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with demo data.")
}
