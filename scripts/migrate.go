package main

import (
	"flag"
	"log"

	migrate "github.com/rubenv/sql-migrate"

	"github.com/johnquangdev/video-chat/internal/infrastructure/database"
	"github.com/johnquangdev/video-chat/pkg/config"
)

// go run scripts/migrate.go [-down] [-dir migrations]
func main() {
	down := flag.Bool("down", false, "roll back the most recent migration")
	dir := flag.String("dir", database.MigrationsDir, "migration directory")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database using GORM
	db, err := database.NewPostgresDB(cfg, nil)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Println("✅ Database connected successfully")

	if !*down {
		n, err := database.AutoMigrate(db, *dir, nil)
		if err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
		log.Printf("✅ Successfully applied %d migration(s)!\n", n)
		return
	}

	log.Printf("⏪ Rolling back the last migration from %s/ ...", *dir)

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database connection: %v", err)
	}

	n, err := migrate.ExecMax(sqlDB, "postgres", &migrate.FileMigrationSource{Dir: *dir}, migrate.Down, 1)
	if err != nil {
		log.Fatalf("Failed to roll back migration: %v", err)
	}

	log.Printf("✅ Rolled back %d migration(s)", n)
}
