package main

import (
	"log"
	"os"

	"task-notes-be/internal/model"
	"task-notes-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting GORM migration...")

	// gen_random_uuid() needs pgcrypto on Postgres < 13
	color.Yellow("Step 1: Setting up extensions...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to create extension: %v. Continuing...", err)
	}

	color.Yellow("Step 2: Running AutoMigrate...")
	models := []interface{}{
		&model.Note{},
		&model.TaskSnapshot{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	color.Green("Success: Database migration completed via GORM.")
}
