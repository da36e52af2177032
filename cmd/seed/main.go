package main

import (
	"log"
	"os"

	"task-notes-be/internal/model"
	"task-notes-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
)

// Dev fixtures. The snapshot task ids are stable so the frontend team can
// hardcode them in local setups.
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

	color.Cyan("Seeding dev fixtures...")

	taskA := uuid.MustParse("6a1f5f1e-0c5b-4b3e-9d2f-1d2c3b4a5e6f")
	taskB := uuid.MustParse("b2e4d6c8-1a3f-4e5d-8c7b-9f0e1d2c3b4a")

	snapshots := []model.TaskSnapshot{
		{
			TaskId: taskA,
			Title:  "Prepare onboarding checklist",
			Owner:  "alice",
			Status: "open",
			Raw:    datatypes.JSON([]byte(`{"id":"6a1f5f1e-0c5b-4b3e-9d2f-1d2c3b4a5e6f","title":"Prepare onboarding checklist","status":"open"}`)),
		},
		{
			TaskId: taskB,
			Title:  "Review Q3 metrics",
			Owner:  "bob",
			Status: "done",
			Raw:    datatypes.JSON([]byte(`{"id":"b2e4d6c8-1a3f-4e5d-8c7b-9f0e1d2c3b4a","title":"Review Q3 metrics","status":"done"}`)),
		},
	}
	for _, snap := range snapshots {
		if err := db.Where("task_id = ?", snap.TaskId).FirstOrCreate(&snap).Error; err != nil {
			log.Printf("Warn: Failed to seed snapshot %s: %v", snap.TaskId, err)
		}
	}

	author := "seed"
	notes := []model.Note{
		{
			Title:   "Kickoff summary",
			Content: "Walked through the onboarding checklist with the new hires.",
			TaskId:  &taskA,
			Author:  &author,
		},
		{
			Title:   "Metrics follow-up",
			Content: "Q3 review closed, numbers shared in the team channel.",
			TaskId:  &taskB,
			Author:  &author,
		},
		{
			Title:   "Scratchpad",
			Content: "Unattached note, no task reference.",
			Author:  &author,
		},
	}
	for _, note := range notes {
		if err := db.Where("title = ? AND author = ?", note.Title, author).FirstOrCreate(&note).Error; err != nil {
			log.Printf("Warn: Failed to seed note %q: %v", note.Title, err)
		}
	}

	color.Green("Success: Seeded %d snapshots and %d notes.", len(snapshots), len(notes))
}
