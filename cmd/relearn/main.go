// Command relearn rebuilds the correction pattern set from all stored
// feedback and prints a summary. Useful for inspecting what the learning
// store would pick up without running the server.
// Usage: go run ./cmd/relearn
package main

import (
	"context"
	"fmt"
	"log"

	"menulens/internal/config"
	"menulens/internal/menu/learning"
	"menulens/internal/repository/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	feedbackRepo := postgres.NewFeedbackRepo(db)
	records, err := feedbackRepo.ListAll(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load feedback: %w", err)
	}

	store := learning.NewStore(learning.DefaultConfig())
	store.Initialize(records)

	patterns := store.Patterns()
	log.Printf("Rebuilt learning store from %d feedback records: %d patterns", len(records), len(patterns))
	for _, p := range patterns {
		log.Printf("  [%s] %q -> %q (confidence %.2f, seen %d)",
			p.Type, p.Original, p.Corrected, p.Confidence, p.Frequency)
	}
	return nil
}
