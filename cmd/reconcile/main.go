// Command reconcile repairs the denormalized comment counters on posts.
package main

import (
	"context"
	"log"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/repository"
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	drifts, err := repository.NewPostRepository(db).ReconcileCommentsCount(ctx)
	if err != nil {
		log.Fatalf("Reconciliation failed: %v", err)
	}

	for _, d := range drifts {
		log.Printf("post %d: comments_count %d -> %d", d.PostID, d.Stored, d.Actual)
	}
	log.Printf("Reconciliation complete: %d counters repaired", len(drifts))
}
