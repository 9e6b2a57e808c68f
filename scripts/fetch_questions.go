// Manually trigger AI question generation for one internship.
//
// The same generation runs through the admin API endpoint; this script
// exists for first deployments and bulk imports where no admin token is
// at hand yet.
//
// Usage: go run scripts/fetch_questions.go <internship_id>

package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"lumo_backend/internal/config"
	"lumo_backend/internal/repository"
	"lumo_backend/internal/service"
	"lumo_backend/pkg/database"
	"lumo_backend/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: go run scripts/fetch_questions.go <internship_id>")
	}
	id, err := strconv.ParseUint(os.Args[1], 10, 32)
	if err != nil {
		log.Fatalf("invalid internship id %q: %v", os.Args[1], err)
	}

	// Same loader as the server, so snake_case keys and LUMO_ env
	// overrides (LUMO_AI_API_KEY in particular) apply here too.
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	internships := repository.NewInternshipRepository(db)
	questions := repository.NewQuestionRepository(db)
	aiService := service.NewAIService(cfg.AI)
	generator := service.NewQuestionService(internships, questions, aiService)

	log.Printf("Generating questions for internship %d...", id)
	counts, err := generator.GenerateAndStore(context.Background(), uint(id))
	if err != nil {
		log.Fatalf("generation failed: %v", err)
	}
	log.Printf("Done: %d quiz, %d coding, %d interview questions created", counts.Quiz, counts.Coding, counts.Interview)
}
