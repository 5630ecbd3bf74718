package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/examportal/examportal-backend/internal/config"
	"github.com/examportal/examportal-backend/internal/database"
	"github.com/examportal/examportal-backend/internal/logger"
	"github.com/examportal/examportal-backend/internal/model"
	"github.com/examportal/examportal-backend/internal/repository"
)

// seedQuestion mirrors the JSON seed file entries.
type seedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Category      string   `json:"category"`
	Difficulty    string   `json:"difficulty"`
}

func main() {
	var seedFile string
	flag.StringVar(&seedFile, "file", "seed/questions.json", "Path to the questions seed file")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	raw, err := os.ReadFile(seedFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", seedFile).Msg("Failed to read seed file")
	}

	var seeds []seedQuestion
	if err := json.Unmarshal(raw, &seeds); err != nil {
		log.Fatal().Err(err).Msg("Seed file is not a JSON array of questions")
	}
	if len(seeds) == 0 {
		log.Fatal().Msg("Seed file contains no questions")
	}

	fmt.Printf("=== Seeding %d Questions ===\n", len(seeds))

	questions := make([]model.Question, 0, len(seeds))
	for i, s := range seeds {
		if len(s.Options) != 4 {
			log.Fatal().Int("index", i).Msg("Question must have exactly 4 options")
		}
		difficulty := model.DifficultyMedium
		if s.Difficulty != "" {
			difficulty = model.Difficulty(s.Difficulty)
		}
		questions = append(questions, model.Question{
			QuestionText:  s.Question,
			Options:       s.Options,
			CorrectAnswer: s.CorrectAnswer,
			Category:      model.Category(s.Category),
			Difficulty:    difficulty,
			IsActive:      true,
		})
	}

	questionRepo := repository.NewQuestionRepository(pool)
	if err := questionRepo.BulkCreate(ctx, questions); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed questions")
	}

	fmt.Printf("Seeded %d questions successfully\n", len(questions))
}
