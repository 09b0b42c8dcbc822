package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/ricogpa/ricogpa-backend/internal/config"
	"github.com/ricogpa/ricogpa-backend/internal/database"
	"github.com/ricogpa/ricogpa-backend/internal/logger"
	"github.com/ricogpa/ricogpa-backend/internal/repository"
	"github.com/ricogpa/ricogpa-backend/internal/service"
)

func main() {
	email := flag.String("email", "", "Email of the account to change")
	revoke := flag.Bool("revoke", false, "Remove admin access instead of granting it")
	flag.Parse()

	if *email == "" {
		fmt.Println("Usage: promote-admin -email <email> [-revoke]")
		os.Exit(2)
	}

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)

	user, err := userRepo.SetAdmin(ctx, service.NormalizeEmail(*email), !*revoke)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			fmt.Printf("Error: No account with email %s\n", *email)
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("Failed to update admin flag")
	}

	// Tokens issued before the change keep their old is_admin claim until they expire.
	fmt.Printf("Success! %s (ID %d) is_admin=%t\n", user.Email, user.ID, user.IsAdmin)
}
