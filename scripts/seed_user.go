package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/khoahotran/devconnect/adapters/persistence"
	"github.com/khoahotran/devconnect/internal/config"
	"github.com/khoahotran/devconnect/internal/domain/user"
	"github.com/khoahotran/devconnect/pkg/auth"
	"github.com/khoahotran/devconnect/pkg/logger"
)

// Adds or refreshes a user in the configured store and prints a token for it.
func main() {
	fmt.Println("adding user into store...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	appLogger := logger.NewZapLogger(cfg.App.Env)

	email := os.Getenv("SEED_EMAIL")
	password := os.Getenv("SEED_PASSWORD")
	name := os.Getenv("SEED_NAME")
	if email == "" || password == "" {
		log.Fatal("SEED_EMAIL and SEED_PASSWORD are required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	store, err := persistence.OpenStore(ctx, cfg, appLogger)
	if err != nil {
		log.Fatalf("cannot open store: %v", err)
	}
	defer store.Close()

	u := &user.User{
		Name:         name,
		Email:        email,
		Avatar:       os.Getenv("SEED_AVATAR"),
		PasswordHash: hash,
	}
	if err := store.Users.Upsert(ctx, u); err != nil {
		log.Fatalf("cannot add user: %v", err)
	}

	token, err := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan).GenerateToken(u.ID)
	if err != nil {
		log.Fatalf("cannot sign token: %v", err)
	}

	fmt.Printf("added or updated user '%s' (%s) successfully!\n", email, u.ID)
	fmt.Printf("x-auth-token: %s\n", token)
}
