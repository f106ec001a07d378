package main

import (
	"log"

	"github.com/ms-horiuchi/todoapp/internal/auth"
	"github.com/ms-horiuchi/todoapp/internal/config"
	"github.com/ms-horiuchi/todoapp/internal/handler"
	"github.com/ms-horiuchi/todoapp/internal/repository"
	"github.com/ms-horiuchi/todoapp/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := store.Connect(cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := store.EnsureSchema(db); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	log.Println("Successfully connected to PostgreSQL database!")

	users := repository.NewUserRepository(db, log.Default())
	items := repository.NewItemRepository(db, log.Default())
	tokens := auth.NewService([]byte(cfg.JWTSecret), users)

	router := handler.NewRouter(items, users, tokens, cfg.CORSOrigin)
	log.Fatal(router.Run(cfg.Addr))
}
