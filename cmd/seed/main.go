package main

import (
	"context"
	"log"

	"gorm.io/gorm"

	"goaltracker/internal/config"
	"goaltracker/internal/db"
	"goaltracker/internal/model"
	"goaltracker/internal/repository"
	"goaltracker/internal/service"
)

// seedUser is a demo account with a plaintext password that gets hashed on
// insert. Useful for local development and manual API exploration.
type seedUser struct {
	Username string
	Password string
	Goals    []model.Goal
}

var seedUsers = []seedUser{
	{
		Username: "alice",
		Password: "secret1",
		Goals: []model.Goal{
			{Goal: "run", Count: 0},
			{Goal: "read", Count: 12},
		},
	},
	{
		Username: "bob",
		Password: "hunter22",
		Goals: []model.Goal{
			{Goal: "meditate", Count: 3},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Goal{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	goalRepo := repository.NewGoalRepository(gormDB)
	hasher := service.NewPasswordHasher()
	ctx := context.Background()

	created, skipped := 0, 0
	for _, su := range seedUsers {
		existing, err := userRepo.FindByUsername(ctx, su.Username)
		if err != nil && err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to check user %s: %v", su.Username, err)
		}
		if existing != nil {
			log.Printf("User %s already exists, skipping", su.Username)
			skipped++
			continue
		}

		hash, err := hasher.Hash(su.Password)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", su.Username, err)
		}

		user := &model.User{Username: su.Username, PasswordHash: hash}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", su.Username, err)
		}

		for _, g := range su.Goals {
			goal := g
			goal.UserID = user.ID
			if err := goalRepo.Create(ctx, &goal); err != nil {
				log.Fatalf("Failed to create goal %q for %s: %v", goal.Goal, su.Username, err)
			}
		}
		created++
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users created: %d", created)
	log.Printf("  - Users skipped: %d", skipped)
}
