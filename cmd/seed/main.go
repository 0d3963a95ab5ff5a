package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"

	"timetrack/internal/auth"
	"timetrack/internal/config"
	"timetrack/internal/db"
	apperrors "timetrack/internal/errors"
	"timetrack/internal/model"
	"timetrack/internal/repository"
)

// Seeds a super admin and a couple of sample projects for local bootstrap.
// Existing records are left untouched, so the command is safe to re-run.
func main() {
	log.Println("Starting seed script...")

	_ = godotenv.Load()
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.Project{}, &model.TimeLog{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)

	adminEmail := "admin@timetrack.local"
	if _, err := userRepo.FindByEmail(ctx, adminEmail); err == nil {
		log.Printf("Super admin %s already exists, skipping", adminEmail)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		log.Fatalf("Failed to check super admin: %v", err)
	} else {
		hash, err := auth.HashPassword("ChangeMe!123")
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		admin := &model.User{
			Email:        adminEmail,
			PasswordHash: hash,
			FirstName:    "Super",
			LastName:     "Admin",
			Role:         model.RoleSuperAdmin,
			IsActive:     true,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			log.Fatalf("Failed to create super admin: %v", err)
		}
		log.Printf("Created super admin %s (password ChangeMe!123, change it)", adminEmail)
	}

	sampleProjects := []string{"Internal", "Client Work"}
	existing, err := projectRepo.FindByFilters(ctx, repository.ProjectFilters{})
	if err != nil {
		log.Fatalf("Failed to list projects: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Found %d projects, skipping sample projects", len(existing))
	} else {
		for _, name := range sampleProjects {
			project := &model.Project{Name: name, IsActive: true}
			if err := projectRepo.Create(ctx, project); err != nil {
				log.Fatalf("Failed to create project %s: %v", name, err)
			}
			log.Printf("Created project %s", name)
		}
	}

	log.Println("Seed complete")
}
