package main

import (
	"context"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"innoreg/internal/config"
	"innoreg/internal/db"
	"innoreg/internal/model"
	"innoreg/internal/repository"
)

// Seeds the first admin account and, optionally, a handful of demo projects.
// Role changes happen only out-of-band, so this is the supported way to
// bootstrap moderation access.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.ProjectLike{},
		&model.ModerationLog{},
		&model.Feedback{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)

	admin, err := seedAdmin(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	if os.Getenv("SEED_DEMO_PROJECTS") == "true" {
		if err := seedDemoProjects(ctx, projectRepo, admin); err != nil {
			log.Fatalf("Failed to seed demo projects: %v", err)
		}
	}

	log.Println("Seed complete")
}

func seedAdmin(ctx context.Context, userRepo repository.UserRepository) (*model.User, error) {
	email := envOr("SEED_ADMIN_EMAIL", "admin@example.com")

	existing, err := userRepo.FindByEmail(ctx, email)
	if err == nil {
		log.Printf("Admin %s already exists, skipping", email)
		return existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	password := envOr("SEED_ADMIN_PASSWORD", "change-me-now")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return nil, err
	}

	admin := &model.User{
		Username:     envOr("SEED_ADMIN_USERNAME", "admin"),
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		Organization: "Registry",
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return nil, err
	}
	log.Printf("Created admin user %s", email)
	return admin, nil
}

func seedDemoProjects(ctx context.Context, projectRepo repository.ProjectRepository, owner *model.User) error {
	demos := []model.Project{
		{
			Name:          "Crop Health Scanner",
			Category:      model.CategoryAgriculture,
			TeamMembers:   []string{"Asha Patel", "Ravi Kumar"},
			Description:   "Handheld NDVI scanner for early blight detection.",
			ContactEmail:  "asha@example.com",
			ContactNumber: "555-0101",
			OwnerID:       owner.ID,
			Status:        model.StatusApproved,
		},
		{
			Name:          "Swarm Mapping Drone",
			Category:      model.CategoryDrones,
			TeamMembers:   []string{"Lin Wei"},
			Description:   "Low-cost quadcopter swarm for terrain mapping.",
			ContactEmail:  "lin@example.com",
			ContactNumber: "555-0102",
			OwnerID:       owner.ID,
			Status:        model.StatusApproved,
			IsFeatured:    true,
		},
		{
			Name:          "Warehouse Picker Arm",
			Category:      model.CategoryRobotics,
			TeamMembers:   []string{"Sam Ortiz", "Dana Lee"},
			Description:   "Six-axis arm with vision-guided grasping.",
			ContactEmail:  "sam@example.com",
			ContactNumber: "555-0103",
			OwnerID:       owner.ID,
			Status:        model.StatusPending,
		},
	}

	for i := range demos {
		if err := projectRepo.Create(ctx, &demos[i]); err != nil {
			return err
		}
		log.Printf("Created demo project %q (%s)", demos[i].Name, demos[i].Status)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
