package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hawkerhub/hawkerhub-backend/config"
	"github.com/hawkerhub/hawkerhub-backend/internal/app/model"
	"github.com/hawkerhub/hawkerhub-backend/internal/db"
	"github.com/hawkerhub/hawkerhub-backend/pkg/util"
)

// Seeds the bootstrap admin account, plus a demo dataset when --demo is
// passed. Safe to re-run: existing accounts are left untouched.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	adminEmail := getEnv("SEED_ADMIN_EMAIL", "admin@hawkerhub.local")
	adminPassword := getEnv("SEED_ADMIN_PASSWORD", "changeme123")

	admin, err := ensureUser(adminEmail, adminPassword, "Platform Admin", model.RoleAdmin)
	if err != nil {
		log.Fatal("Failed to seed admin:", err)
	}
	fmt.Printf("Admin account ready: %s (id=%d)\n", admin.Email, admin.ID)

	if len(os.Args) > 1 && os.Args[1] == "--demo" {
		if err := seedDemoData(); err != nil {
			log.Fatal("Failed to seed demo data:", err)
		}
		fmt.Println("Demo data seeded.")
	}
}

func ensureUser(email, password, name string, role model.UserRole) (*model.User, error) {
	var existing model.User
	err := db.GetDB().Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing, nil
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
	}
	if err := db.GetDB().Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func seedDemoData() error {
	owner, err := ensureUser("mei.lin@hawkerhub.local", "demo-owner-pw", "Mei Lin", model.RoleStallOwner)
	if err != nil {
		return err
	}
	customer, err := ensureUser("raj@hawkerhub.local", "demo-customer-pw", "Raj Kumar", model.RoleCustomer)
	if err != nil {
		return err
	}

	var count int64
	if err := db.GetDB().Model(&model.FoodStall{}).Where("owner_id = ?", owner.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	stall := &model.FoodStall{
		OwnerID:     owner.ID,
		Name:        "Mei Lin Chicken Rice",
		Description: "Hainanese chicken rice, third-generation recipe.",
		Categories:  model.StringArray{"chinese", "halal-friendly"},
		IsActive:    true,
	}
	if err := db.GetDB().Create(stall).Error; err != nil {
		return err
	}

	location := &model.StallLocation{
		StallID: stall.ID,
		Address: "Maxwell Food Centre #01-10",
	}
	if err := db.GetDB().Create(location).Error; err != nil {
		return err
	}

	items := []model.MenuItem{
		{StallID: stall.ID, Name: "Chicken Rice", Price: 4.50, Available: true},
		{StallID: stall.ID, Name: "Roasted Chicken Rice", Price: 5.00, Available: true},
	}
	if err := db.GetDB().Create(&items).Error; err != nil {
		return err
	}

	review := &model.Review{
		StallID:  stall.ID,
		AuthorID: customer.ID,
		Rating:   5,
		Title:    "Worth the queue",
		Comment:  "Tender chicken, fragrant rice. Queue moves fast.",
	}
	return db.GetDB().Create(review).Error
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
