// Command seed-admin creates the bootstrap ADMIN account if none exists.
// Editorial accounts are never self-served through registration.
package main

import (
	"errors"
	"journal-editorial-api/config"
	"journal-editorial-api/models"
	"journal-editorial-api/utils"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitDB()

	if err := config.DB.AutoMigrate(&models.User{}); err != nil {
		log.Fatal("Failed to migrate users table:", err)
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@jitted.org"
	}
	if !utils.ValidateEmail(email) {
		log.Fatalf("ADMIN_EMAIL %q is not a valid address", email)
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("ADMIN_PASSWORD is required")
	}

	var existing models.User
	err := config.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Printf("Admin user already exists: %s", email)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal("Failed to check for existing admin:", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	affiliation := "JITTED"
	admin := models.User{
		Name:        "Admin User",
		Email:       email,
		Password:    string(hash),
		Role:        models.RoleAdmin,
		Affiliation: &affiliation,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	log.Printf("Admin user created: %s", email)
}
