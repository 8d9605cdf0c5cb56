package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/example/furnistore/internal/models"
	"github.com/example/furnistore/internal/utils"
)

// SeedSuperAdmin creates the bootstrap super admin when no admin accounts
// exist yet. Later admins are created through the super-admin API.
func SeedSuperAdmin(conn *gorm.DB, username, email, password string) {
	if username == "" || email == "" || password == "" {
		return
	}

	var count int64
	if err := conn.Model(&models.Admin{}).Count(&count).Error; err != nil {
		log.Printf("[Seed] failed to count admins: %v", err)
		return
	}
	if count > 0 {
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("[Seed] failed to hash bootstrap password: %v", err)
		return
	}

	admin := models.Admin{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleSuperAdmin,
		IsActive:     true,
	}

	if err := conn.Create(&admin).Error; err != nil {
		log.Printf("[Seed] failed to create bootstrap admin: %v", err)
		return
	}

	log.Printf("[Seed] created bootstrap super admin %q", username)
}
