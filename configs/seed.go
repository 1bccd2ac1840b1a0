package configs

import (
	"github.com/Edmundtutu/foody-sub002/entity"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the first admin from ADMIN_EMAIL / ADMIN_PASSWORD.
func SeedAdmin(database *gorm.DB) error {
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		log.Warn().Msg("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	if err := database.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info().Str("email", email).Msg("admin already exists")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Email:     email,
		Password:  string(hash),
		FirstName: "Admin",
		LastName:  "Seed",
		Role:      entity.RoleAdmin,
	}
	return database.Create(&admin).Error
}

// SeedLookups seeds lookup/status rows.
func SeedLookups(database *gorm.DB) error {
	for _, name := range []string{
		entity.OrderStatusPending, entity.OrderStatusPaid,
		entity.OrderStatusCompleted, entity.OrderStatusCancelled,
	} {
		if err := database.FirstOrCreate(&entity.OrderStatus{}, entity.OrderStatus{StatusName: name}).Error; err != nil {
			return err
		}
	}
	log.Info().Msg("lookup tables seeded")
	return nil
}
