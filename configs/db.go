package configs

import (
	"fmt"

	"github.com/Edmundtutu/foody-sub002/entity"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(cfg *Config) error {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBSource)
	case "postgres":
		dialector = postgres.Open(cfg.DBSource)
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	database, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	db = database
	log.Info().Str("driver", cfg.DBDriver).Msg("database connected")
	return nil
}

// Migrate registers the custom join table and migrates every table. Tests
// call it on their own in-memory database.
func Migrate(database *gorm.DB) error {
	// join table (many2many ComboGroup<->Category)
	if err := database.SetupJoinTable(&entity.ComboGroup{}, "CategoryHints", &entity.ComboGroupCategoryHint{}); err != nil {
		return fmt.Errorf("setup join table: %w", err)
	}
	return database.AutoMigrate(
		&entity.User{}, &entity.Restaurant{},
		&entity.Category{}, &entity.Dish{}, &entity.DishOption{},
		&entity.Combo{}, &entity.ComboGroup{}, &entity.ComboGroupItem{}, &entity.ComboGroupCategoryHint{},
		&entity.ComboSelection{}, &entity.ComboSelectionItem{},
		&entity.OrderStatus{}, &entity.Order{}, &entity.OrderItem{},
	)
}
