package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`

	UserID uint `json:"user_id"` // owner (users.id)
	User   User `json:"-"`

	Dishes     []Dish     `json:"-"`
	Categories []Category `json:"-"`
	Combos     []Combo    `json:"-"`
}
