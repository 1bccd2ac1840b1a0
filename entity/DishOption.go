package entity

import (
	"gorm.io/gorm"
)

type DishOption struct {
	gorm.Model
	DishID    uint   `gorm:"index" json:"dish_id"`
	Name      string `json:"name"`
	ExtraCost int64  `json:"extra_cost"`
	Required  bool   `json:"required"`
	SortOrder int    `gorm:"not null;default:0" json:"sort_order"`
}
