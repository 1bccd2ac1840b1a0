package entity

import (
	"gorm.io/gorm"
)

// Dish is a catalog item. The combo engine only reads it.
type Dish struct {
	gorm.Model
	Name      string `json:"name"`
	Detail    string `json:"detail"`
	Price     int64  `json:"price"`
	Available bool   `gorm:"not null;default:true" json:"available"`

	RestaurantID uint       `gorm:"index" json:"restaurant_id"`
	Restaurant   Restaurant `json:"-"`

	Options []DishOption `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"options"`
}
