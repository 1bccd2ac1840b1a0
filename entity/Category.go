package entity

import (
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name string `gorm:"size:100;not null" json:"name"`

	RestaurantID uint       `gorm:"index" json:"restaurant_id"`
	Restaurant   Restaurant `json:"-"`
}
