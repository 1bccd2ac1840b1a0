package entity

import (
	"gorm.io/gorm"
)

type ComboGroupItem struct {
	gorm.Model
	ComboGroupID uint  `gorm:"index;not null" json:"combo_group_id"`
	DishID       uint  `gorm:"index;not null" json:"dish_id"`
	Dish         Dish  `json:"dish"`
	ExtraPrice   int64 `gorm:"not null;default:0" json:"extra_price"`
	SortOrder    int   `gorm:"not null;default:0" json:"sort_order"`
}

// Option returns the dish option with the given id, if the dish options are loaded.
func (it *ComboGroupItem) Option(optionID uint) (*DishOption, bool) {
	for i := range it.Dish.Options {
		if it.Dish.Options[i].ID == optionID {
			return &it.Dish.Options[i], true
		}
	}
	return nil, false
}
