package entity

import (
	"gorm.io/gorm"
)

type Combo struct {
	gorm.Model
	RestaurantID uint       `gorm:"index;not null" json:"restaurant_id"`
	Restaurant   Restaurant `json:"-"`

	Name        string      `gorm:"not null" json:"name"`
	Description string      `json:"description"`
	PricingMode PricingMode `gorm:"size:16;not null;default:FIXED" json:"pricing_mode"`
	BasePrice   int64       `gorm:"not null;default:0" json:"base_price"`
	Available   bool        `gorm:"not null;default:true" json:"available"`

	// ordered by sort_order; preload through the repository
	Groups []ComboGroup `json:"groups"`
}

// Group returns the combo's group with the given id, if loaded.
func (c *Combo) Group(id uint) (*ComboGroup, bool) {
	for i := range c.Groups {
		if c.Groups[i].ID == id {
			return &c.Groups[i], true
		}
	}
	return nil, false
}
