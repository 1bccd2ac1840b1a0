package entity

import (
	"gorm.io/gorm"
)

type ComboGroup struct {
	gorm.Model
	ComboID    uint   `gorm:"index;not null" json:"combo_id"`
	Name       string `gorm:"not null" json:"name"`
	AllowedMin int    `gorm:"not null;default:0" json:"allowed_min"`
	AllowedMax int    `gorm:"not null" json:"allowed_max"`
	SortOrder  int    `gorm:"not null;default:0" json:"sort_order"`

	// advisory only, never checked at pricing time
	CategoryHints []Category `gorm:"many2many:combo_group_category_hints;" json:"category_hints"`

	Items []ComboGroupItem `json:"items"`
}

// Accepts reports whether n selections satisfy the group bounds.
func (g *ComboGroup) Accepts(n int) bool {
	return n >= g.AllowedMin && n <= g.AllowedMax
}

// Item returns the group item configured for dishID, if loaded.
func (g *ComboGroup) Item(dishID uint) (*ComboGroupItem, bool) {
	for i := range g.Items {
		if g.Items[i].DishID == dishID {
			return &g.Items[i], true
		}
	}
	return nil, false
}
