package entity

import (
	"time"
)

type ComboSelectionItem struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	ComboSelectionID uint              `gorm:"index;not null" json:"combo_selection_id"`
	DishID           uint              `gorm:"index;not null" json:"dish_id"`
	Dish             Dish              `json:"dish"`
	Options          SelectionSnapshot `gorm:"type:text;serializer:json" json:"options"`
	Price            int64             `gorm:"not null" json:"price"`
	SortOrder        int               `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt        time.Time         `json:"created_at"`
}

// SelectionSnapshot denormalizes one priced line so it can be read without
// joining back to the live combo or dish.
type SelectionSnapshot struct {
	GroupID        uint             `json:"group_id"`
	GroupName      string           `json:"group_name"`
	DishName       string           `json:"dish_name"`
	DishBasePrice  int64            `json:"dish_base_price"`
	ComboItemExtra int64            `json:"combo_item_extra"`
	AppliedExtra   int64            `json:"applied_extra"`
	OptionIDs      []uint           `json:"option_ids"`
	Options        []SnapshotOption `json:"options"`
	OptionsTotal   int64            `json:"options_total"`
}

type SnapshotOption struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	ExtraCost int64  `json:"extra_cost"`
}
