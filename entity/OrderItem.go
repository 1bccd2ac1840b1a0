package entity

import (
	"gorm.io/gorm"
)

// OrderItem stores its orderable as two nullable columns; read and write it
// through Orderable/SetOrderable only.
type OrderItem struct {
	gorm.Model
	Qty       int   `json:"qty"`
	UnitPrice int64 `json:"unit_price"`
	Total     int64 `json:"total"`

	OrderID uint  `gorm:"index" json:"order_id"`
	Order   Order `json:"-"`

	DishID           *uint `gorm:"index" json:"dish_id,omitempty"`
	ComboSelectionID *uint `gorm:"index" json:"combo_selection_id,omitempty"`
}

func (oi *OrderItem) Orderable() (Orderable, error) {
	return NewOrderable(oi.DishID, oi.ComboSelectionID)
}

func (oi *OrderItem) SetOrderable(o Orderable) {
	oi.DishID, oi.ComboSelectionID = nil, nil
	if id, ok := o.Dish(); ok {
		oi.DishID = &id
	}
	if id, ok := o.ComboSelection(); ok {
		oi.ComboSelectionID = &id
	}
}
