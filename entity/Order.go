package entity

import (
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"delivery_fee"`
	Total       int64 `json:"total"`

	UserID uint `gorm:"index" json:"user_id"`
	User   User `json:"-"`

	RestaurantID uint       `gorm:"index" json:"restaurant_id"`
	Restaurant   Restaurant `json:"-"`

	OrderStatusID uint        `json:"order_status_id"`
	OrderStatus   OrderStatus `json:"order_status"`

	// preload only for detail
	OrderItems []OrderItem `json:"-"`
}
