package entity

import (
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "Pending"
	OrderStatusPaid      = "Paid"
	OrderStatusCompleted = "Completed"
	OrderStatusCancelled = "Cancelled"
)

type OrderStatus struct {
	gorm.Model
	StatusName string `gorm:"uniqueIndex" json:"status_name"`

	Orders []Order `json:"-"`
}
