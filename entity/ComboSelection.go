package entity

import (
	"time"
)

// ComboSelection is an append-only priced snapshot of one customer's combo
// choices. Rows are never updated, so there is no UpdatedAt/DeletedAt.
type ComboSelection struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Reference   string      `gorm:"size:36;uniqueIndex;not null" json:"reference"`
	ComboID     uint        `gorm:"index;not null" json:"combo_id"`
	Combo       Combo       `json:"-"`
	UserID      *uint       `gorm:"index" json:"user_id"`
	PricingMode PricingMode `gorm:"size:16;not null" json:"pricing_mode"`
	TotalPrice  int64       `gorm:"not null" json:"total_price"`
	CreatedAt   time.Time   `json:"created_at"`

	Items []ComboSelectionItem `gorm:"constraint:OnDelete:CASCADE;" json:"items"`
}

// OwnedBy reports whether the selection was recorded for userID.
func (s *ComboSelection) OwnedBy(userID uint) bool {
	return s.UserID != nil && *s.UserID == userID
}
