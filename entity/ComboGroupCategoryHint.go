package entity

// join table ComboGroup <-> Category
type ComboGroupCategoryHint struct {
	ComboGroupID uint `gorm:"primaryKey" json:"combo_group_id"`
	CategoryID   uint `gorm:"primaryKey" json:"category_id"`
}
