package repository

import (
	"context"

	"github.com/Edmundtutu/foody-sub002/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ComboSelectionRepository struct {
	DB *gorm.DB
}

func NewComboSelectionRepository(db *gorm.DB) *ComboSelectionRepository {
	return &ComboSelectionRepository{DB: db}
}

func (r *ComboSelectionRepository) CreateSelection(tx *gorm.DB, s *entity.ComboSelection) error {
	return tx.Omit(clause.Associations).Create(s).Error
}

func (r *ComboSelectionRepository) CreateSelectionItem(tx *gorm.DB, it *entity.ComboSelectionItem) error {
	return tx.Omit(clause.Associations).Create(it).Error
}

// FindWithItems loads the selection with items -> dish -> options.
func (r *ComboSelectionRepository) FindWithItems(ctx context.Context, id uint) (*entity.ComboSelection, error) {
	var s entity.ComboSelection
	err := r.DB.WithContext(ctx).
		Preload("Items", bySortOrder).
		Preload("Items.Dish").
		Preload("Items.Dish.Options", bySortOrder).
		First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// header only, for order pricing
func (r *ComboSelectionRepository) FindHeader(ctx context.Context, id uint) (*entity.ComboSelection, error) {
	var s entity.ComboSelection
	if err := r.DB.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
