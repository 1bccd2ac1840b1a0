package repository

import (
	"context"

	"github.com/Edmundtutu/foody-sub002/entity"
	"gorm.io/gorm"
)

// CatalogRepository reads dishes and categories. The combo engine never writes them.
type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) FindDishesByIDs(ctx context.Context, ids []uint) ([]entity.Dish, error) {
	var out []entity.Dish
	if len(ids) == 0 {
		return out, nil
	}
	err := r.DB.WithContext(ctx).
		Select("id, restaurant_id, name, price, available").
		Where("id IN ?", ids).
		Find(&out).Error
	return out, err
}

func (r *CatalogRepository) FindDish(ctx context.Context, id uint) (*entity.Dish, error) {
	var d entity.Dish
	if err := r.DB.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *CatalogRepository) FindCategoriesByIDs(ctx context.Context, ids []uint) ([]entity.Category, error) {
	var out []entity.Category
	if len(ids) == 0 {
		return out, nil
	}
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}
