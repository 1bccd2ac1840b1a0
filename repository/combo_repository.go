package repository

import (
	"context"

	"github.com/Edmundtutu/foody-sub002/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ComboRepository struct {
	DB *gorm.DB
}

func NewComboRepository(db *gorm.DB) *ComboRepository {
	return &ComboRepository{DB: db}
}

func bySortOrder(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC, id ASC")
}

// groups -> items -> dish -> options, plus category hints
func preloadTree(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Groups", bySortOrder).
		Preload("Groups.CategoryHints").
		Preload("Groups.Items", bySortOrder).
		Preload("Groups.Items.Dish").
		Preload("Groups.Items.Dish.Options", bySortOrder)
}

// ---------------- read ----------------

func (r *ComboRepository) FindTree(ctx context.Context, id uint) (*entity.Combo, error) {
	var c entity.Combo
	if err := preloadTree(r.DB.WithContext(ctx)).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// header only
func (r *ComboRepository) FindByID(ctx context.Context, id uint) (*entity.Combo, error) {
	var c entity.Combo
	if err := r.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ComboRepository) ListByRestaurant(ctx context.Context, restID uint, onlyAvailable bool) ([]entity.Combo, error) {
	q := r.DB.WithContext(ctx).Where("restaurant_id = ?", restID)
	if onlyAvailable {
		q = q.Where("available = ?", true)
	}
	var out []entity.Combo
	err := preloadTree(q).Order("id ASC").Find(&out).Error
	return out, err
}

// RestaurantIDOf resolves the owning restaurant, including soft-deleted combos.
func (r *ComboRepository) RestaurantIDOf(ctx context.Context, comboID uint) (uint, error) {
	var c entity.Combo
	err := r.DB.WithContext(ctx).Unscoped().Select("id, restaurant_id").First(&c, comboID).Error
	return c.RestaurantID, err
}

// ---------------- header write ----------------

func (r *ComboRepository) Create(tx *gorm.DB, c *entity.Combo) error {
	return tx.Omit(clause.Associations).Create(c).Error
}

func (r *ComboRepository) UpdateHeader(tx *gorm.DB, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return tx.Model(&entity.Combo{}).Where("id = ?", id).Updates(fields).Error
}

// soft delete; recorded selections keep pointing at the header
func (r *ComboRepository) Delete(tx *gorm.DB, id uint) error {
	return tx.Delete(&entity.Combo{}, id).Error
}

// ---------------- groups ----------------

func (r *ComboRepository) ListGroupIDs(tx *gorm.DB, comboID uint) ([]uint, error) {
	var ids []uint
	err := tx.Model(&entity.ComboGroup{}).Where("combo_id = ?", comboID).Order("id").Pluck("id", &ids).Error
	return ids, err
}

// DeleteGroups hard-deletes groups with their items and hint links.
func (r *ComboRepository) DeleteGroups(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("combo_group_id IN ?", ids).Delete(&entity.ComboGroupCategoryHint{}).Error; err != nil {
		return err
	}
	if err := tx.Unscoped().Where("combo_group_id IN ?", ids).Delete(&entity.ComboGroupItem{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Where("id IN ?", ids).Delete(&entity.ComboGroup{}).Error
}

// SaveGroup inserts when g.ID is zero, otherwise updates the mutable fields in place.
func (r *ComboRepository) SaveGroup(tx *gorm.DB, g *entity.ComboGroup) error {
	if g.ID == 0 {
		return tx.Omit(clause.Associations).Create(g).Error
	}
	return tx.Model(&entity.ComboGroup{}).Where("id = ?", g.ID).Updates(map[string]any{
		"name":        g.Name,
		"allowed_min": g.AllowedMin,
		"allowed_max": g.AllowedMax,
		"sort_order":  g.SortOrder,
	}).Error
}

// ReplaceGroupHints makes the group's hint links exactly categoryIDs.
func (r *ComboRepository) ReplaceGroupHints(tx *gorm.DB, groupID uint, categoryIDs []uint) error {
	if err := tx.Where("combo_group_id = ?", groupID).Delete(&entity.ComboGroupCategoryHint{}).Error; err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return nil
	}
	rows := make([]entity.ComboGroupCategoryHint, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		rows = append(rows, entity.ComboGroupCategoryHint{ComboGroupID: groupID, CategoryID: id})
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

// ---------------- items ----------------

func (r *ComboRepository) ListItemIDs(tx *gorm.DB, groupID uint) ([]uint, error) {
	var ids []uint
	err := tx.Model(&entity.ComboGroupItem{}).Where("combo_group_id = ?", groupID).Order("id").Pluck("id", &ids).Error
	return ids, err
}

func (r *ComboRepository) DeleteItems(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return tx.Unscoped().Where("id IN ?", ids).Delete(&entity.ComboGroupItem{}).Error
}

func (r *ComboRepository) SaveItem(tx *gorm.DB, it *entity.ComboGroupItem) error {
	if it.ID == 0 {
		return tx.Omit(clause.Associations).Create(it).Error
	}
	return tx.Model(&entity.ComboGroupItem{}).Where("id = ?", it.ID).Updates(map[string]any{
		"dish_id":     it.DishID,
		"extra_price": it.ExtraPrice,
		"sort_order":  it.SortOrder,
	}).Error
}
