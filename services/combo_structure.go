package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Edmundtutu/foody-sub002/entity"
	"github.com/Edmundtutu/foody-sub002/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ----- payload -----

// ItemInput describes one desired group item. ID nil means "create".
type ItemInput struct {
	ID         *uint `json:"id"`
	DishID     uint  `json:"dish_id"`
	ExtraPrice int64 `json:"extra_price"`
}

// GroupInput describes one desired group. A nil CategoryHintIDs or Items
// leaves the current links/items alone; a non-nil empty slice clears them.
type GroupInput struct {
	ID              *uint        `json:"id"`
	Name            string       `json:"name"`
	AllowedMin      int          `json:"allowed_min"`
	AllowedMax      int          `json:"allowed_max"`
	CategoryHintIDs *[]uint      `json:"category_hint_ids"`
	Items           *[]ItemInput `json:"items"`
}

type StructureReq struct {
	Groups []GroupInput `json:"groups"`
}

// ----- planning -----

// rowRef is what one payload entry maps to: an existing row (update in
// place) or a new one.
type rowRef struct {
	id       uint
	existing bool
}

func existingRow(id uint) rowRef { return rowRef{id: id, existing: true} }
func newRow() rowRef             { return rowRef{} }

type syncPlan struct {
	deletes []uint
	refs    []rowRef // aligned with the payload entries
}

// planSync diffs the persisted ids against the ids carried by the payload.
// keepIds holds only the ids actually present in the payload; every
// existing id not in keepIds is deleted and every id-less entry (or id that
// is not an existing row) becomes a create. With no ids at all this is
// "replace all".
func planSync(existingIDs []uint, payloadIDs []*uint) syncPlan {
	existing := make(map[uint]bool, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = true
	}
	keep := make(map[uint]bool, len(payloadIDs))
	for _, p := range payloadIDs {
		if p != nil {
			keep[*p] = true
		}
	}

	var plan syncPlan
	for _, id := range existingIDs {
		if !keep[id] {
			plan.deletes = append(plan.deletes, id)
		}
	}
	plan.refs = make([]rowRef, len(payloadIDs))
	for i, p := range payloadIDs {
		if p != nil && existing[*p] {
			plan.refs[i] = existingRow(*p)
		} else {
			plan.refs[i] = newRow()
		}
	}
	return plan
}

func groupIDs(groups []GroupInput) []*uint {
	out := make([]*uint, len(groups))
	for i := range groups {
		out[i] = groups[i].ID
	}
	return out
}

func itemIDs(items []ItemInput) []*uint {
	out := make([]*uint, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}

// ----- service -----

type ComboStructureService struct {
	DB      *gorm.DB
	Combos  *repository.ComboRepository
	Catalog *repository.CatalogRepository
	Policy  *ComboPolicy
}

func NewComboStructureService(db *gorm.DB, combos *repository.ComboRepository, catalog *repository.CatalogRepository, policy *ComboPolicy) *ComboStructureService {
	return &ComboStructureService{DB: db, Combos: combos, Catalog: catalog, Policy: policy}
}

// Reconcile makes the combo's groups and items match groups, atomically.
func (s *ComboStructureService) Reconcile(ctx context.Context, actor Actor, comboID uint, groups []GroupInput) (*entity.Combo, error) {
	combo, err := s.Combos.FindByID(ctx, comboID)
	if err != nil {
		return nil, err
	}
	decision, err := s.Policy.CanManage(ctx, actor, combo.RestaurantID)
	if err != nil {
		return nil, err
	}
	if err := decision.Err(); err != nil {
		return nil, err
	}

	if err := s.ValidateGroups(ctx, combo.RestaurantID, groups); err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.Apply(tx, combo.ID, groups)
	})
	if err != nil {
		log.Error().Err(err).Uint("combo_id", comboID).Msg("combo structure reconcile failed")
		return nil, fmt.Errorf("reconcile combo %d: %w", comboID, err)
	}
	return s.Combos.FindTree(ctx, comboID)
}

// Apply runs the reconciliation writes on tx. Callers validate first.
func (s *ComboStructureService) Apply(tx *gorm.DB, comboID uint, groups []GroupInput) error {
	existing, err := s.Combos.ListGroupIDs(tx, comboID)
	if err != nil {
		return err
	}
	plan := planSync(existing, groupIDs(groups))
	if err := s.Combos.DeleteGroups(tx, plan.deletes); err != nil {
		return err
	}

	for i, in := range groups {
		g := entity.ComboGroup{
			ComboID:    comboID,
			Name:       strings.TrimSpace(in.Name),
			AllowedMin: in.AllowedMin,
			AllowedMax: in.AllowedMax,
			SortOrder:  i,
		}
		if ref := plan.refs[i]; ref.existing {
			g.ID = ref.id
		}
		if err := s.Combos.SaveGroup(tx, &g); err != nil {
			return err
		}

		if in.CategoryHintIDs != nil {
			if err := s.Combos.ReplaceGroupHints(tx, g.ID, uniqueIDs(*in.CategoryHintIDs)); err != nil {
				return err
			}
		}
		if in.Items != nil {
			if err := s.applyItems(tx, g.ID, *in.Items); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *ComboStructureService) applyItems(tx *gorm.DB, groupID uint, items []ItemInput) error {
	existing, err := s.Combos.ListItemIDs(tx, groupID)
	if err != nil {
		return err
	}
	plan := planSync(existing, itemIDs(items))
	if err := s.Combos.DeleteItems(tx, plan.deletes); err != nil {
		return err
	}
	for i, in := range items {
		it := entity.ComboGroupItem{
			ComboGroupID: groupID,
			DishID:       in.DishID,
			ExtraPrice:   in.ExtraPrice,
			SortOrder:    i,
		}
		if ref := plan.refs[i]; ref.existing {
			it.ID = ref.id
		}
		if err := s.Combos.SaveItem(tx, &it); err != nil {
			return err
		}
	}
	return nil
}

// ValidateGroups checks shape and references before anything is written.
func (s *ComboStructureService) ValidateGroups(ctx context.Context, restaurantID uint, groups []GroupInput) error {
	var errs ValidationErrors
	var dishIDs, categoryIDs []uint
	seenGroup := map[uint]bool{}

	for gi, g := range groups {
		field := fmt.Sprintf("groups.%d", gi)
		if g.ID != nil {
			if seenGroup[*g.ID] {
				errs.add(field+".id", KindInvalidField, "Group id %d is listed more than once.", *g.ID)
			}
			seenGroup[*g.ID] = true
		}
		if strings.TrimSpace(g.Name) == "" {
			errs.add(field+".name", KindInvalidField, "Group name is required.")
		}
		if g.AllowedMin < 0 || g.AllowedMax < g.AllowedMin {
			errs.add(field+".allowed_max", KindInvalidGroupBounds,
				"Group bounds must satisfy 0 <= allowed_min <= allowed_max (got %d..%d).", g.AllowedMin, g.AllowedMax)
		}
		if g.CategoryHintIDs != nil {
			categoryIDs = append(categoryIDs, *g.CategoryHintIDs...)
		}
		if g.Items == nil {
			continue
		}

		seenDish := map[uint]bool{}
		seenItem := map[uint]bool{}
		for ii, it := range *g.Items {
			f := fmt.Sprintf("%s.items.%d", field, ii)
			if it.ID != nil {
				if seenItem[*it.ID] {
					errs.add(f+".id", KindInvalidField, "Item id %d is listed more than once.", *it.ID)
				}
				seenItem[*it.ID] = true
			}
			if it.DishID == 0 {
				errs.add(f+".dish_id", KindInvalidField, "Dish is required.")
			} else {
				if seenDish[it.DishID] {
					errs.add(f+".dish_id", KindDuplicateDishInGroup, "Dish %d appears more than once in this group.", it.DishID)
				}
				seenDish[it.DishID] = true
				dishIDs = append(dishIDs, it.DishID)
			}
			if it.ExtraPrice < 0 {
				errs.add(f+".extra_price", KindInvalidField, "Extra price must not be negative.")
			}
		}
	}

	if err := s.checkReferences(ctx, restaurantID, groups, uniqueIDs(dishIDs), uniqueIDs(categoryIDs), &errs); err != nil {
		return err
	}
	return errs.orNil()
}

func (s *ComboStructureService) checkReferences(ctx context.Context, restaurantID uint, groups []GroupInput, dishIDs, categoryIDs []uint, errs *ValidationErrors) error {
	dishes, err := s.Catalog.FindDishesByIDs(ctx, dishIDs)
	if err != nil {
		return err
	}
	dishOK := make(map[uint]bool, len(dishes))
	for _, d := range dishes {
		dishOK[d.ID] = d.RestaurantID == restaurantID
	}
	cats, err := s.Catalog.FindCategoriesByIDs(ctx, categoryIDs)
	if err != nil {
		return err
	}
	catOK := make(map[uint]bool, len(cats))
	for _, c := range cats {
		catOK[c.ID] = c.RestaurantID == restaurantID
	}

	for gi, g := range groups {
		if g.CategoryHintIDs != nil {
			for _, id := range *g.CategoryHintIDs {
				if !catOK[id] {
					errs.add(fmt.Sprintf("groups.%d.category_hint_ids", gi), KindStructureReferentialError,
						"Category %d was not found for this restaurant.", id)
				}
			}
		}
		if g.Items == nil {
			continue
		}
		for ii, it := range *g.Items {
			if it.DishID != 0 && !dishOK[it.DishID] {
				errs.add(fmt.Sprintf("groups.%d.items.%d.dish_id", gi, ii), KindStructureReferentialError,
					"Dish %d was not found for this restaurant.", it.DishID)
			}
		}
	}
	return nil
}

// uniqueIDs keeps first occurrences, in order.
func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
