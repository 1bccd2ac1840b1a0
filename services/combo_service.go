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

// ----- DTOs from Controller -----

type CreateComboReq struct {
	RestaurantID uint               `json:"restaurant_id" binding:"required"`
	Name         string             `json:"name" binding:"required"`
	Description  string             `json:"description"`
	PricingMode  entity.PricingMode `json:"pricing_mode" binding:"required,pricing_mode"`
	BasePrice    int64              `json:"base_price" binding:"min=0"`
	Available    *bool              `json:"available"`
	Groups       *[]GroupInput      `json:"groups"`
}

// UpdateComboReq patches header fields; nil fields are left unchanged.
type UpdateComboReq struct {
	Name        *string             `json:"name" binding:"omitempty,min=1"`
	Description *string             `json:"description"`
	PricingMode *entity.PricingMode `json:"pricing_mode" binding:"omitempty,pricing_mode"`
	BasePrice   *int64              `json:"base_price" binding:"omitempty,min=0"`
	Available   *bool               `json:"available"`
	Groups      *[]GroupInput       `json:"groups"`
}

type ComboService struct {
	DB          *gorm.DB
	Combos      *repository.ComboRepository
	Restaurants *repository.RestaurantRepository
	Structure   *ComboStructureService
	Policy      *ComboPolicy
}

func NewComboService(db *gorm.DB, combos *repository.ComboRepository, rests *repository.RestaurantRepository, structure *ComboStructureService, policy *ComboPolicy) *ComboService {
	return &ComboService{DB: db, Combos: combos, Restaurants: rests, Structure: structure, Policy: policy}
}

func (s *ComboService) Get(ctx context.Context, id uint) (*entity.Combo, error) {
	return s.Combos.FindTree(ctx, id)
}

func (s *ComboService) ListByRestaurant(ctx context.Context, restID uint) ([]entity.Combo, error) {
	return s.Combos.ListByRestaurant(ctx, restID, true)
}

// Create inserts the header and, when given, its groups in one transaction.
func (s *ComboService) Create(ctx context.Context, actor Actor, req *CreateComboReq) (*entity.Combo, error) {
	if _, err := s.Restaurants.FindByID(ctx, req.RestaurantID); err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, req.RestaurantID); err != nil {
		return nil, err
	}

	var errs ValidationErrors
	validateHeader(&errs, req.Name, req.PricingMode, req.BasePrice)
	if err := errs.orNil(); err != nil {
		return nil, err
	}
	if req.Groups != nil {
		if err := s.Structure.ValidateGroups(ctx, req.RestaurantID, *req.Groups); err != nil {
			return nil, err
		}
	}

	combo := &entity.Combo{
		RestaurantID: req.RestaurantID,
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		PricingMode:  req.PricingMode,
		BasePrice:    req.BasePrice,
		Available:    req.Available == nil || *req.Available,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Combos.Create(tx, combo); err != nil {
			return err
		}
		// gorm skips false on insert because the column has a default
		if !combo.Available {
			if err := s.Combos.UpdateHeader(tx, combo.ID, map[string]any{"available": false}); err != nil {
				return err
			}
		}
		if req.Groups == nil {
			return nil
		}
		return s.Structure.Apply(tx, combo.ID, *req.Groups)
	})
	if err != nil {
		log.Error().Err(err).Uint("restaurant_id", req.RestaurantID).Msg("create combo failed")
		return nil, fmt.Errorf("create combo: %w", err)
	}
	return s.Combos.FindTree(ctx, combo.ID)
}

func (s *ComboService) Update(ctx context.Context, actor Actor, id uint, req *UpdateComboReq) (*entity.Combo, error) {
	combo, err := s.Combos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, combo.RestaurantID); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	name, mode, base := combo.Name, combo.PricingMode, combo.BasePrice
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
		fields["name"] = name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.PricingMode != nil {
		mode = *req.PricingMode
		fields["pricing_mode"] = mode
	}
	if req.BasePrice != nil {
		base = *req.BasePrice
		fields["base_price"] = base
	}
	if req.Available != nil {
		fields["available"] = *req.Available
	}

	var errs ValidationErrors
	validateHeader(&errs, name, mode, base)
	if err := errs.orNil(); err != nil {
		return nil, err
	}
	if req.Groups != nil {
		if err := s.Structure.ValidateGroups(ctx, combo.RestaurantID, *req.Groups); err != nil {
			return nil, err
		}
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Combos.UpdateHeader(tx, combo.ID, fields); err != nil {
			return err
		}
		if req.Groups == nil {
			return nil
		}
		return s.Structure.Apply(tx, combo.ID, *req.Groups)
	})
	if err != nil {
		log.Error().Err(err).Uint("combo_id", id).Msg("update combo failed")
		return nil, fmt.Errorf("update combo %d: %w", id, err)
	}
	return s.Combos.FindTree(ctx, id)
}

func (s *ComboService) Delete(ctx context.Context, actor Actor, id uint) error {
	combo, err := s.Combos.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, actor, combo.RestaurantID); err != nil {
		return err
	}
	return s.Combos.Delete(s.DB.WithContext(ctx), id)
}

func (s *ComboService) authorize(ctx context.Context, actor Actor, restID uint) error {
	decision, err := s.Policy.CanManage(ctx, actor, restID)
	if err != nil {
		return err
	}
	return decision.Err()
}

func validateHeader(errs *ValidationErrors, name string, mode entity.PricingMode, base int64) {
	if strings.TrimSpace(name) == "" {
		errs.add("name", KindInvalidField, "Combo name is required.")
	}
	if !mode.Valid() {
		errs.add("pricing_mode", KindInvalidField, "Pricing mode must be one of FIXED, DYNAMIC, HYBRID.")
	}
	if base < 0 {
		errs.add("base_price", KindInvalidField, "Base price must not be negative.")
	}
}
