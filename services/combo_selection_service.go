package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Edmundtutu/foody-sub002/entity"
	"github.com/Edmundtutu/foody-sub002/events"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SelectionStore is the persistence the recorder needs.
type SelectionStore interface {
	CreateSelection(tx *gorm.DB, s *entity.ComboSelection) error
	CreateSelectionItem(tx *gorm.DB, it *entity.ComboSelectionItem) error
	FindWithItems(ctx context.Context, id uint) (*entity.ComboSelection, error)
}

// DefaultPublishTimeout bounds the post-commit event publish.
const DefaultPublishTimeout = 2 * time.Second

type ComboSelectionService struct {
	DB             *gorm.DB
	Store          SelectionStore
	Pricing        *ComboPricingService
	Policy         *ComboPolicy
	Publisher      events.SelectionPublisher
	PublishTimeout time.Duration
}

func NewComboSelectionService(db *gorm.DB, store SelectionStore, pricing *ComboPricingService, policy *ComboPolicy, pub events.SelectionPublisher) *ComboSelectionService {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &ComboSelectionService{
		DB: db, Store: store, Pricing: pricing, Policy: policy,
		Publisher: pub, PublishTimeout: DefaultPublishTimeout,
	}
}

// Create prices req and records the result for actor.
func (s *ComboSelectionService) Create(ctx context.Context, actor Actor, comboID uint, req CalculateReq) (*entity.ComboSelection, error) {
	combo, res, err := s.Pricing.Calculate(ctx, comboID, req)
	if err != nil {
		return nil, err
	}
	return s.Record(ctx, combo, res, actor.UserRef())
}

// Record appends one ComboSelection with one item per priced line. The
// header and every item commit together or not at all.
func (s *ComboSelectionService) Record(ctx context.Context, combo *entity.Combo, res *PricingResult, userID *uint) (*entity.ComboSelection, error) {
	if res == nil || combo == nil {
		return nil, errors.New("record combo selection: missing combo or pricing result")
	}
	if res.ComboID != combo.ID {
		return nil, fmt.Errorf("record combo selection: result is for combo %d, not %d", res.ComboID, combo.ID)
	}

	sel := &entity.ComboSelection{
		Reference:   uuid.NewString(),
		ComboID:     combo.ID,
		UserID:      userID,
		PricingMode: res.PricingMode,
		TotalPrice:  res.Total,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Store.CreateSelection(tx, sel); err != nil {
			return err
		}
		for i, line := range res.Items {
			it := entity.ComboSelectionItem{
				ComboSelectionID: sel.ID,
				DishID:           line.DishID,
				Options:          snapshotOf(line),
				Price:            line.LineTotal,
				SortOrder:        i,
			}
			if err := s.Store.CreateSelectionItem(tx, &it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("combo_id", combo.ID).Msg("record combo selection failed")
		return nil, fmt.Errorf("record combo selection: %w", err)
	}

	out, err := s.Store.FindWithItems(ctx, sel.ID)
	if err != nil {
		return nil, err
	}

	// the snapshot is committed; a lost event does not undo it
	if err := s.publish(ctx, out); err != nil {
		log.Warn().Err(err).Uint("selection_id", out.ID).Str("reference", out.Reference).Msg("selection event not published")
	}
	return out, nil
}

// publish detaches from client cancellation but never outlives PublishTimeout.
func (s *ComboSelectionService) publish(ctx context.Context, sel *entity.ComboSelection) error {
	timeout := s.PublishTimeout
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	return s.Publisher.PublishSelectionRecorded(ctx, events.NewSelectionRecorded(sel))
}

// Get returns a recorded selection the actor is allowed to see.
func (s *ComboSelectionService) Get(ctx context.Context, actor Actor, id uint) (*entity.ComboSelection, error) {
	sel, err := s.Store.FindWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Policy.CanViewSelection(actor, sel).Err(); err != nil {
		return nil, err
	}
	return sel, nil
}

func snapshotOf(l LineItem) entity.SelectionSnapshot {
	opts := make([]entity.SnapshotOption, 0, len(l.Options))
	for _, o := range l.Options {
		opts = append(opts, entity.SnapshotOption{ID: o.ID, Name: o.Name, ExtraCost: o.ExtraCost})
	}
	return entity.SelectionSnapshot{
		GroupID:        l.GroupID,
		GroupName:      l.GroupName,
		DishName:       l.DishName,
		DishBasePrice:  l.DishBasePrice,
		ComboItemExtra: l.ComboItemExtra,
		AppliedExtra:   l.AppliedExtra,
		OptionIDs:      append([]uint{}, l.OptionIDs...),
		Options:        opts,
		OptionsTotal:   l.OptionsTotal,
	}
}
