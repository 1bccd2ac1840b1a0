package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Edmundtutu/foody-sub002/entity"
	"github.com/Edmundtutu/foody-sub002/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type OrderService struct {
	DB          *gorm.DB
	Repo        *repository.OrderRepository
	Catalog     *repository.CatalogRepository
	Selections  *repository.ComboSelectionRepository
	Combos      *repository.ComboRepository
	Restaurants *repository.RestaurantRepository
	DeliveryFee int64
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	catalog *repository.CatalogRepository,
	selections *repository.ComboSelectionRepository,
	combos *repository.ComboRepository,
	rests *repository.RestaurantRepository,
	deliveryFee int64,
) *OrderService {
	return &OrderService{
		DB: db, Repo: repo, Catalog: catalog, Selections: selections,
		Combos: combos, Restaurants: rests, DeliveryFee: deliveryFee,
	}
}

// ----- DTOs from Controller -----

// OrderLineIn sets exactly one of DishID / ComboSelectionID.
type OrderLineIn struct {
	DishID           *uint `json:"dish_id"`
	ComboSelectionID *uint `json:"combo_selection_id"`
	Qty              int   `json:"qty" binding:"required,min=1"`
}

type CreateOrderReq struct {
	RestaurantID uint          `json:"restaurant_id" binding:"required"`
	Items        []OrderLineIn `json:"items" binding:"required,min=1,dive"`
}

type OrderDetail struct {
	Order entity.Order       `json:"order"`
	Items []entity.OrderItem `json:"items"`
}

type pricedLine struct {
	what      entity.Orderable
	qty       int
	unitPrice int64
}

// Create prices each orderable line and stores header + lines together.
func (s *OrderService) Create(ctx context.Context, actor Actor, req *CreateOrderReq) (*OrderDetail, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if _, err := s.Restaurants.FindByID(ctx, req.RestaurantID); err != nil {
		return nil, err
	}

	var errs ValidationErrors
	lines := make([]pricedLine, 0, len(req.Items))
	for i, in := range req.Items {
		field := fmt.Sprintf("items.%d", i)
		what, err := entity.NewOrderable(in.DishID, in.ComboSelectionID)
		if err != nil {
			errs.add(field, KindInvalidField, "Line must reference exactly one of dish_id or combo_selection_id.")
			continue
		}
		if in.Qty < 1 {
			errs.add(field+".qty", KindInvalidField, "Quantity must be at least 1.")
			continue
		}
		unit, reason, err := s.unitPrice(ctx, actor, req.RestaurantID, what)
		if err != nil {
			return nil, err
		}
		if reason != "" {
			errs.add(field, KindInvalidField, "%s", reason)
			continue
		}
		lines = append(lines, pricedLine{what: what, qty: in.Qty, unitPrice: unit})
	}
	if err := errs.orNil(); err != nil {
		return nil, err
	}

	statusID, err := s.Repo.GetStatusIDByName(ctx, entity.OrderStatusPending)
	if err != nil {
		// a missing lookup row is a seeding fault, not a missing resource
		log.Error().Err(err).Str("status", entity.OrderStatusPending).Msg("order status lookup failed")
		return nil, fmt.Errorf("order status %q unavailable: %s", entity.OrderStatusPending, err.Error())
	}

	var subtotal int64
	for _, l := range lines {
		subtotal += l.unitPrice * int64(l.qty)
	}

	order := entity.Order{
		Subtotal:      subtotal,
		DeliveryFee:   s.DeliveryFee,
		Total:         subtotal + s.DeliveryFee,
		UserID:        actor.UserID,
		RestaurantID:  req.RestaurantID,
		OrderStatusID: statusID,
	}
	items := make([]entity.OrderItem, 0, len(lines))
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}
		for _, l := range lines {
			oi := entity.OrderItem{
				OrderID: order.ID, Qty: l.qty, UnitPrice: l.unitPrice, Total: l.unitPrice * int64(l.qty),
			}
			oi.SetOrderable(l.what)
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
			items = append(items, oi)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("user_id", actor.UserID).Msg("create order failed")
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &OrderDetail{Order: order, Items: items}, nil
}

// unitPrice resolves what a line costs. A non-empty reason is a client error.
func (s *OrderService) unitPrice(ctx context.Context, actor Actor, restID uint, what entity.Orderable) (int64, string, error) {
	if id, ok := what.Dish(); ok {
		d, err := s.Catalog.FindDish(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Sprintf("Dish %d not found.", id), nil
		}
		if err != nil {
			return 0, "", err
		}
		if d.RestaurantID != restID {
			return 0, fmt.Sprintf("Dish %d is not on this restaurant's menu.", id), nil
		}
		if !d.Available {
			return 0, fmt.Sprintf("Dish '%s' is not available.", d.Name), nil
		}
		return d.Price, "", nil
	}

	id, _ := what.ComboSelection()
	sel, err := s.Selections.FindHeader(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Sprintf("Combo selection %d not found.", id), nil
	}
	if err != nil {
		return 0, "", err
	}
	if !sel.OwnedBy(actor.UserID) {
		return 0, fmt.Sprintf("Combo selection %d belongs to another user.", id), nil
	}
	comboRest, err := s.Combos.RestaurantIDOf(ctx, sel.ComboID)
	if err != nil {
		return 0, "", err
	}
	if comboRest != restID {
		return 0, fmt.Sprintf("Combo selection %d is not from this restaurant.", id), nil
	}
	return sel.TotalPrice, "", nil
}

func (s *OrderService) DetailForUser(ctx context.Context, actor Actor, orderID uint) (*OrderDetail, error) {
	o, err := s.Repo.GetOrderForUser(ctx, actor.UserID, orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.Repo.GetOrderItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: *o, Items: items}, nil
}
