package services

import (
	"context"
	"fmt"

	"github.com/Edmundtutu/foody-sub002/entity"
)

// Actor is the identity an operation runs on behalf of. The zero value is anonymous.
type Actor struct {
	UserID uint
	Role   string
}

func (a Actor) Authenticated() bool { return a.UserID != 0 }

func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }

// UserRef returns the user id to stamp on records, nil when anonymous.
func (a Actor) UserRef() *uint {
	if !a.Authenticated() {
		return nil
	}
	id := a.UserID
	return &id
}

type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision { return Decision{Allowed: true} }

func Deny(reason string) Decision { return Decision{Reason: reason} }

// Err turns a denial into an error wrapping ErrForbidden.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrForbidden, d.Reason)
}

type OwnershipChecker interface {
	IsOwnedBy(ctx context.Context, restID, userID uint) (bool, error)
}

type ComboPolicy struct {
	Restaurants OwnershipChecker
}

func NewComboPolicy(r OwnershipChecker) *ComboPolicy {
	return &ComboPolicy{Restaurants: r}
}

// CanManage decides whether actor may edit combos of the restaurant.
func (p *ComboPolicy) CanManage(ctx context.Context, actor Actor, restaurantID uint) (Decision, error) {
	if !actor.Authenticated() {
		return Deny("login required"), nil
	}
	if actor.IsAdmin() {
		return Allow(), nil
	}
	if actor.Role != entity.RoleOwner {
		return Deny("only restaurant owners can manage combos"), nil
	}
	ok, err := p.Restaurants.IsOwnedBy(ctx, restaurantID, actor.UserID)
	if err != nil {
		return Decision{}, err
	}
	if !ok {
		return Deny("restaurant is not owned by this user"), nil
	}
	return Allow(), nil
}

// CanViewSelection allows admins and the customer the selection was recorded for.
func (p *ComboPolicy) CanViewSelection(actor Actor, sel *entity.ComboSelection) Decision {
	if actor.IsAdmin() || (actor.Authenticated() && sel.OwnedBy(actor.UserID)) {
		return Allow()
	}
	return Deny("selection belongs to another user")
}
