package entity

import (
	"errors"
	"fmt"
)

type OrderableKind string

const (
	OrderableDish           OrderableKind = "dish"
	OrderableComboSelection OrderableKind = "combo_selection"
)

var ErrInvalidOrderable = errors.New("order line must reference exactly one of dish or combo selection")

// Orderable is what an order line points at: either a dish or a recorded
// combo selection. The zero value is invalid.
type Orderable struct {
	kind OrderableKind
	id   uint
}

func DishLine(dishID uint) Orderable { return Orderable{kind: OrderableDish, id: dishID} }

func ComboSelectionLine(selectionID uint) Orderable {
	return Orderable{kind: OrderableComboSelection, id: selectionID}
}

// NewOrderable builds the union from two optional references, rejecting
// both-set and neither-set.
func NewOrderable(dishID, selectionID *uint) (Orderable, error) {
	switch {
	case dishID != nil && selectionID == nil && *dishID != 0:
		return DishLine(*dishID), nil
	case selectionID != nil && dishID == nil && *selectionID != 0:
		return ComboSelectionLine(*selectionID), nil
	}
	return Orderable{}, ErrInvalidOrderable
}

func (o Orderable) Kind() OrderableKind { return o.kind }

func (o Orderable) Dish() (uint, bool) {
	return o.id, o.kind == OrderableDish
}

func (o Orderable) ComboSelection() (uint, bool) {
	return o.id, o.kind == OrderableComboSelection
}

func (o Orderable) String() string {
	if o.kind == "" {
		return "orderable(invalid)"
	}
	return fmt.Sprintf("%s:%d", o.kind, o.id)
}
