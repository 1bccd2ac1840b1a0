package services

import (
	"context"
	"fmt"

	"github.com/Edmundtutu/foody-sub002/entity"
	"github.com/Edmundtutu/foody-sub002/repository"
)

// ----- payload -----

type SelectedDish struct {
	DishID    uint   `json:"dish_id"`
	OptionIDs []uint `json:"option_ids"`
}

type GroupSelection struct {
	GroupID  uint           `json:"group_id"`
	Selected []SelectedDish `json:"selected"`
}

type CalculateReq struct {
	Groups []GroupSelection `json:"groups"`
}

// ----- result -----

type OptionLine struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	ExtraCost int64  `json:"extra_cost"`
}

type LineItem struct {
	GroupID        uint         `json:"group_id"`
	GroupName      string       `json:"group_name"`
	DishID         uint         `json:"dish_id"`
	DishName       string       `json:"dish_name"`
	DishBasePrice  int64        `json:"dish_base_price"`
	ComboItemExtra int64        `json:"combo_item_extra"`
	AppliedExtra   int64        `json:"applied_extra"`
	OptionIDs      []uint       `json:"option_ids"`
	Options        []OptionLine `json:"options"`
	OptionsTotal   int64        `json:"options_total"`
	LineTotal      int64        `json:"line_total"`
}

type Breakdown struct {
	ComboBase         int64 `json:"combo_base"`
	DishBase          int64 `json:"dish_base"`
	DishSurcharges    int64 `json:"dish_surcharges"`
	OptionsSurcharges int64 `json:"options_surcharges"`
}

type PricingResult struct {
	ComboID     uint               `json:"combo_id"`
	PricingMode entity.PricingMode `json:"pricing_mode"`
	Total       int64              `json:"total"`
	Breakdown   Breakdown          `json:"breakdown"`
	Items       []LineItem         `json:"items"`
}

// ----- service -----

type ComboPricingService struct {
	Combos *repository.ComboRepository
}

func NewComboPricingService(combos *repository.ComboRepository) *ComboPricingService {
	return &ComboPricingService{Combos: combos}
}

// Calculate loads the combo tree and prices req against it. Read-only.
func (s *ComboPricingService) Calculate(ctx context.Context, comboID uint, req CalculateReq) (*entity.Combo, *PricingResult, error) {
	combo, err := s.Combos.FindTree(ctx, comboID)
	if err != nil {
		return nil, nil, err
	}
	if !combo.Available {
		var errs ValidationErrors
		errs.add("combo", KindComboUnavailable, "Combo '%s' is not available.", combo.Name)
		return combo, nil, errs
	}
	res, err := PriceSelection(combo, req)
	return combo, res, err
}

// PriceSelection validates req against the loaded combo tree and computes
// the priced breakdown. It is a pure function of its inputs.
func PriceSelection(combo *entity.Combo, req CalculateReq) (*PricingResult, error) {
	mode := combo.PricingMode
	if !mode.Valid() {
		return nil, fmt.Errorf("combo %d has unknown pricing mode %q", combo.ID, mode)
	}

	var errs ValidationErrors
	seen := make(map[uint]bool, len(req.Groups))
	lines := make([]LineItem, 0)

	for _, gs := range req.Groups {
		group, ok := combo.Group(gs.GroupID)
		if !ok {
			errs.add("groups", KindGroupNotInCombo, "Group %d does not belong to this combo.", gs.GroupID)
			continue
		}
		if seen[group.ID] {
			errs.add("groups", KindDuplicateGroupSelection, "Group '%s' is listed more than once.", group.Name)
			continue
		}
		seen[group.ID] = true

		if n := len(gs.Selected); !group.Accepts(n) {
			errs.add("groups", KindSelectionCountOutOfRange,
				"Group '%s' requires between %d and %d selections, got %d.", group.Name, group.AllowedMin, group.AllowedMax, n)
		}

		for _, sd := range gs.Selected {
			item, ok := group.Item(sd.DishID)
			// a soft-deleted dish is not preloaded and leaves a zero Dish
			if !ok || item.Dish.ID == 0 {
				errs.add("groups", KindDishNotInGroup, "Dish %d is not offered in group '%s'.", sd.DishID, group.Name)
				continue
			}
			line, bad := priceLine(mode, group, item, sd.OptionIDs)
			if len(bad) > 0 {
				for _, id := range bad {
					errs.add("groups", KindOptionNotOnDish, "Option %d does not belong to dish '%s'.", id, item.Dish.Name)
				}
				continue
			}
			lines = append(lines, line)
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	// cross-group phase, only on a clean set of recognized groups
	for i := range combo.Groups {
		g := &combo.Groups[i]
		if g.AllowedMin > 0 && !seen[g.ID] {
			errs.add("groups", KindRequiredGroupNotSelected, "Group '%s' is required.", g.Name)
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	var b Breakdown
	if mode.ChargesBasePrice() {
		b.ComboBase = combo.BasePrice
	}
	for _, l := range lines {
		b.DishBase += l.DishBasePrice
		b.DishSurcharges += l.ComboItemExtra
		b.OptionsSurcharges += l.OptionsTotal
	}

	return &PricingResult{
		ComboID:     combo.ID,
		PricingMode: mode,
		Total:       grandTotal(mode, b),
		Breakdown:   b,
		Items:       lines,
	}, nil
}

// priceLine resolves options against the dish and applies the per-mode line
// formula. Unknown option ids are returned instead of a line.
func priceLine(mode entity.PricingMode, group *entity.ComboGroup, item *entity.ComboGroupItem, optionIDs []uint) (LineItem, []uint) {
	ids := uniqueIDs(optionIDs)
	opts := make([]OptionLine, 0, len(ids))
	var optionsTotal int64
	var bad []uint
	for _, id := range ids {
		o, ok := item.Option(id)
		if !ok {
			bad = append(bad, id)
			continue
		}
		opts = append(opts, OptionLine{ID: o.ID, Name: o.Name, ExtraCost: o.ExtraCost})
		optionsTotal += o.ExtraCost
	}
	if len(bad) > 0 {
		return LineItem{}, bad
	}

	var applied, total int64
	switch mode {
	case entity.PricingFixed:
		total = optionsTotal
	case entity.PricingHybrid:
		applied = item.ExtraPrice
		total = item.ExtraPrice + optionsTotal
	case entity.PricingDynamic:
		total = item.Dish.Price + optionsTotal
	}

	return LineItem{
		GroupID:        group.ID,
		GroupName:      group.Name,
		DishID:         item.DishID,
		DishName:       item.Dish.Name,
		DishBasePrice:  item.Dish.Price,
		ComboItemExtra: item.ExtraPrice,
		AppliedExtra:   applied,
		OptionIDs:      ids,
		Options:        opts,
		OptionsTotal:   optionsTotal,
		LineTotal:      total,
	}, nil
}

func grandTotal(mode entity.PricingMode, b Breakdown) int64 {
	switch mode {
	case entity.PricingHybrid:
		return b.ComboBase + b.DishSurcharges + b.OptionsSurcharges
	case entity.PricingDynamic:
		return b.DishBase + b.OptionsSurcharges
	default:
		return b.ComboBase + b.OptionsSurcharges
	}
}
