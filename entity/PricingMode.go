package entity

type PricingMode string

const (
	// base_price + options
	PricingFixed PricingMode = "FIXED"
	// sum of chosen dish prices + options
	PricingDynamic PricingMode = "DYNAMIC"
	// base_price + per-item extras + options
	PricingHybrid PricingMode = "HYBRID"
)

func (m PricingMode) Valid() bool {
	switch m {
	case PricingFixed, PricingDynamic, PricingHybrid:
		return true
	}
	return false
}

// ChargesBasePrice reports whether the combo's base_price contributes to the total.
func (m PricingMode) ChargesBasePrice() bool {
	return m == PricingFixed || m == PricingHybrid
}
