package billing

import (
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// ValidationError names the offending field of a rejected definition.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ValidateDiscount checks a discount definition on its own.
func ValidateDiscount(d Discount) error {
	if !d.Type.IsValid() {
		return invalid("discount.type", "must be percent or fixed_amount")
	}
	if !d.Target.IsValid() {
		return invalid("discount.target", "must be play, service or bill")
	}
	if d.Value.IsNegative() {
		return invalid("discount.value", "must not be negative")
	}
	if d.Type == enum.DiscountTypePercent && d.Value.GreaterThan(decimal.NewFromInt(100)) {
		return invalid("discount.value", "percent must be between 0 and 100")
	}
	if d.MaxAmount != nil && *d.MaxAmount < 0 {
		return invalid("discount.max_amount", "must not be negative")
	}
	return nil
}

// ValidatePromotion checks the rule, validity and discount of a promotion.
// Product rules may not target the play charge.
func ValidatePromotion(p Promotion) error {
	if p.Rule == nil {
		return invalid("rule", "is required")
	}
	if err := ValidateDiscount(p.Discount); err != nil {
		return err
	}
	if err := validateValidity(p.Validity); err != nil {
		return err
	}

	switch rule := p.Rule.(type) {
	case TimeRule:
		if rule.MinMinutes < 0 {
			return invalid("rule.min_minutes", "must not be negative")
		}
	case ProductRule:
		if p.Discount.Target == enum.DiscountTargetPlay {
			return invalid("discount.target", "product promotions can only target service or bill")
		}
		for _, c := range rule.Combo {
			if c.Qty < 1 {
				return invalid("rule.combo.qty", "must be at least 1")
			}
		}
	case BillRule:
		if rule.MinSubtotal < 0 || rule.MinServiceAmount < 0 || rule.MinPlayMinutes < 0 {
			return invalid("rule", "minimums must not be negative")
		}
	default:
		return invalid("rule", "unknown rule")
	}
	return nil
}

func validateValidity(v Validity) error {
	if v.From != nil && v.To != nil && v.To.Before(*v.From) {
		return invalid("valid_to", "must not be before valid_from")
	}
	if err := v.Days.Validate(); err != nil {
		return invalid("days_of_week", err.Error())
	}
	for _, w := range v.Windows {
		if err := w.Validate(); err != nil {
			return invalid("time_windows", err.Error())
		}
	}
	return nil
}

// ValidateSchedule checks every entry of a rate schedule.
func ValidateSchedule(schedule []RateWindow) error {
	for _, w := range schedule {
		if err := w.Validate(); err != nil {
			return invalid("rate_schedule", err.Error())
		}
	}
	return nil
}
