package user

// Discount is a rate reduction expressed as a fraction in [0,1].
// Values outside the range are clamped rather than rejected: the admin
// form historically accepted free-text input and the billing engine must
// never see a fraction that inflates a rate.
type Discount struct {
	fraction float64
}

func NewDiscount(fraction float64) Discount {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return Discount{fraction: fraction}
}

func NewDiscountPtr(fraction *float64) *Discount {
	if fraction == nil {
		return nil
	}
	d := NewDiscount(*fraction)
	return &d
}

func (d Discount) Fraction() float64 {
	return d.fraction
}

func (d Discount) IsZero() bool {
	return d.fraction == 0
}

// Apply reduces rate by the discount fraction, floored at zero.
func (d Discount) Apply(rate float64) float64 {
	r := rate * (1 - d.fraction)
	if r < 0 {
		return 0
	}
	return r
}
