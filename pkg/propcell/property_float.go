package propcell

// Float64Property wraps Property[float64] with convenience methods for
// float operations.
type Float64Property struct {
	*Property[float64]
}

// NewFloat64 creates a Float64Property with the given initial value.
func NewFloat64(initial float64) *Float64Property {
	return &Float64Property{New(initial)}
}

// Add adds the given value.
func (p *Float64Property) Add(n float64) error {
	return p.Update(func(v float64) float64 { return v + n })
}

// Sub subtracts the given value.
func (p *Float64Property) Sub(n float64) error {
	return p.Update(func(v float64) float64 { return v - n })
}

// Mul multiplies by the given value.
func (p *Float64Property) Mul(n float64) error {
	return p.Update(func(v float64) float64 { return v * n })
}

// Div divides by the given value.
func (p *Float64Property) Div(n float64) error {
	return p.Update(func(v float64) float64 { return v / n })
}
