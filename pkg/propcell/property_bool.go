package propcell

// BoolProperty wraps Property[bool] with convenience methods for boolean
// operations.
type BoolProperty struct {
	*Property[bool]
}

// NewBool creates a BoolProperty with the given initial value.
func NewBool(initial bool) *BoolProperty {
	return &BoolProperty{New(initial)}
}

// Toggle flips the value.
func (p *BoolProperty) Toggle() error {
	return p.Update(func(v bool) bool { return !v })
}

// SetTrue writes true.
func (p *BoolProperty) SetTrue() error {
	return p.Write(true)
}

// SetFalse writes false.
func (p *BoolProperty) SetFalse() error {
	return p.Write(false)
}
