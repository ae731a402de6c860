package propcell

// StringProperty wraps Property[string] with convenience methods for string
// operations.
type StringProperty struct {
	*Property[string]
}

// NewString creates a StringProperty with the given initial value.
func NewString(initial string) *StringProperty {
	return &StringProperty{New(initial)}
}

// Append appends s to the value.
func (p *StringProperty) Append(s string) error {
	return p.Update(func(v string) string { return v + s })
}

// Clear writes the empty string.
func (p *StringProperty) Clear() error {
	return p.Write("")
}
