package reactive

// BoolProperty wraps Property[bool] with switch helpers.
type BoolProperty struct {
	*Property[bool]
}

// NewBool creates a BoolProperty.
func NewBool(initial bool, opts ...Option) *BoolProperty {
	return &BoolProperty{New(initial, opts...)}
}

// Enable sets the value to true.
func (p *BoolProperty) Enable() {
	p.Set(true)
}

// Disable sets the value to false.
func (p *BoolProperty) Disable() {
	p.Set(false)
}

// Toggle inverts the value.
func (p *BoolProperty) Toggle() {
	p.Update(func(b bool) bool { return !b })
}
