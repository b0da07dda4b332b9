package reactive

// IntProperty wraps Property[int] with counter helpers.
type IntProperty struct {
	*Property[int]
}

// NewInt creates an IntProperty.
func NewInt(initial int, opts ...Option) *IntProperty {
	return &IntProperty{New(initial, opts...)}
}

// Inc increments the value by 1.
func (p *IntProperty) Inc() {
	p.Update(func(n int) int { return n + 1 })
}

// Dec decrements the value by 1.
func (p *IntProperty) Dec() {
	p.Update(func(n int) int { return n - 1 })
}

// Add adds n.
func (p *IntProperty) Add(n int) {
	p.Update(func(v int) int { return v + n })
}
