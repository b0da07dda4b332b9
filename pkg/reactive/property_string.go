package reactive

// StringProperty wraps Property[string].
type StringProperty struct {
	*Property[string]
}

// NewString creates a StringProperty.
func NewString(initial string, opts ...Option) *StringProperty {
	return &StringProperty{New(initial, opts...)}
}

// Append concatenates s to the current value.
func (p *StringProperty) Append(s string) {
	if s == "" {
		return
	}
	p.Update(func(v string) string { return v + s })
}
