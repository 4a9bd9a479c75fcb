package param

// Builder provides a fluent API for creating descriptors
type Builder struct {
	desc *Descriptor
}

// New starts a numeric descriptor with range [0, 1]
func New(id ID, name string) *Builder {
	return &Builder{
		desc: &Descriptor{
			ID:        id,
			Type:      NumberType,
			Name:      name,
			ShortName: name,
			Min:       0,
			Max:       1,
			Flags:     CanAutomate,
		},
	}
}

// Choice starts a list descriptor choosing among labels
func Choice(id ID, name string, labels ...string) *Builder {
	return &Builder{
		desc: &Descriptor{
			ID:        id,
			Type:      ListType,
			Name:      name,
			ShortName: name,
			Labels:    labels,
			Flags:     CanAutomate,
		},
	}
}

// TextParameter starts a text descriptor. Text is never automatable.
func TextParameter(id ID, name string) *Builder {
	return &Builder{
		desc: &Descriptor{
			ID:        id,
			Type:      TextType,
			Name:      name,
			ShortName: name,
		},
	}
}

// ShortName sets the short name
func (b *Builder) ShortName(name string) *Builder {
	b.desc.ShortName = name
	return b
}

// Range sets the min and max values
func (b *Builder) Range(min, max float64) *Builder {
	b.desc.Min = min
	b.desc.Max = max
	return b
}

// Default sets the default plain value of a number
func (b *Builder) Default(value float64) *Builder {
	b.desc.DefaultNumber = value
	return b
}

// DefaultIndex sets the default list index
func (b *Builder) DefaultIndex(index int) *Builder {
	b.desc.DefaultIndex = index
	return b
}

// DefaultText sets the default string
func (b *Builder) DefaultText(text string) *Builder {
	b.desc.DefaultText = text
	return b
}

// Unit sets the unit string
func (b *Builder) Unit(unit string) *Builder {
	b.desc.Unit = unit
	return b
}

// Steps sets the number of discrete steps
func (b *Builder) Steps(count int32) *Builder {
	b.desc.Steps = count
	return b
}

// Flags replaces the parameter flags
func (b *Builder) Flags(flags Flags) *Builder {
	b.desc.Flags = flags
	return b
}

// ReadOnly marks the parameter as read-only
func (b *Builder) ReadOnly() *Builder {
	b.desc.Flags |= IsReadOnly
	b.desc.Flags &^= CanAutomate // Read-only parameters cannot be automated
	return b
}

// Hidden marks the parameter as hidden
func (b *Builder) Hidden() *Builder {
	b.desc.Flags |= IsHidden
	return b
}

// FilePath marks a text parameter as holding a file path
func (b *Builder) FilePath() *Builder {
	b.desc.IsFilePath = true
	return b
}

// OutOfRange sets the code returned for list indices outside the labels
func (b *Builder) OutOfRange(code ErrorCode) *Builder {
	b.desc.RangeError = code
	return b
}

// Formatter sets custom value formatting and parsing
func (b *Builder) Formatter(format func(float64) string, parse func(string) (float64, error)) *Builder {
	b.desc.formatFunc = format
	b.desc.parseFunc = parse
	return b
}

// OnControl sets the control-side update callback
func (b *Builder) OnControl(fn ControlFunc) *Builder {
	b.desc.control = fn
	return b
}

// OnApply sets the realtime apply callback
func (b *Builder) OnApply(fn ApplyFunc) *Builder {
	b.desc.apply = fn
	return b
}

// Build returns the configured descriptor
func (b *Builder) Build() *Descriptor {
	return b.desc
}
