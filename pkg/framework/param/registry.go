package param

import (
	"fmt"
	"slices"
)

// Schema is the immutable table of parameter descriptors. It is built once
// by a SchemaBuilder and is safe for concurrent reads without locking.
type Schema struct {
	params map[ID]*Descriptor
	order  []*Descriptor // declaration order
}

// Lookup returns the descriptor for id. Looking up an undeclared id is a
// programming error and panics.
func (s *Schema) Lookup(id ID) *Descriptor {
	d, ok := s.params[id]
	if !ok {
		panic(fmt.Sprintf("param: undeclared parameter %d", id))
	}
	return d
}

// Find returns the descriptor for id and whether it is declared
func (s *Schema) Find(id ID) (*Descriptor, bool) {
	d, ok := s.params[id]
	return d, ok
}

// ByName returns the first descriptor declared with name
func (s *Schema) ByName(name string) (*Descriptor, bool) {
	for _, d := range s.order {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}

// Len returns the number of declared parameters
func (s *Schema) Len() int {
	return len(s.order)
}

// At returns the descriptor at a declaration index
func (s *Schema) At(index int) *Descriptor {
	if index < 0 || index >= len(s.order) {
		return nil
	}
	return s.order[index]
}

// All returns every descriptor in declaration order
func (s *Schema) All() []*Descriptor {
	return slices.Clone(s.order)
}

// SchemaBuilder collects descriptors before freezing them into a Schema
type SchemaBuilder struct {
	params map[ID]*Descriptor
	order  []*Descriptor
	built  bool
}

// NewSchemaBuilder creates an empty builder
func NewSchemaBuilder() *SchemaBuilder {
	return &SchemaBuilder{
		params: make(map[ID]*Descriptor),
	}
}

// Add registers descriptors. Declaring an id twice panics.
func (b *SchemaBuilder) Add(descs ...*Descriptor) *SchemaBuilder {
	if b.built {
		panic("param: schema already built")
	}
	for _, d := range descs {
		if prev, exists := b.params[d.ID]; exists {
			panic(fmt.Sprintf("param: parameter ID %d already used by '%s'", d.ID, prev.Name))
		}
		b.params[d.ID] = d
		b.order = append(b.order, d)
	}
	return b
}

// Build freezes the builder. The builder cannot be used afterwards.
func (b *SchemaBuilder) Build() *Schema {
	b.built = true
	return &Schema{
		params: b.params,
		order:  b.order,
	}
}
