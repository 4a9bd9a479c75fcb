// Package state holds parameter values and persists them as snapshots.
package state

import (
	"fmt"
	"maps"
	"slices"

	"github.com/justyntemme/vcparam/pkg/framework/param"
)

// Store maps parameter ids to values. After SetDefaultValues every declared
// id has exactly one entry whose kind matches its descriptor.
//
// A Store is not synchronized; it is owned by the control actor.
type Store struct {
	values map[param.ID]param.Value
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		values: make(map[param.ID]param.Value),
	}
}

// NewDefaultStore creates a store filled from the schema defaults
func NewDefaultStore(schema *param.Schema) *Store {
	s := NewStore()
	s.SetDefaultValues(schema)
	return s
}

// SetDefaultValues clears the store and fills every declared id with its default
func (s *Store) SetDefaultValues(schema *param.Schema) {
	clear(s.values)
	for _, d := range schema.All() {
		s.values[d.ID] = d.DefaultValue()
	}
}

// SetValue overwrites or inserts a value. Once an id holds a value its kind
// is fixed; writing a different kind returns ValueKindMismatch.
func (s *Store) SetValue(id param.ID, v param.Value) error {
	if prev, ok := s.values[id]; ok && prev.Kind() != v.Kind() {
		return fmt.Errorf("parameter %d holds %s, got %s: %w", id, prev.Kind(), v.Kind(), param.ValueKindMismatch)
	}
	s.values[id] = v
	return nil
}

// GetValue returns the value of id. The id must be present.
func (s *Store) GetValue(id param.ID) param.Value {
	v, ok := s.values[id]
	if !ok {
		panic(fmt.Sprintf("state: parameter %d not in store", id))
	}
	return v
}

// Lookup returns the value of id and whether it is present
func (s *Store) Lookup(id param.ID) (param.Value, bool) {
	v, ok := s.values[id]
	return v, ok
}

// Int returns the integer value of id
func (s *Store) Int(id param.ID) int {
	return s.GetValue(id).AsInt()
}

// Double returns the double value of id
func (s *Store) Double(id param.ID) float64 {
	return s.GetValue(id).AsDouble()
}

// Text returns the text value of id
func (s *Store) Text(id param.ID) string {
	return s.GetValue(id).AsText()
}

// Len returns the number of entries
func (s *Store) Len() int {
	return len(s.values)
}

// IDs returns every id in iteration order, which is ascending
func (s *Store) IDs() []param.ID {
	return slices.Sorted(maps.Keys(s.values))
}

// Clone returns an independent copy
func (s *Store) Clone() *Store {
	return &Store{values: maps.Clone(s.values)}
}

// CopyFrom replaces the contents of s with a copy of other
func (s *Store) CopyFrom(other *Store) {
	clear(s.values)
	maps.Copy(s.values, other.values)
}

// Equal reports whether both stores hold the same ids and values
func (s *Store) Equal(other *Store) bool {
	return maps.EqualFunc(s.values, other.values, param.Value.Equal)
}
