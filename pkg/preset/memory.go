package preset

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"
)

// MemoryStore keeps presets in memory
type MemoryStore struct {
	mu      sync.RWMutex
	presets map[string]Preset
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		presets: make(map[string]Preset),
		now:     time.Now,
	}
}

// Save stores a copy of data under name
func (m *MemoryStore) Save(ctx context.Context, name string, data []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.presets[name] = Preset{
		Name:    name,
		Data:    slices.Clone(data),
		Updated: m.now().UTC(),
	}
	return nil
}

// Load returns a copy of the named preset
func (m *MemoryStore) Load(ctx context.Context, name string) (Preset, error) {
	if err := ctx.Err(); err != nil {
		return Preset{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	p.Data = slices.Clone(p.Data)
	return p, nil
}

// List returns every preset sorted by name
func (m *MemoryStore) List(ctx context.Context) ([]Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	infos := make([]Info, 0, len(m.presets))
	for _, name := range slices.Sorted(maps.Keys(m.presets)) {
		p := m.presets[name]
		infos = append(infos, Info{Name: p.Name, Size: len(p.Data), Updated: p.Updated})
	}
	return infos, nil
}

// Delete removes the named preset
func (m *MemoryStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.presets[name]; !ok {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	delete(m.presets, name)
	return nil
}

// Close is a no-op
func (m *MemoryStore) Close() error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
