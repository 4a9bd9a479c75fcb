package controller

import (
	"fmt"

	"github.com/justyntemme/vcparam/pkg/framework/param"
	"github.com/justyntemme/vcparam/pkg/framework/state"
)

// txn stages the writes of one control update over the store
type txn struct {
	store   *state.Store
	edited  param.ID
	staged  map[param.ID]param.Value
	touched []param.ID
}

func newTxn(store *state.Store, edited param.ID) *txn {
	return &txn{
		store:  store,
		edited: edited,
		staged: make(map[param.ID]param.Value),
	}
}

func (t *txn) Get(id param.ID) param.Value {
	if v, ok := t.staged[id]; ok {
		return v
	}
	return t.store.GetValue(id)
}

func (t *txn) Set(id param.ID, v param.Value) {
	t.staged[id] = v
	if id != t.edited {
		t.touched = append(t.touched, id)
	}
}

// commit writes the staged values, or nothing if any of them disagrees with
// its descriptor's kind
func (t *txn) commit(schema *param.Schema) error {
	for id, v := range t.staged {
		d, ok := schema.Find(id)
		if !ok {
			return fmt.Errorf("parameter %d: undeclared: %w", id, param.UnknownError)
		}
		if d.Kind() != v.Kind() {
			return fmt.Errorf("%s: staged %s: %w", d.Name, v.Kind(), param.ValueKindMismatch)
		}
	}
	for id, v := range t.staged {
		if err := t.store.SetValue(id, v); err != nil {
			return err
		}
	}
	return nil
}
