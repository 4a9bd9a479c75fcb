package engine

import (
	"errors"
	"fmt"
	"slices"

	"github.com/justyntemme/vcparam/pkg/framework/param"
	"github.com/justyntemme/vcparam/pkg/framework/state"
)

// Apply forwards the stored values of ids to p, in order. Every id is
// attempted; the failures are joined.
func Apply(p param.Processor, schema *param.Schema, store *state.Store, ids ...param.ID) error {
	var errs []error
	for _, id := range ids {
		d := schema.Lookup(id)
		if err := d.RealtimeApply(p, store.GetValue(id)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.Name, err))
		}
	}
	return errors.Join(errs...)
}

// SyncAll forwards every stored value to p in declaration order, skipping
// the given ids. It is used after a snapshot restore and after a model
// swap, where the model path itself is skipped.
func SyncAll(p param.Processor, schema *param.Schema, store *state.Store, skip ...param.ID) error {
	var errs []error
	for _, d := range schema.All() {
		if slices.Contains(skip, d.ID) {
			continue
		}
		if err := d.RealtimeApply(p, store.GetValue(d.ID)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.Name, err))
		}
	}
	return errors.Join(errs...)
}
