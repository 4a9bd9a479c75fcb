// Package controller owns the control-side parameter state of one plugin
// instance and is the only entry point for external edits.
package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"

	"github.com/justyntemme/vcparam/internal/observe"
	"github.com/justyntemme/vcparam/pkg/framework/param"
	"github.com/justyntemme/vcparam/pkg/framework/state"
)

// Notifier receives one notification per touched id after an edit
type Notifier interface {
	// NotifyNormalized reports a Number or List parameter in host units
	NotifyNormalized(id param.ID, normalized float64)
	// NotifyText reports a Text parameter
	NotifyText(id param.ID, text string)
}

// Core bundles a value store with the ids touched by the most recent edit.
//
// A Core is not synchronized. It belongs to the control actor; the realtime
// side only ever sees values forwarded through RealtimeApply.
type Core struct {
	schema  *param.Schema
	store   *state.Store
	codec   *state.Codec
	touched []param.ID

	logger  *slog.Logger
	metrics *observe.Metrics
}

// Option configures a Core
type Option func(*Core)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Core) {
		c.logger = l
	}
}

// WithMetrics sets the metric instruments. Without it nothing is recorded.
func WithMetrics(m *observe.Metrics) Option {
	return func(c *Core) {
		c.metrics = m
	}
}

// New creates a core whose store holds the schema defaults
func New(schema *param.Schema, opts ...Option) *Core {
	c := &Core{
		schema: schema,
		store:  state.NewDefaultStore(schema),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.codec = state.NewCodec(schema, state.WithLogger(c.logger))
	return c
}

// Schema returns the schema the core was built with
func (c *Core) Schema() *param.Schema {
	return c.schema
}

// Store returns the value store. Callers must not modify it.
func (c *Core) Store() *state.Store {
	return c.store
}

// Value returns the current value of id
func (c *Core) Value(id param.ID) param.Value {
	return c.store.GetValue(id)
}

// ApplyExternalEdit validates v for id, runs the parameter's control update
// and commits every resulting write. Ids written as a side effect are
// appended to the touched list; id itself is not.
//
// On error the store is left exactly as it was. A new edit is refused with
// EditInProgress until the previous edit's touched ids have been drained.
// Editing an undeclared id panics.
func (c *Core) ApplyExternalEdit(id param.ID, v param.Value) error {
	d := c.schema.Lookup(id)

	err := c.applyEdit(d, v)
	touched := 0
	if err == nil {
		touched = len(c.touched)
	}
	c.metrics.RecordEdit(context.Background(), d.Kind().String(), param.CodeOf(err).String(), touched)
	if err != nil {
		c.logger.Warn("rejected parameter edit",
			"id", id,
			"name", d.Name,
			"value", v,
			"error", err,
		)
		return err
	}
	c.logger.Debug("applied parameter edit",
		"id", id,
		"name", d.Name,
		"value", c.store.GetValue(id),
		"touched", len(c.touched),
	)
	return nil
}

func (c *Core) applyEdit(d *param.Descriptor, v param.Value) error {
	if len(c.touched) > 0 {
		return fmt.Errorf("%s: %d touched ids not drained: %w", d.Name, len(c.touched), param.EditInProgress)
	}
	if d.Flags.Has(param.IsReadOnly) {
		return fmt.Errorf("%s: %w", d.Name, param.ReadOnlyParameter)
	}
	v, err := d.Validate(v)
	if err != nil {
		return err
	}

	tx := newTxn(c.store, d.ID)
	tx.Set(d.ID, v)
	if err := d.ControlUpdate(tx, v); err != nil {
		return err
	}
	if err := tx.commit(c.schema); err != nil {
		return err
	}
	c.touched = append(c.touched, tx.touched...)
	return nil
}

// SetNormalized applies a host automation value in [0, 1]
func (c *Core) SetNormalized(id param.ID, normalized float64) error {
	d := c.schema.Lookup(id)
	if d.Type == param.TextType {
		return fmt.Errorf("%s: text is not automatable: %w", d.Name, param.ValueKindMismatch)
	}
	if math.IsNaN(normalized) {
		return fmt.Errorf("%s: NaN: %w", d.Name, param.ValueOutOfRange)
	}
	return c.ApplyExternalEdit(id, d.Denormalize(normalized))
}

// SetText applies an edit to a Text parameter
func (c *Core) SetText(id param.ID, text string) error {
	return c.ApplyExternalEdit(id, param.Text(text))
}

// SetFormatted parses a display string with the parameter's parser and
// applies the result
func (c *Core) SetFormatted(id param.ID, str string) error {
	d := c.schema.Lookup(id)
	v, err := d.ParseValue(str)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", d.Name, param.ValueOutOfRange, err)
	}
	return c.ApplyExternalEdit(id, v)
}

// Touched returns the ids touched since the last drain, in insertion order
func (c *Core) Touched() []param.ID {
	return slices.Clone(c.touched)
}

// Drain returns the touched ids and clears the list
func (c *Core) Drain() []param.ID {
	ids := c.touched
	c.touched = nil
	return ids
}

// Notify drains the touched ids and reports each one's current value
func (c *Core) Notify(n Notifier) {
	for _, id := range c.Drain() {
		d := c.schema.Lookup(id)
		v := c.store.GetValue(id)
		if d.Type == param.TextType {
			n.NotifyText(id, v.AsText())
			continue
		}
		n.NotifyNormalized(id, d.Normalize(v))
	}
}

// Write saves a snapshot of the store
func (c *Core) Write(w io.Writer) error {
	return c.codec.Write(w, c.store)
}

// Read restores the store from a snapshot. Pending touched ids are
// discarded. A truncated snapshot is applied up to the cut and reported
// with state.ErrTruncated.
func (c *Core) Read(r io.Reader) error {
	c.touched = nil
	err := c.codec.Read(r, c.store)
	if errors.Is(err, state.ErrTruncated) {
		c.logger.Warn("snapshot truncated, remaining parameters keep their defaults")
	}
	return err
}
