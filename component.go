package hxlive

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pthm/hxlive/lib/logging"
	"github.com/pthm/hxlive/lib/validate"
)

// Component is one live instance of a Schema: its property values plus the
// per-cycle dirty tracking state, forms and the opaque connection handle the
// surrounding framework attached it to.
//
// A request against a component runs one cycle:
//
//	c.BeginCycle()
//	c.SyncInput(ctx, "name", "Bob")   // values the client already shows
//	c.Set("greeting", "Hi Bob")       // server-side changes
//	dirty := c.DirtyFields()          // ["greeting"]
//	c.EndCycle()
//
// Registry.Dispatch drives this sequence for you. A Component handles one
// request at a time and is not safe for concurrent use; concurrent requests
// each restore their own instance.
type Component struct {
	id        string
	schema    *Schema
	state     *State
	tracker   *Tracker
	forms     *Forms
	conn      any
	callbacks *Callbacks
	logger    *slog.Logger
}

// NewInstance creates a standalone instance of s with zero-valued properties,
// a fresh ID and its own callback table. Instances created through a
// Registry share the registry's callbacks and logger instead.
func NewInstance(s *Schema, conn any) *Component {
	return newComponent(s, uuid.NewString(), conn, NewCallbacks(), logging.Discard())
}

func newComponent(s *Schema, id string, conn any, callbacks *Callbacks, logger *slog.Logger) *Component {
	return &Component{
		id:        id,
		schema:    s,
		state:     newState(s),
		tracker:   NewTracker(),
		forms:     NewForms(),
		conn:      conn,
		callbacks: callbacks,
		logger:    logger.With(logging.Component(s.name), logging.InstanceID(id)),
	}
}

// ID returns the instance ID.
func (c *Component) ID() string {
	return c.id
}

// Name returns the component type name.
func (c *Component) Name() string {
	return c.schema.name
}

// Schema returns the component's schema.
func (c *Component) Schema() *Schema {
	return c.schema
}

// Connection returns the handle the framework attached to this instance.
func (c *Component) Connection() any {
	return c.conn
}

// Forms returns the component's forms.
func (c *Component) Forms() *Forms {
	return c.forms
}

// Properties exposes the property values read-only.
func (c *Component) Properties() Properties {
	return c.state
}

// Get returns a property value.
func (c *Component) Get(name string) (any, bool) {
	return c.state.Get(name)
}

// Set writes a property directly. Unlike SyncInput the change is reported
// by DirtyFields.
func (c *Component) Set(name string, v any) error {
	if !c.state.Set(name, v) {
		return fmt.Errorf("%w: %s.%s", ErrUnknownProperty, c.schema.name, name)
	}
	return nil
}

// Values returns a copy of all property values.
func (c *Component) Values() map[string]any {
	return c.state.Values()
}

// Display returns a property formatted for templates: "" for nil, the
// decimal form for numbers and fmt's default format otherwise.
func (c *Component) Display(name string) string {
	v, _ := c.state.Get(name)
	if s, ok := canonical(v); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Mount runs the schema's mount hook. Called once for new instances.
func (c *Component) Mount(ctx context.Context, params map[string]any) error {
	if c.schema.mount == nil {
		return nil
	}
	return c.schema.mount(ctx, c, params)
}

// BeginCycle snapshots the diffable properties. Call before any sync or
// action in a request.
func (c *Component) BeginCycle() {
	c.tracker.BeginCycle(c.state)
}

// SyncInput assigns a value that arrived from the client. The schema's sync
// handler for name, if any, runs first and may reject the value. A synced
// property is exempt from DirtyFields until EndCycle, because the client
// already displays it.
func (c *Component) SyncInput(ctx context.Context, name string, value any) error {
	if _, ok := c.schema.Lookup(name); !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownProperty, c.schema.name, name)
	}

	if h, ok := c.schema.SyncHandler(name); ok {
		if err := h(ctx, c, value); err != nil {
			c.logger.DebugContext(ctx, "sync rejected", slog.String("property", name), logging.Error(err))
			return fmt.Errorf("sync %s: %w", name, err)
		}
	}

	c.tracker.Exempt(name)
	c.state.Set(name, value)
	return nil
}

// DirtyFields returns the properties changed since BeginCycle that the
// client does not know about yet, in declaration order.
func (c *Component) DirtyFields() []string {
	return c.tracker.DirtyFields(c.state)
}

// EndCycle clears the snapshot and exemptions.
func (c *Component) EndCycle() {
	c.tracker.EndCycle()
}

// InCycle reports whether BeginCycle has run without a matching EndCycle.
func (c *Component) InCycle() bool {
	return c.tracker.Active()
}

// Validated collects the named properties (every property with rules when
// none are named) and checks them against the schema's rules. It returns the
// validated values, or validate.Errors for the caller to surface.
func (c *Component) Validated(fields ...string) (map[string]any, error) {
	rules, order := c.schema.RuleSet(fields...)

	data := make(map[string]any, len(order))
	for _, f := range order {
		v, ok := c.state.Get(f)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownProperty, c.schema.name, f)
		}
		data[f] = v
	}
	return validate.Validate(data, rules, order...)
}

// Call invokes the callback held by property, appending extra to its bound
// arguments.
func (c *Component) Call(ctx context.Context, property string, extra ...any) error {
	v, ok := c.state.Get(property)
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownProperty, c.schema.name, property)
	}

	var (
		fn   CallbackFunc
		args []any
	)
	switch cb := v.(type) {
	case *BoundCallback:
		fn, args = cb.Fn, cb.Args
	case Callback:
		f, ok := c.callbacks.Lookup(cb.Name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrCallbackNotFound, cb.Name)
		}
		fn, args = f, cb.Args
	case CallbackFunc:
		fn = cb
	case func(context.Context, *Component, ...any) error:
		fn = cb
	default:
		return fmt.Errorf("%w: %s", ErrNotCallback, property)
	}
	if fn == nil {
		return fmt.Errorf("%w: %s", ErrCallbackNotFound, property)
	}
	return fn(ctx, c, append(append([]any(nil), args...), extra...)...)
}

// ClearFormRefreshes marks every form refreshed.
func (c *Component) ClearFormRefreshes() {
	c.forms.ClearRefreshes()
}
