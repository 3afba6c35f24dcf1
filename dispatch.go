package hxlive

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/pthm/hxlive/lib/logging"
	"github.com/pthm/hxlive/lib/validate"
)

// SyncUpdate is a property value the client changed.
type SyncUpdate struct {
	Name  string
	Value any
}

// Request is one client round-trip, already decoded by the surrounding
// framework's transport.
type Request struct {
	// Component is the component type name.
	Component string
	// State is the token from the previous response. Empty creates and
	// mounts a new instance.
	State string
	// Params are passed to the mount hook of new instances.
	Params map[string]any
	// Syncs are applied in order before the action.
	Syncs []SyncUpdate
	// Action is optional.
	Action string
	Args   []any
	// Connection is attached to the instance as its connection handle.
	Connection any
}

// Response is the outcome of a round-trip.
type Response struct {
	ID        string
	Component string
	// State is the token the client sends back next time.
	State string
	HTML  string
	// Dirty lists properties changed server-side during the cycle, and
	// Updates holds their new values.
	Dirty   []string
	Updates map[string]any
	// Errors holds validation failures from syncs or the action. They are
	// also rendered into HTML.
	Errors  validate.Errors
	Mounted bool
}

// Dispatch runs one request cycle against a component:
//
//  1. restore the instance from req.State, or create and mount a new one
//  2. BeginCycle
//  3. apply req.Syncs through SyncInput
//  4. run req.Action, if any
//  5. collect DirtyFields and render the view
//  6. EndCycle, clear form refreshes and persist the instance
//
// Validation errors from sync handlers or the action are rendered and
// returned in Response.Errors; any other error aborts the round-trip.
func (reg *Registry) Dispatch(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	c, mounted, err := reg.instance(ctx, req)
	if err != nil {
		reg.logger.ErrorContext(ctx, "component unavailable",
			logging.Component(req.Component), logging.Error(err))
		return nil, err
	}

	resp, err := reg.cycle(ctx, c, req)
	if err != nil {
		c.logger.ErrorContext(ctx, "cycle failed", logging.Action(req.Action), logging.Error(err))
		return nil, err
	}
	resp.Mounted = mounted

	c.logger.DebugContext(ctx, "cycle complete",
		logging.Action(req.Action),
		logging.Fields("dirty", resp.Dirty),
		logging.Duration(time.Since(start)),
	)
	return resp, nil
}

func (reg *Registry) instance(ctx context.Context, req Request) (*Component, bool, error) {
	if req.State == "" {
		c, err := reg.New(ctx, req.Component, req.Connection, req.Params)
		return c, true, err
	}

	c, err := reg.Restore(req.State, req.Connection)
	if err != nil {
		return nil, false, err
	}
	if c.Name() != req.Component {
		return nil, false, fmt.Errorf("%w: state for %q sent to %q", ErrSchemaMismatch, c.Name(), req.Component)
	}
	return c, false, nil
}

func (reg *Registry) cycle(ctx context.Context, c *Component, req Request) (*Response, error) {
	c.BeginCycle()
	defer c.EndCycle()

	var errs validate.Errors
	for _, u := range req.Syncs {
		if err := c.SyncInput(ctx, u.Name, u.Value); err != nil {
			verrs := validate.Extract(err)
			if verrs == nil {
				return nil, err
			}
			errs = append(errs, verrs...)
		}
	}

	if req.Action != "" {
		h, ok := c.schema.ActionHandler(req.Action)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownAction, c.Name(), req.Action)
		}
		if err := h(ctx, c, req.Args); err != nil {
			verrs := validate.Extract(err)
			if verrs == nil {
				return nil, fmt.Errorf("action %s: %w", req.Action, err)
			}
			errs = append(errs, verrs...)
		}
	}

	dirty := c.DirtyFields()
	updates := make(map[string]any, len(dirty))
	for _, name := range dirty {
		updates[name], _ = c.Get(name)
	}

	var buf bytes.Buffer
	if err := c.View(errs).Render(ctx, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", c.Name(), err)
	}

	c.EndCycle()
	c.ClearFormRefreshes()

	token, err := reg.Persist(c)
	if err != nil {
		return nil, err
	}

	return &Response{
		ID:        c.ID(),
		Component: c.Name(),
		State:     token,
		HTML:      buf.String(),
		Dirty:     dirty,
		Updates:   updates,
		Errors:    errs,
	}, nil
}
