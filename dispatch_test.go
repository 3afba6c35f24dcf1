package hxlive

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/hxlive/lib/logging"
)

func mount(t *testing.T, reg *Registry, params map[string]any) *Response {
	t.Helper()
	resp, err := reg.Dispatch(context.Background(), Request{Component: "signup", Params: params})
	require.NoError(t, err)
	return resp
}

func TestDispatch_Mount(t *testing.T) {
	reg := newTestRegistry()
	resp := mount(t, reg, map[string]any{"name": "Zoe"})

	assert.True(t, resp.Mounted)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "signup", resp.Component)
	assert.NotEmpty(t, resp.State)
	assert.Contains(t, resp.HTML, `value="Zoe"`)
	assert.Empty(t, resp.Dirty, "mount writes happen before the cycle begins")
	assert.True(t, resp.Errors.IsEmpty())
}

func TestDispatch_ActionMarksDirty(t *testing.T) {
	reg := newTestRegistry()
	first := mount(t, reg, map[string]any{"name": "Zoe"})

	resp, err := reg.Dispatch(context.Background(), Request{
		Component: "signup",
		State:     first.State,
		Action:    "greet",
	})
	require.NoError(t, err)

	assert.False(t, resp.Mounted)
	assert.Equal(t, first.ID, resp.ID)
	assert.Equal(t, []string{"greeting"}, resp.Dirty)
	assert.Equal(t, map[string]any{"greeting": "Hello, Zoe"}, resp.Updates)
	assert.Contains(t, resp.HTML, "Hello, Zoe")
}

func TestDispatch_SyncedValuesNotReportedBack(t *testing.T) {
	reg := newTestRegistry()
	first := mount(t, reg, nil)

	resp, err := reg.Dispatch(context.Background(), Request{
		Component: "signup",
		State:     first.State,
		Syncs: []SyncUpdate{
			{Name: "name", Value: "Bob"},
			{Name: "age", Value: 31},
		},
		Action: "greet",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"greeting"}, resp.Dirty)
	assert.Contains(t, resp.HTML, `value="Bob"`)

	next, err := reg.Dispatch(context.Background(), Request{
		Component: "signup",
		State:     resp.State,
		Action:    "tag",
		Args:      []any{"x"},
	})
	require.NoError(t, err)
	assert.Empty(t, next.Dirty, "list changes are never diffed")

	restored, err := reg.Restore(next.State, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bob", restored.Display("name"))
	assert.Equal(t, "31", restored.Display("age"))
	tags, _ := restored.Get("tags")
	assert.Equal(t, []any{"x"}, tags)
}

func TestDispatch_JSONNumberSync(t *testing.T) {
	reg := newTestRegistry()
	first := mount(t, reg, nil)

	resp, err := reg.Dispatch(context.Background(), Request{
		Component: "signup",
		State:     first.State,
		Syncs:     []SyncUpdate{{Name: "age", Value: json.Number("40")}},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Dirty)
}

func TestDispatch_ValidationErrorsRendered(t *testing.T) {
	reg := newTestRegistry()
	first := mount(t, reg, nil)

	resp, err := reg.Dispatch(context.Background(), Request{
		Component: "signup",
		State:     first.State,
		Syncs:     []SyncUpdate{{Name: "email", Value: "nope"}},
		Action:    "save",
	})
	require.NoError(t, err)

	assert.True(t, resp.Errors.Has("email"))
	assert.True(t, resp.Errors.Has("name"))
	assert.Contains(t, resp.HTML, `data-field="email"`)
	assert.Contains(t, resp.HTML, `data-field="name"`)
	assert.NotContains(t, resp.HTML, `class="refresh"`)
}

func TestDispatch_FormRefreshClearedAfterRender(t *testing.T) {
	reg := newTestRegistry()
	first := mount(t, reg, nil)

	resp, err := reg.Dispatch(context.Background(), Request{
		Component: "signup",
		State:     first.State,
		Syncs: []SyncUpdate{
			{Name: "name", Value: "Alice"},
			{Name: "email", Value: "alice@example.com"},
		},
		Action: "save",
	})
	require.NoError(t, err)
	assert.True(t, resp.Errors.IsEmpty())
	assert.Contains(t, resp.HTML, `class="refresh"`)

	restored, err := reg.Restore(resp.State, nil)
	require.NoError(t, err)
	form := restored.Forms().Get("signup")
	require.NotNil(t, form)
	assert.False(t, form.Pending())
}

func TestDispatch_Errors(t *testing.T) {
	reg := newTestRegistry()
	first := mount(t, reg, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"unknown component", Request{Component: "missing"}, ErrNotFound},
		{"unknown action", Request{Component: "signup", State: first.State, Action: "fly"}, ErrUnknownAction},
		{"unknown sync", Request{Component: "signup", State: first.State, Syncs: []SyncUpdate{{Name: "x", Value: 1}}}, ErrUnknownProperty},
		{"reserved sync", Request{Component: "signup", State: first.State, Syncs: []SyncUpdate{{Name: "hashes", Value: 1}}}, ErrUnknownProperty},
		{"sync rejected", Request{Component: "signup", State: first.State, Syncs: []SyncUpdate{{Name: "age", Value: 999}}}, errTooOld},
		{"tampered", Request{Component: "signup", State: first.State + "x"}, ErrSignatureInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := reg.Dispatch(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, resp)
		})
	}

	_, err := reg.Dispatch(ctx, Request{Component: "signup", State: first.State, Action: "boom"})
	assert.ErrorContains(t, err, "action boom")
}

func TestDispatch_StateForOtherComponent(t *testing.T) {
	reg := newTestRegistry()
	reg.Add(NewSchema("other").Field("x", KindInt).Render(signupView))
	first := mount(t, reg, nil)

	_, err := reg.Dispatch(context.Background(), Request{Component: "other", State: first.State})
	assert.ErrorIs(t, err, ErrSchemaMismatch)
	assert.True(t, IsTampered(err))
}

func TestDispatch_Connection(t *testing.T) {
	var seen any
	reg := NewRegistry(testKey)
	reg.Add(NewSchema("conn").
		Field("x", KindInt).
		Action("look", func(_ context.Context, c *Component, _ []any) error {
			seen = c.Connection()
			return nil
		}).
		Render(signupView))

	first, err := reg.Dispatch(context.Background(), Request{Component: "conn", Connection: "ws-1"})
	require.NoError(t, err)

	_, err = reg.Dispatch(context.Background(), Request{
		Component:  "conn",
		State:      first.State,
		Action:     "look",
		Connection: "ws-2",
	})
	require.NoError(t, err)
	assert.Equal(t, "ws-2", seen)
}

func TestDispatch_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.WithOutput(&buf), logging.WithLevel(-4))
	reg := newTestRegistry(WithLogger(logger))

	first := mount(t, reg, nil)
	_, err := reg.Dispatch(context.Background(), Request{Component: "signup", State: first.State, Action: "fly"})
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"cycle complete"`)
	assert.Contains(t, out, `"msg":"cycle failed"`)
	assert.Contains(t, out, `"component":"signup"`)
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestRegistry_AddCollision(t *testing.T) {
	reg := newTestRegistry()
	assert.Panics(t, func() { reg.Add(signupSchema()) })

	s, ok := reg.Schema("signup")
	assert.True(t, ok)
	assert.Equal(t, "signup", s.Name())
}

func TestNewRegistry_EmptyKeyPanics(t *testing.T) {
	assert.Panics(t, func() { NewRegistry(nil) })
}
