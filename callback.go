package hxlive

import (
	"context"
	"fmt"
	"reflect"
	"sync"
)

// CallbackFunc is the function behind a named callback.
type CallbackFunc func(ctx context.Context, c *Component, args ...any) error

// Callback is the persistable form of a callback: a registered name plus
// the arguments bound to it. Go funcs cannot cross a request boundary, so a
// property holding a callback is stored as a Callback and resolved against
// the registry's Callbacks table when invoked again.
type Callback struct {
	Name string
	Args []any
}

// IsZero returns true if the callback is empty/unset.
func (cb Callback) IsZero() bool {
	return cb.Name == ""
}

// BoundCallback is a callback whose function is available in this process.
// It persists as Callback{Name, Args}.
type BoundCallback struct {
	Name string
	Fn   CallbackFunc
	Args []any
}

// Func binds fn under name. The same name must be registered with the
// registry's Callbacks for the callback to work after a round-trip.
//
//	c.Set("onSaved", hxlive.Func("notify", notify, "profile"))
func Func(name string, fn CallbackFunc, args ...any) *BoundCallback {
	return &BoundCallback{Name: name, Fn: fn, Args: args}
}

// Ref references an already registered callback by name.
func Ref(name string, args ...any) Callback {
	return Callback{Name: name, Args: args}
}

// Callbacks is a name -> func table shared by every component of a registry.
type Callbacks struct {
	mu    sync.RWMutex
	funcs map[string]CallbackFunc
}

// NewCallbacks returns an empty table.
func NewCallbacks() *Callbacks {
	return &Callbacks{funcs: make(map[string]CallbackFunc)}
}

// Register adds fn under name. Panics on duplicates.
func (t *Callbacks) Register(name string, fn CallbackFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.funcs[name]; exists {
		panic(fmt.Sprintf("hxlive: duplicate callback %q", name))
	}
	t.funcs[name] = fn
}

// Lookup returns the func registered under name.
func (t *Callbacks) Lookup(name string) (CallbackFunc, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	fn, ok := t.funcs[name]
	return fn, ok
}

// MakeSerializable converts a callback value into its persistable form.
// Raw Go funcs and unnamed bound callbacks cannot be represented and return
// ErrCallbackNotSerializable; values that are not callbacks at all return
// ErrNotCallback.
func MakeSerializable(v any) (Callback, error) {
	switch cb := v.(type) {
	case Callback:
		return cb, nil
	case *BoundCallback:
		if cb == nil || cb.Name == "" {
			return Callback{}, fmt.Errorf("%w: unnamed callback", ErrCallbackNotSerializable)
		}
		return Callback{Name: cb.Name, Args: cb.Args}, nil
	}
	if isFunc(v) {
		return Callback{}, fmt.Errorf("%w: %T", ErrCallbackNotSerializable, v)
	}
	return Callback{}, ErrNotCallback
}

func isCallback(v any) bool {
	switch v.(type) {
	case Callback, *BoundCallback:
		return true
	}
	return isFunc(v)
}

func isFunc(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}
