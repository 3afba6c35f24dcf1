package hxlive

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/pthm/hxlive/lib/logging"
)

// Registry holds the component schemas of an application together with the
// state encoder and callback table their instances share.
//
//	reg := hxlive.NewRegistry(key)
//	reg.Add(profile.Schema, cart.Schema)
//	reg.Callbacks().Register("notify", notify)
//
// The registry is safe for concurrent use. Instances it creates are not.
type Registry struct {
	mu        sync.RWMutex
	schemas   map[string]*Schema
	encoder   *Encoder
	callbacks *Callbacks
	sensitive bool
	logger    *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used by the registry and its instances.
func WithLogger(l *slog.Logger) Option {
	return func(reg *Registry) {
		if l != nil {
			reg.logger = l
		}
	}
}

// WithSensitive encrypts persisted state instead of signing it.
//
// Signed state (the default) is readable by the client but tamper-proof.
// Encrypted state is opaque; use it when properties hold data the client
// must not see.
func WithSensitive() Option {
	return func(reg *Registry) {
		reg.sensitive = true
	}
}

// NewRegistry creates a registry whose state tokens are keyed by key.
// Panics if the key cannot be used.
func NewRegistry(key []byte, opts ...Option) *Registry {
	enc, err := NewEncoder(key)
	if err != nil {
		panic(fmt.Sprintf("hxlive: failed to create encoder: %v", err))
	}

	reg := &Registry{
		schemas:   make(map[string]*Schema),
		encoder:   enc,
		callbacks: NewCallbacks(),
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(reg)
	}
	return reg
}

// Add registers schemas. Panics on a name collision.
func (reg *Registry) Add(schemas ...*Schema) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, s := range schemas {
		if _, exists := reg.schemas[s.name]; exists {
			panic(fmt.Sprintf("hxlive: component name collision for %q", s.name))
		}
		reg.schemas[s.name] = s
	}
}

// Schema returns the schema registered under name.
func (reg *Registry) Schema(name string) (*Schema, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	s, ok := reg.schemas[name]
	return s, ok
}

// Callbacks returns the callback table shared by this registry's instances.
func (reg *Registry) Callbacks() *Callbacks {
	return reg.callbacks
}

// Encoder returns the registry's state encoder.
func (reg *Registry) Encoder() *Encoder {
	return reg.encoder
}

// IsSensitive returns whether state is encrypted.
func (reg *Registry) IsSensitive() bool {
	return reg.sensitive
}

// New creates and mounts a fresh instance of the named component.
func (reg *Registry) New(ctx context.Context, name string, conn any, params map[string]any) (*Component, error) {
	s, ok := reg.Schema(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	c := newComponent(s, uuid.NewString(), conn, reg.callbacks, reg.logger)
	if err := c.Mount(ctx, params); err != nil {
		return nil, fmt.Errorf("mount %s: %w", name, err)
	}
	return c, nil
}

// Persist prepares c for persistence and encodes it into a state token.
func (reg *Registry) Persist(c *Component) (string, error) {
	p, err := c.PrepareForPersistence()
	if err != nil {
		return "", err
	}
	token, err := reg.encoder.Encode(p, reg.sensitive)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", c.Name(), err)
	}
	return token, nil
}

// Restore decodes a state token into a live instance attached to conn.
func (reg *Registry) Restore(token string, conn any) (*Component, error) {
	var p Persisted
	if err := reg.encoder.Decode(token, reg.sensitive, &p); err != nil {
		return nil, wrapEncodingError(err)
	}

	s, ok := reg.Schema(p.Component)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, p.Component)
	}
	return restore(s, &p, conn, reg.callbacks, reg.logger)
}
