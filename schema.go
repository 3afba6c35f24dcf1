package hxlive

import (
	"context"
	"fmt"

	"github.com/a-h/templ"

	"github.com/pthm/hxlive/lib/validate"
)

// Reserved names are held by the Component itself and can never be declared
// as properties, so they are never diffed or persisted as state.
var reservedNames = map[string]struct{}{
	"hashes":                {},
	"exemptFromHashDiffing": {},
	"connection":            {},
	"component":             {},
	"forms":                 {},
}

// IsReserved reports whether name is an internal component field.
func IsReserved(name string) bool {
	_, ok := reservedNames[name]
	return ok
}

// Field describes one user-defined property.
type Field struct {
	Name string
	Kind Kind
}

// SyncHandler runs before a client-synced value is assigned. Returning an
// error rejects the value: nothing is assigned and nothing is exempted.
type SyncHandler func(ctx context.Context, c *Component, value any) error

// MountHandler runs once when a new instance is created.
type MountHandler func(ctx context.Context, c *Component, params map[string]any) error

// ActionHandler performs a named action during a cycle. Returning
// validate.Errors renders the errors into the view instead of failing the
// round-trip.
type ActionHandler func(ctx context.Context, c *Component, params []any) error

// RenderFunc produces the component's markup. Use ErrorsFromContext and
// FormsFromContext inside templates to reach the error bag and forms.
type RenderFunc func(ctx context.Context, c *Component) templ.Component

// Schema is the definition of a component type: its ordered properties,
// per-property sync handlers, validation rules, actions and renderer.
//
// Schemas are built once at startup and shared by every instance:
//
//	var Profile = hxlive.NewSchema("profile").
//	    Field("name", hxlive.KindString).
//	    Field("age", hxlive.KindInt).
//	    OnSync("name", trimName).
//	    Rules("name", validate.Required()).
//	    Action("save", save).
//	    Render(profileView)
//
// Definition mistakes (duplicate or reserved names, handlers for undeclared
// fields) panic, so they surface at startup rather than during requests.
type Schema struct {
	name     string
	fields   []Field
	index    map[string]int
	syncs    map[string]SyncHandler
	rules    map[string][]validate.Rule
	actions  map[string]ActionHandler
	mount    MountHandler
	render   RenderFunc
	ruleKeys []string
}

// NewSchema starts a schema for the component type called name.
func NewSchema(name string) *Schema {
	if name == "" {
		panic("hxlive: schema name must not be empty")
	}
	return &Schema{
		name:    name,
		index:   make(map[string]int),
		syncs:   make(map[string]SyncHandler),
		rules:   make(map[string][]validate.Rule),
		actions: make(map[string]ActionHandler),
	}
}

// Name returns the component type name.
func (s *Schema) Name() string {
	return s.name
}

// Field declares a property. Declaration order is the diffing order.
func (s *Schema) Field(name string, kind Kind) *Schema {
	if name == "" {
		panic(fmt.Sprintf("hxlive: %s: empty field name", s.name))
	}
	if IsReserved(name) {
		panic(fmt.Sprintf("hxlive: %s: field name %q is reserved", s.name, name))
	}
	if _, exists := s.index[name]; exists {
		panic(fmt.Sprintf("hxlive: %s: duplicate field %q", s.name, name))
	}
	s.index[name] = len(s.fields)
	s.fields = append(s.fields, Field{Name: name, Kind: kind})
	return s
}

// OnSync registers the handler run when the client syncs field.
func (s *Schema) OnSync(field string, h SyncHandler) *Schema {
	s.mustHave(field, "sync handler")
	s.syncs[field] = h
	return s
}

// Rules appends validation rules for field.
func (s *Schema) Rules(field string, rules ...validate.Rule) *Schema {
	s.mustHave(field, "rules")
	if _, ok := s.rules[field]; !ok {
		s.ruleKeys = append(s.ruleKeys, field)
	}
	s.rules[field] = append(s.rules[field], rules...)
	return s
}

// OnMount registers the hook run for new instances.
func (s *Schema) OnMount(h MountHandler) *Schema {
	s.mount = h
	return s
}

// Action registers a named action.
func (s *Schema) Action(name string, h ActionHandler) *Schema {
	if _, exists := s.actions[name]; exists {
		panic(fmt.Sprintf("hxlive: %s: duplicate action %q", s.name, name))
	}
	s.actions[name] = h
	return s
}

// Render sets the renderer.
func (s *Schema) Render(fn RenderFunc) *Schema {
	s.render = fn
	return s
}

// Fields returns the declared properties in order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Lookup returns the descriptor for name.
func (s *Schema) Lookup(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// SyncHandler returns the sync handler for field, if any.
func (s *Schema) SyncHandler(field string) (SyncHandler, bool) {
	h, ok := s.syncs[field]
	return h, ok
}

// ActionHandler returns the handler for the named action, if any.
func (s *Schema) ActionHandler(name string) (ActionHandler, bool) {
	h, ok := s.actions[name]
	return h, ok
}

// RuleSet returns the validation rules restricted to fields (all rules when
// fields is empty) and the order they were declared in.
func (s *Schema) RuleSet(fields ...string) (map[string][]validate.Rule, []string) {
	if len(fields) == 0 {
		out := make(map[string][]validate.Rule, len(s.rules))
		for k, v := range s.rules {
			out[k] = v
		}
		return out, append([]string(nil), s.ruleKeys...)
	}
	out := make(map[string][]validate.Rule, len(fields))
	for _, f := range fields {
		if r, ok := s.rules[f]; ok {
			out[f] = r
		}
	}
	return out, fields
}

func (s *Schema) mustHave(field, what string) {
	if _, ok := s.index[field]; !ok {
		panic(fmt.Sprintf("hxlive: %s: %s for undeclared field %q", s.name, what, field))
	}
}
