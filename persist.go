package hxlive

import (
	"fmt"
	"log/slog"
)

// Keys of the persisted map form. Short to keep tokens small.
const (
	keyID        = "i"
	keyComponent = "c"
	keyFields    = "f"
	keyForms     = "fm"
)

// PersistedField is one property value in persisted form.
type PersistedField struct {
	Name  string
	Value any
}

// PersistedForm is a form's name and values in persisted form.
type PersistedForm struct {
	Name   string
	Values map[string]any
}

// Persisted is a persistence-safe copy of a component instance: every value
// is plain data and callbacks are replaced by Callback references. It is
// what travels between requests.
type Persisted struct {
	ID        string
	Component string
	Fields    []PersistedField
	Forms     []PersistedForm
}

// PrepareForPersistence returns a persistence-safe snapshot of c. Callback
// properties become Callback references; callbacks that cannot be
// represented (raw funcs, unnamed bound callbacks) fail with
// ErrCallbackNotSerializable. Only top-level callback properties are
// converted: a callback nested in a list or map also fails with
// ErrCallbackNotSerializable. The live instance is left unchanged.
func (c *Component) PrepareForPersistence() (*Persisted, error) {
	p := &Persisted{
		ID:        c.id,
		Component: c.schema.name,
		Fields:    make([]PersistedField, 0, len(c.schema.fields)),
	}

	for _, f := range c.schema.fields {
		v := c.state.values[f.Name]
		if isCallback(v) {
			cb, err := MakeSerializable(v)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", c.schema.name, f.Name, err)
			}
			v = cb
		} else if containsCallback(v) {
			return nil, fmt.Errorf("%w: %s.%s holds a nested callback", ErrCallbackNotSerializable, c.schema.name, f.Name)
		}
		p.Fields = append(p.Fields, PersistedField{Name: f.Name, Value: v})
	}

	for _, form := range c.forms.All() {
		values := make(map[string]any, len(form.Values))
		for k, v := range form.Values {
			values[k] = v
		}
		p.Forms = append(p.Forms, PersistedForm{Name: form.Name, Values: values})
	}

	return p, nil
}

func containsCallback(v any) bool {
	switch v := v.(type) {
	case []any:
		for _, e := range v {
			if isCallback(e) || containsCallback(e) {
				return true
			}
		}
	case map[string]any:
		for _, e := range v {
			if isCallback(e) || containsCallback(e) {
				return true
			}
		}
	}
	return false
}

// EncodeState implements encoding.Encodable. A field is a [name, value]
// pair; a callback field is a [name, callback, args] triple.
func (p *Persisted) EncodeState() map[string]any {
	fields := make([]any, 0, len(p.Fields))
	for _, f := range p.Fields {
		if cb, ok := f.Value.(Callback); ok {
			fields = append(fields, []any{f.Name, cb.Name, cb.Args})
			continue
		}
		fields = append(fields, []any{f.Name, f.Value})
	}

	forms := make([]any, 0, len(p.Forms))
	for _, f := range p.Forms {
		forms = append(forms, []any{f.Name, f.Values})
	}

	return map[string]any{
		keyID:        p.ID,
		keyComponent: p.Component,
		keyFields:    fields,
		keyForms:     forms,
	}
}

// DecodeState implements encoding.Decodable.
func (p *Persisted) DecodeState(m map[string]any) error {
	var ok bool
	if p.ID, ok = m[keyID].(string); !ok || p.ID == "" {
		return fmt.Errorf("%w: missing instance id", ErrInvalidFormat)
	}
	if p.Component, ok = m[keyComponent].(string); !ok || p.Component == "" {
		return fmt.Errorf("%w: missing component name", ErrInvalidFormat)
	}

	fields, _ := m[keyFields].([]any)
	p.Fields = make([]PersistedField, 0, len(fields))
	for _, raw := range fields {
		tuple, ok := raw.([]any)
		if !ok || (len(tuple) != 2 && len(tuple) != 3) {
			return fmt.Errorf("%w: malformed field", ErrInvalidFormat)
		}
		name, ok := tuple[0].(string)
		if !ok {
			return fmt.Errorf("%w: malformed field name", ErrInvalidFormat)
		}
		if len(tuple) == 2 {
			p.Fields = append(p.Fields, PersistedField{Name: name, Value: tuple[1]})
			continue
		}
		cbName, ok := tuple[1].(string)
		if !ok || cbName == "" {
			return fmt.Errorf("%w: malformed callback in %s", ErrInvalidFormat, name)
		}
		args, _ := tuple[2].([]any)
		p.Fields = append(p.Fields, PersistedField{Name: name, Value: Callback{Name: cbName, Args: args}})
	}

	forms, _ := m[keyForms].([]any)
	p.Forms = make([]PersistedForm, 0, len(forms))
	for _, raw := range forms {
		pair, ok := raw.([]any)
		if !ok || len(pair) != 2 {
			return fmt.Errorf("%w: malformed form", ErrInvalidFormat)
		}
		name, ok := pair[0].(string)
		if !ok {
			return fmt.Errorf("%w: malformed form name", ErrInvalidFormat)
		}
		values, _ := pair[1].(map[string]any)
		p.Forms = append(p.Forms, PersistedForm{Name: name, Values: values})
	}

	return nil
}

// restore rebuilds a component from its persisted form. Fields the schema no
// longer declares are dropped; newly declared fields keep their zero value.
func restore(s *Schema, p *Persisted, conn any, callbacks *Callbacks, logger *slog.Logger) (*Component, error) {
	if p.Component != s.name {
		return nil, fmt.Errorf("%w: state for %q, want %q", ErrSchemaMismatch, p.Component, s.name)
	}

	c := newComponent(s, p.ID, conn, callbacks, logger)
	for _, f := range p.Fields {
		if !c.state.Set(f.Name, f.Value) {
			c.logger.Debug("dropping undeclared persisted field", slog.String("property", f.Name))
		}
	}
	for _, pf := range p.Forms {
		form := c.forms.Add(pf.Name)
		for k, v := range pf.Values {
			form.Values[k] = v
		}
	}
	return c, nil
}
