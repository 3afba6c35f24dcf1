package hxlive

// State holds a component's property values in schema order.
type State struct {
	schema *Schema
	values map[string]any
}

func newState(s *Schema) *State {
	st := &State{
		schema: s,
		values: make(map[string]any, len(s.fields)),
	}
	for _, f := range s.fields {
		st.values[f.Name] = f.Kind.Zero()
	}
	return st
}

// Names returns the property names in declaration order.
func (st *State) Names() []string {
	names := make([]string, len(st.schema.fields))
	for i, f := range st.schema.fields {
		names[i] = f.Name
	}
	return names
}

// Get returns the value of name. ok is false for undeclared names.
func (st *State) Get(name string) (any, bool) {
	if _, declared := st.schema.index[name]; !declared {
		return nil, false
	}
	return st.values[name], true
}

// Set assigns name. Undeclared names are rejected.
func (st *State) Set(name string, v any) bool {
	if _, declared := st.schema.index[name]; !declared {
		return false
	}
	st.values[name] = v
	return true
}

// Values returns a copy of all properties.
func (st *State) Values() map[string]any {
	out := make(map[string]any, len(st.values))
	for k, v := range st.values {
		out[k] = v
	}
	return out
}
