package hxlive

// Form is a named group of inputs rendered by a component. A form flagged
// for refresh tells the client to reset its inputs from the server values
// on the next render; the flag is cleared once the cycle ends.
type Form struct {
	Name    string
	Values  map[string]any
	refresh bool
}

// Refresh flags the form to be re-seeded on the next render.
func (f *Form) Refresh() {
	f.refresh = true
}

// Refreshed clears the refresh flag.
func (f *Form) Refreshed() {
	f.refresh = false
}

// Pending reports whether a refresh is flagged.
func (f *Form) Pending() bool {
	return f.refresh
}

// Forms is the ordered collection of a component's forms.
type Forms struct {
	forms []*Form
}

// NewForms returns an empty collection.
func NewForms() *Forms {
	return &Forms{}
}

// Add returns the form called name, creating it if needed.
func (fs *Forms) Add(name string) *Form {
	if f := fs.Get(name); f != nil {
		return f
	}
	f := &Form{Name: name, Values: make(map[string]any)}
	fs.forms = append(fs.forms, f)
	return f
}

// Get returns the form called name, or nil.
func (fs *Forms) Get(name string) *Form {
	for _, f := range fs.forms {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// All returns the forms in creation order.
func (fs *Forms) All() []*Form {
	return append([]*Form(nil), fs.forms...)
}

// ClearRefreshes marks every form refreshed.
func (fs *Forms) ClearRefreshes() {
	for _, f := range fs.forms {
		f.Refreshed()
	}
}
