package hxlive

// Properties is the read side of a component's state as seen by the tracker.
// Names returns the user-defined property names in declaration order.
type Properties interface {
	Names() []string
	Get(name string) (any, bool)
}

type snapshotEntry struct {
	name string
	sum  uint32
}

// Tracker detects which scalar properties changed during one request cycle.
//
// A cycle runs Idle -> BeginCycle -> (Exempt ...) -> (DirtyFields ...) ->
// EndCycle -> Idle. BeginCycle records a checksum for every diffable
// property; DirtyFields compares the live values against it. Properties that
// arrived from the client are exempted, since the client already holds their
// new value.
//
// A Tracker belongs to a single component instance and is not safe for
// concurrent use.
type Tracker struct {
	snapshot []snapshotEntry
	index    map[string]int
	exempt   map[string]struct{}
	active   bool
}

// NewTracker returns an idle tracker.
func NewTracker() *Tracker {
	return &Tracker{
		index:  make(map[string]int),
		exempt: make(map[string]struct{}),
	}
}

// BeginCycle snapshots the checksum of every diffable property, replacing
// any previous snapshot. Exemptions are left alone; only EndCycle clears them.
func (t *Tracker) BeginCycle(props Properties) {
	t.snapshot = t.snapshot[:0]
	clear(t.index)

	for _, name := range props.Names() {
		v, ok := props.Get(name)
		if !ok {
			continue
		}
		// Only nil, strings and numbers are tracked.
		sum, ok := Checksum(v)
		if !ok {
			continue
		}
		t.index[name] = len(t.snapshot)
		t.snapshot = append(t.snapshot, snapshotEntry{name: name, sum: sum})
	}
	t.active = true
}

// Exempt suppresses dirty reporting for name until EndCycle.
func (t *Tracker) Exempt(name string) {
	t.exempt[name] = struct{}{}
}

// IsExempt reports whether name is exempted in the current cycle.
func (t *Tracker) IsExempt(name string) bool {
	_, ok := t.exempt[name]
	return ok
}

// Snapshotted reports whether name was captured by BeginCycle.
func (t *Tracker) Snapshotted(name string) bool {
	_, ok := t.index[name]
	return ok
}

// DirtyFields returns, in snapshot order, the properties whose checksum no
// longer matches the snapshot. Exempted properties and properties whose
// value is no longer diffable are left out. It does not modify the tracker.
func (t *Tracker) DirtyFields(props Properties) []string {
	dirty := make([]string, 0, len(t.snapshot))
	for _, e := range t.snapshot {
		if t.IsExempt(e.name) {
			continue
		}
		v, ok := props.Get(e.name)
		if !ok {
			continue
		}
		sum, ok := Checksum(v)
		if !ok {
			continue
		}
		if sum != e.sum {
			dirty = append(dirty, e.name)
		}
	}
	return dirty
}

// EndCycle drops the snapshot and all exemptions.
func (t *Tracker) EndCycle() {
	t.snapshot = t.snapshot[:0]
	clear(t.index)
	clear(t.exempt)
	t.active = false
}

// Active reports whether a cycle is open.
func (t *Tracker) Active() bool {
	return t.active
}
