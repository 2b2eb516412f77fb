package control

import "sync"

// LineBreakpoint is a single line breakpoint, catalogued by source path.
type LineBreakpoint struct {
	ID            int
	Line          int
	Condition     string
	HitCondition  string
	LogMessage    string
	Verified      bool
	Message       string
	hitCount      int
}

// IsLogpoint reports whether the breakpoint is a logpoint (spec §4.3.5:
// "If a log message template is set, the breakpoint does not stop").
func (b *LineBreakpoint) IsLogpoint() bool { return b.LogMessage != "" }

// FunctionBreakpoint is a breakpoint keyed by function name.
type FunctionBreakpoint struct {
	ID        int
	Name      string
	Condition string
	Verified  bool
}

// DataAccessMode is the access mode a watchpoint reacts to.
type DataAccessMode uint8

const (
	AccessRead DataAccessMode = iota
	AccessWrite
	AccessReadWrite
)

// DataKind discriminates what a watchpoint's variable path addresses.
type DataKind uint8

const (
	DataLocal DataKind = iota
	DataGlobal
	DataUpvalue
	DataTableField
)

// DataBreakpoint (watchpoint) tracks a previous observed value for
// change-detection sampling, per spec §3/§4.3.4.
type DataBreakpoint struct {
	ID            int
	Path          string
	Kind          DataKind
	Access        DataAccessMode
	Condition     string
	HitCondition  string
	HitCount      int
	PreviousValue string
}

// BreakpointManager owns the four breakpoint catalogs described in spec
// §4.3.4: line, function, exception filter, and data (watchpoint). IDs are
// unique across all catalogs in a session and issued from one monotonic
// counter; clearing a catalog never resets the counter.
type BreakpointManager struct {
	mu sync.Mutex

	nextID int

	lines     map[string][]*LineBreakpoint
	functions []*FunctionBreakpoint
	filters   map[string]bool
	data      map[int]*DataBreakpoint
}

// NewBreakpointManager returns an empty BreakpointManager.
func NewBreakpointManager() *BreakpointManager {
	return &BreakpointManager{
		lines:   make(map[string][]*LineBreakpoint),
		filters: make(map[string]bool),
		data:    make(map[int]*DataBreakpoint),
	}
}

// allocID issues a fresh monotonic ID, starting at 1.
func (m *BreakpointManager) allocID() int {
	m.nextID++
	return m.nextID
}

// SetLineBreakpoints replaces the full list of line breakpoints for source,
// per spec §3/§4.3.4 ("replacement, not merge"). Inputs with ID == 0
// receive a fresh ID; inputs with a nonzero ID keep it (e.g. a client
// re-sending a breakpoint it already knows the ID of).
func (m *BreakpointManager) SetLineBreakpoints(source string, inputs []LineBreakpoint) []*LineBreakpoint {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*LineBreakpoint, 0, len(inputs))
	for _, in := range inputs {
		bp := in
		if bp.ID == 0 {
			bp.ID = m.allocID()
		}
		bp.Verified = true
		out = append(out, &bp)
	}
	m.lines[source] = out
	return out
}

// GetLineBreakpoints returns the current catalog for source.
func (m *BreakpointManager) GetLineBreakpoints(source string) []*LineBreakpoint {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*LineBreakpoint(nil), m.lines[source]...)
}

// HasLineBreakpoint reports whether (source, line) is in the catalog.
func (m *BreakpointManager) HasLineBreakpoint(source string, line int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, bp := range m.lines[source] {
		if bp.Line == line {
			return true
		}
	}
	return false
}

// LineBreakpointAt returns the breakpoint at (source, line), if any.
func (m *BreakpointManager) LineBreakpointAt(source string, line int) (*LineBreakpoint, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, bp := range m.lines[source] {
		if bp.Line == line {
			return bp, true
		}
	}
	return nil, false
}

// SetFunctionBreakpoints replaces the entire function breakpoint list.
func (m *BreakpointManager) SetFunctionBreakpoints(inputs []FunctionBreakpoint) []*FunctionBreakpoint {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*FunctionBreakpoint, 0, len(inputs))
	for _, in := range inputs {
		bp := in
		if bp.ID == 0 {
			bp.ID = m.allocID()
		}
		bp.Verified = true
		out = append(out, &bp)
	}
	m.functions = out
	return out
}

// SetExceptionFilters replaces the active exception filter set.
func (m *BreakpointManager) SetExceptionFilters(tokens []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filters = make(map[string]bool, len(tokens))
	for _, t := range tokens {
		m.filters[t] = true
	}
}

// ExceptionFilterActive reports whether a filter token is currently active.
func (m *BreakpointManager) ExceptionFilterActive(token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filters[token]
}

// AddDataBreakpoint installs a new watchpoint, assigning it a fresh ID.
func (m *BreakpointManager) AddDataBreakpoint(in DataBreakpoint) *DataBreakpoint {
	m.mu.Lock()
	defer m.mu.Unlock()
	bp := in
	bp.ID = m.allocID()
	m.data[bp.ID] = &bp
	return &bp
}

// ClearDataBreakpoints empties the watchpoint catalog, for a
// setDataBreakpoints request's "full replacement" semantics (the same
// replace-not-merge convention SetLineBreakpoints/SetFunctionBreakpoints
// apply to their own catalogs).
func (m *BreakpointManager) ClearDataBreakpoints() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[int]*DataBreakpoint)
}

// DataBreakpoints returns all currently installed watchpoints.
func (m *BreakpointManager) DataBreakpoints() []*DataBreakpoint {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*DataBreakpoint, 0, len(m.data))
	for _, bp := range m.data {
		out = append(out, bp)
	}
	return out
}

// RemoveByID removes the breakpoint with the given ID from whichever
// catalog holds it, walking catalogs in a fixed order: line, function,
// data (exception filters have no IDs). Returns true if something was
// removed.
func (m *BreakpointManager) RemoveByID(id int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for source, bps := range m.lines {
		for i, bp := range bps {
			if bp.ID == id {
				m.lines[source] = append(bps[:i], bps[i+1:]...)
				return true
			}
		}
	}
	for i, bp := range m.functions {
		if bp.ID == id {
			m.functions = append(m.functions[:i], m.functions[i+1:]...)
			return true
		}
	}
	if _, ok := m.data[id]; ok {
		delete(m.data, id)
		return true
	}
	return false
}

// UpdateDataPreviousValue stores the newly observed serialized value for a
// watchpoint, returning the previous one for change-detection comparison.
func (m *BreakpointManager) UpdateDataPreviousValue(id int, newValue string) (previous string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bp, found := m.data[id]
	if !found {
		return "", false
	}
	previous = bp.PreviousValue
	bp.PreviousValue = newValue
	return previous, true
}

// IncrementHitCount increments and returns the new hit count for a line
// breakpoint, used by the hit-condition filter (spec §4.3.5: "increment
// first, then evaluate").
func (b *LineBreakpoint) IncrementHitCount() int {
	b.hitCount++
	return b.hitCount
}

// HitCount returns the current hit count without incrementing.
func (b *LineBreakpoint) HitCount() int { return b.hitCount }
