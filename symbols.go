package mathsinterp

import "math"

// SymbolType tags how a binding was produced.
type SymbolType int

const (
	// SymbolNumber is a binding to a literal value.
	SymbolNumber SymbolType = iota
	// SymbolExpression is a binding to the value of a computed expression.
	SymbolExpression
	// SymbolUndefined marks a binding without a usable value (NaN or an infinity).
	SymbolUndefined
)

func (t SymbolType) String() string {
	switch t {
	case SymbolNumber:
		return "number"
	case SymbolExpression:
		return "expression"
	case SymbolUndefined:
		return "undefined"
	}
	return "unknown"
}

// MarshalText lets entries serialize with readable type names.
func (t SymbolType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Entry is one variable binding.
type Entry struct {
	Name   string     `json:"name"`
	Value  float64    `json:"value"`
	Type   SymbolType `json:"type"`
	Source string     `json:"source,omitempty"`
}

// Env resolves variable names during evaluation.
type Env interface {
	Get(name string) (float64, bool)
}

// SymbolTable is the session store of variable bindings. Listing order is insertion
// order. It is not safe for concurrent use.
type SymbolTable struct {
	entries []Entry
	index   map[string]int
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{index: map[string]int{}}
}

// Get returns the value bound to name. Undefined entries are reported as missing.
func (t *SymbolTable) Get(name string) (float64, bool) {
	e, ok := t.Lookup(name)
	if !ok || e.Type == SymbolUndefined {
		return 0, false
	}
	return e.Value, true
}

// Lookup returns the full entry for name, including undefined ones.
func (t *SymbolTable) Lookup(name string) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}
	i, ok := t.index[name]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Set binds name, overwriting any previous binding in place. Non-finite values are
// always stored as SymbolUndefined.
func (t *SymbolTable) Set(name string, value float64, typ SymbolType) {
	t.SetEntry(Entry{Name: name, Value: value, Type: typ})
}

// SetEntry is Set with an explicit source text.
func (t *SymbolTable) SetEntry(e Entry) {
	if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
		e.Type = SymbolUndefined
	}
	if t.index == nil {
		t.index = map[string]int{}
	}
	if i, ok := t.index[e.Name]; ok {
		t.entries[i] = e
		return
	}
	t.index[e.Name] = len(t.entries)
	t.entries = append(t.entries, e)
}

// List returns a copy of all entries in insertion order.
func (t *SymbolTable) List() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of bindings.
func (t *SymbolTable) Len() int { return len(t.entries) }

// Clear removes every binding.
func (t *SymbolTable) Clear() {
	t.entries = nil
	t.index = map[string]int{}
}

// Clone returns an independent copy of the table.
func (t *SymbolTable) Clone() *SymbolTable {
	c := NewSymbolTable()
	for _, e := range t.entries {
		c.SetEntry(e)
	}
	return c
}

// ============================================================
// Scopes
// ============================================================

// Constants are resolved after the caller's environment, so assignment shadows them.
var Constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// scope binds a single name over a parent environment without modifying it.
type scope struct {
	parent Env
	name   string
	value  float64
}

// With returns an environment in which name is bound to value and every other lookup
// falls through to parent.
func With(parent Env, name string, value float64) Env {
	return &scope{parent: parent, name: name, value: value}
}

func (s *scope) Get(name string) (float64, bool) {
	if name == s.name {
		return s.value, true
	}
	return lookup(s.parent, name)
}

func lookup(env Env, name string) (float64, bool) {
	if env != nil {
		if v, ok := env.Get(name); ok {
			return v, true
		}
	}
	v, ok := Constants[name]
	return v, ok
}
