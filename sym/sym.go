// Package sym provides process-wide interned symbols. A Symbol is a named
// constant compared by identity, not by string content: two symbols are
// equal iff they were interned under the same name in the same process.
//
// Interning is split into two operations on purpose. Intern registers a
// symbol and is meant for declaration sites (schema construction, record
// definitions). Lookup only resolves names that some declaration already
// interned; it never creates. Decoders must use Lookup so that untrusted
// input can never grow the symbol table.
package sym

import "sync"

// Symbol is an interned constant. The zero value is invalid and names
// nothing.
type Symbol struct{ id uint32 }

var table = struct {
	mu    sync.RWMutex
	names []string
	index map[string]Symbol
}{
	// id 0 is reserved for the invalid zero Symbol.
	names: []string{""},
	index: map[string]Symbol{},
}

// Intern returns the symbol named name, creating it on first use.
func Intern(name string) Symbol {
	table.mu.RLock()
	s, ok := table.index[name]
	table.mu.RUnlock()
	if ok {
		return s
	}
	table.mu.Lock()
	defer table.mu.Unlock()
	if s, ok := table.index[name]; ok {
		return s
	}
	s = Symbol{id: uint32(len(table.names))}
	table.names = append(table.names, name)
	table.index[name] = s
	return s
}

// Lookup resolves name to an existing symbol. It reports false when no
// symbol with that name has been interned; it never creates one.
func Lookup(name string) (Symbol, bool) {
	table.mu.RLock()
	s, ok := table.index[name]
	table.mu.RUnlock()
	return s, ok
}

// Valid reports whether s names anything (the zero Symbol does not).
func (s Symbol) Valid() bool { return s.id != 0 }

// String returns the symbol's name, or "" for the zero Symbol.
func (s Symbol) String() string {
	if s.id == 0 {
		return ""
	}
	table.mu.RLock()
	defer table.mu.RUnlock()
	if int(s.id) >= len(table.names) {
		return ""
	}
	return table.names[s.id]
}
