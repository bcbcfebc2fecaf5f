package analyzer

import "sort"

type symbolInfo struct {
	typ Type // declared type
	val Value
}

// SymbolTable maps variable names to their declared type and current
// value. Scope is global and flat: a name declared anywhere is visible
// everywhere analyzed afterwards, entries are never removed, and
// redeclaration silently overwrites. That overwrite is historical
// behavior, kept as-is and pinned by a test.
type SymbolTable struct {
	table map[string]*symbolInfo
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{table: make(map[string]*symbolInfo)}
}

func (s *SymbolTable) define(name string, typ Type, val Value) {
	s.table[name] = &symbolInfo{typ: typ, val: val}
}

func (s *SymbolTable) get(name string) (*symbolInfo, bool) {
	info, found := s.table[name]
	return info, found
}

// Lookup returns the declared type and current value of name.
func (s *SymbolTable) Lookup(name string) (Type, Value, bool) {
	info, found := s.table[name]
	if !found {
		return 0, Value{}, false
	}
	return info.typ, info.val, true
}

// Names returns all declared names in lexical order.
func (s *SymbolTable) Names() []string {
	names := make([]string, 0, len(s.table))
	for name := range s.table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
