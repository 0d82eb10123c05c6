package domain

import "sort"

// NameSet is an ordered collection of distinct object names.
// Order is discovery order for directory results and caller-defined for
// reference lists; comparisons never depend on it.
type NameSet struct {
	names []string
	index map[string]struct{}
}

// NewNameSet creates a NameSet from raw names, dropping empty strings and
// duplicates while preserving first-occurrence order.
func NewNameSet(names []string) NameSet {
	s := NameSet{
		names: make([]string, 0, len(names)),
		index: make(map[string]struct{}, len(names)),
	}
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := s.index[n]; ok {
			continue
		}
		s.index[n] = struct{}{}
		s.names = append(s.names, n)
	}
	return s
}

// Names returns the names in original order.
func (s NameSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Sorted returns the names in lexicographic byte order.
func (s NameSet) Sorted() []string {
	out := s.Names()
	sort.Strings(out)
	return out
}

// Len returns the number of distinct names.
func (s NameSet) Len() int { return len(s.names) }

// IsEmpty reports whether the set has no names.
func (s NameSet) IsEmpty() bool { return len(s.names) == 0 }

// Contains reports whether name is in the set (exact string equality).
func (s NameSet) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}
