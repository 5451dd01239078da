package filter

import "sort"

// Set is an unordered collection of facet values.
type Set map[string]struct{}

func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s Set) Len() int { return len(s) }

// Add on a nil Set panics; use NewSet or Toggle on a State.
func (s Set) Add(v string) { s[v] = struct{}{} }

func (s Set) Remove(v string) { delete(s, v) }

// Toggle flips membership of v and reports whether v is now a member.
func (s Set) Toggle(v string) bool {
	if s.Has(v) {
		delete(s, v)
		return false
	}
	s[v] = struct{}{}
	return true
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (s Set) Clone() Set {
	out := make(Set, len(s))
	for v := range s {
		out[v] = struct{}{}
	}
	return out
}

func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for v := range s {
		if !o.Has(v) {
			return false
		}
	}
	return true
}
