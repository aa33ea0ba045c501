package tilemap

import "sort"

// Selection is a set of indices into the manager's tile list.
type Selection struct {
	set map[int]struct{}
}

func (s *Selection) init() {
	if s.set == nil {
		s.set = make(map[int]struct{})
	}
}

// Add inserts idx. It reports whether idx was newly added.
func (s *Selection) Add(idx int) bool {
	s.init()
	if _, ok := s.set[idx]; ok {
		return false
	}
	s.set[idx] = struct{}{}
	return true
}

// Remove deletes idx. It reports whether idx was present.
func (s *Selection) Remove(idx int) bool {
	if _, ok := s.set[idx]; !ok {
		return false
	}
	delete(s.set, idx)
	return true
}

// Toggle flips membership of idx and reports whether it is now selected.
func (s *Selection) Toggle(idx int) bool {
	if s.Remove(idx) {
		return false
	}
	s.Add(idx)
	return true
}

func (s *Selection) Has(idx int) bool {
	_, ok := s.set[idx]
	return ok
}

func (s *Selection) Len() int {
	return len(s.set)
}

func (s *Selection) Clear() {
	clear(s.set)
}

// Replace makes idx the only member.
func (s *Selection) Replace(idx int) {
	s.Clear()
	s.Add(idx)
}

// Indices returns the members in ascending order.
func (s *Selection) Indices() []int {
	out := make([]int, 0, len(s.set))
	for idx := range s.set {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Descending returns the members largest first, the order removals must use.
func (s *Selection) Descending() []int {
	out := s.Indices()
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// First returns the lowest selected index.
func (s *Selection) First() (int, bool) {
	if len(s.set) == 0 {
		return 0, false
	}
	first := -1
	for idx := range s.set {
		if first < 0 || idx < first {
			first = idx
		}
	}
	return first, true
}

// Remap drops removed indices and shifts the survivors down so they keep
// pointing at the same tiles after the removals. removed must be ascending.
func (s *Selection) Remap(removed []int) {
	if len(removed) == 0 || len(s.set) == 0 {
		return
	}
	next := make(map[int]struct{}, len(s.set))
	for idx := range s.set {
		pos := sort.SearchInts(removed, idx)
		if pos < len(removed) && removed[pos] == idx {
			continue
		}
		next[idx-pos] = struct{}{}
	}
	s.set = next
}
