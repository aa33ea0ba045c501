package tilemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionBasics(t *testing.T) {
	var s Selection
	assert.Equal(t, 0, s.Len())
	_, ok := s.First()
	assert.False(t, ok)

	assert.True(t, s.Add(4))
	assert.False(t, s.Add(4), "indices are unique")
	s.Add(1)
	s.Add(9)
	assert.Equal(t, []int{1, 4, 9}, s.Indices())
	assert.Equal(t, []int{9, 4, 1}, s.Descending())
	first, ok := s.First()
	assert.True(t, ok)
	assert.Equal(t, 1, first)

	assert.False(t, s.Toggle(4))
	assert.True(t, s.Toggle(5))
	assert.Equal(t, []int{1, 5, 9}, s.Indices())

	s.Replace(2)
	assert.Equal(t, []int{2}, s.Indices())
	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestSelectionRemap(t *testing.T) {
	cases := []struct {
		name     string
		selected []int
		removed  []int
		want     []int
	}{
		{"nothing removed", []int{1, 3}, nil, []int{1, 3}},
		{"below shifts down", []int{2, 5}, []int{0}, []int{1, 4}},
		{"removed member dropped", []int{2, 5}, []int{2}, []int{4}},
		{"above untouched", []int{0, 1}, []int{4, 6}, []int{0, 1}},
		{"mixed", []int{0, 3, 6, 8}, []int{1, 3, 7}, []int{0, 4, 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var s Selection
			for _, idx := range tc.selected {
				s.Add(idx)
			}
			s.Remap(tc.removed)
			assert.Equal(t, tc.want, s.Indices())
		})
	}
}
