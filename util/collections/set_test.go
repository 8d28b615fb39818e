package collections

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAddRemoveContains(t *testing.T) {
	set := NewSet(1, 2)
	set.Add(3)
	set.Remove(1)
	set.Remove(42)

	assert.False(t, set.Contains(1))
	assert.True(t, set.Contains(2))
	assert.True(t, set.Contains(3))
	assert.Len(t, set, 2)
}

func TestSetDifference(t *testing.T) {
	difference := NewSet(1, 2, 3).Difference(NewSet(2, 4))
	assert.Equal(t, NewSet(1, 3), difference)
}

func TestSetIntersectionEx(t *testing.T) {
	intersection, isSubset := NewSet(1, 2).IntersectionEx(NewSet(1, 2, 3))
	assert.Equal(t, NewSet(1, 2), intersection)
	assert.True(t, isSubset)

	intersection, isSubset = NewSet(1, 5).IntersectionEx(NewSet(1, 2, 3))
	assert.Equal(t, NewSet(1), intersection)
	assert.False(t, isSubset)

	assert.Empty(t, NewSet(7).Intersection(NewSet(8)))
}

func TestSetEqual(t *testing.T) {
	assert.True(t, NewSet("a", "b").Equal(NewSet("b", "a")))
	assert.False(t, NewSet("a").Equal(NewSet("a", "b")))
	assert.False(t, NewSet("a", "c").Equal(NewSet("a", "b")))
}
