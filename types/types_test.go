package types

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	{ // Test packed int for edge labeling
		en := NewEdgeKey([2]int{1, 0})
		assert.Equal(t, EdgeKey(1<<32), en)
		assert.Equal(t, [2]int{0, 1}, en.GetVertices(false))

		en = NewEdgeKey([2]int{0, 1})
		assert.Equal(t, EdgeKey(1<<32), en)
		assert.Equal(t, [2]int{0, 1}, en.GetVertices(false))

		en = NewEdgeKey([2]int{0, 10})
		assert.Equal(t, EdgeKey(10*(1<<32)), en)
		assert.Equal(t, [2]int{10, 0}, en.GetVertices(true))

		en = NewEdgeKey([2]int{100, 1})
		assert.Equal(t, EdgeKey(100*(1<<32)+1), en)
		assert.Equal(t, [2]int{1, 100}, en.GetVertices(false))

		// Test maximum/minimum indices
		en = NewEdgeKey([2]int{1<<32 - 1, 1<<32 - 1})
		assert.Equal(t, EdgeKey(1<<64-1), en)
		assert.Equal(t, [2]int{1<<32 - 1, 1<<32 - 1}, en.GetVertices(false))

		assert.Panics(t, func() { NewEdgeKey([2]int{-1, 2}) })
	}
	{ // Face keys ignore winding and starting vertex
		k1 := NewFaceKey([]int{4, 5, 1, 0})
		k2 := NewFaceKey([]int{0, 4, 5, 1})
		k3 := NewFaceKey([]int{1, 5, 4, 0})
		assert.Equal(t, FaceKey{0, 1, 4, 5}, k1)
		assert.Equal(t, k1, k2)
		assert.Equal(t, k1, k3)
		assert.Equal(t, 4, k1.NumVertices())

		tri := NewFaceKey([]int{7, 2, 3})
		assert.Equal(t, FaceKey{2, 3, 7, -1}, tri)
		assert.Equal(t, 3, tri.NumVertices())
		assert.NotEqual(t, tri, NewFaceKey([]int{2, 3, 7, 9}))

		assert.Panics(t, func() { NewFaceKey([]int{1, 2}) })
	}
	{ // Ordering
		keys := []FaceKey{
			NewFaceKey([]int{3, 2, 6, 7}),
			NewFaceKey([]int{0, 1, 5, 4}),
			NewFaceKey([]int{0, 3, 7, 4}),
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
		assert.Equal(t, FaceKey{0, 1, 4, 5}, keys[0])
		assert.Equal(t, FaceKey{0, 3, 4, 7}, keys[1])
		assert.Equal(t, FaceKey{2, 3, 6, 7}, keys[2])
		assert.False(t, keys[0].Less(keys[0]))
	}
}
