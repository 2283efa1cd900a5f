package grid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellSize(t *testing.T) {
	assert.InDelta(t, 1.0/math.Sqrt2, CellSize(1.0, 2), 1e-12)
	assert.InDelta(t, 0.75/math.Sqrt(3), CellSize(0.75, 3), 1e-12)
}

func TestIndexerExtents(t *testing.T) {
	ix := NewIndexer([]float64{5, 3.2}, 0.5)

	// ceil(5/0.5) * ceil(3.2/0.5) = 10 * 7
	assert.Equal(t, 70, ix.Size())
}

func TestFlattenBijective(t *testing.T) {
	ix := NewIndexer([]float64{5, 3.2}, 0.5)

	seen := map[int]bool{}
	cell := make([]int, 2)
	for x := 0; x < 10; x++ {
		for y := 0; y < 7; y++ {
			cell[0], cell[1] = x, y
			require.True(t, ix.InGrid(cell))

			idx := ix.Flatten(cell)
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, ix.Size())
			require.False(t, seen[idx], "cell (%d,%d) collides at %d", x, y, idx)
			seen[idx] = true
		}
	}
	assert.Len(t, seen, ix.Size())
}

func TestCellOf(t *testing.T) {
	ix := NewIndexer([]float64{5, 3.2}, 0.5)

	cell := make([]int, 2)
	ix.CellOf([]float64{0, 0}, cell)
	assert.Equal(t, []int{0, 0}, cell)

	ix.CellOf([]float64{4.9, 3.1}, cell)
	assert.Equal(t, []int{9, 6}, cell)
}

func TestInGrid(t *testing.T) {
	ix := NewIndexer([]float64{5, 3.2}, 0.5)

	assert.True(t, ix.InGrid([]int{0, 0}))
	assert.True(t, ix.InGrid([]int{9, 6}))
	assert.False(t, ix.InGrid([]int{-1, 0}))
	assert.False(t, ix.InGrid([]int{10, 0}))
	assert.False(t, ix.InGrid([]int{0, 7}))
}

func TestEachNeighbour(t *testing.T) {
	ix := NewIndexer([]float64{10, 10}, 1.0)
	scratch := make([]int, 2)

	t.Run("Interior", func(t *testing.T) {
		// a cell well inside the grid sees the full 5x5 block
		seen := map[int]bool{}
		ix.EachNeighbour([]int{5, 5}, scratch, func(idx int) bool {
			seen[idx] = true
			return true
		})
		assert.Len(t, seen, 25)
	})

	t.Run("Corner", func(t *testing.T) {
		// out-of-grid cells are skipped, leaving the 3x3 in-grid corner
		count := 0
		ix.EachNeighbour([]int{0, 0}, scratch, func(idx int) bool {
			count++
			return true
		})
		assert.Equal(t, 9, count)
	})

	t.Run("StopEarly", func(t *testing.T) {
		count := 0
		ix.EachNeighbour([]int{5, 5}, scratch, func(idx int) bool {
			count++
			return false
		})
		assert.Equal(t, 1, count)
	})
}

func TestGridFirstWriterWins(t *testing.T) {
	ix := NewIndexer([]float64{2, 2}, 1.0)
	g := NewGrid(ix)

	_, ok := g.At(0)
	require.False(t, ok)

	g.Insert(0, 3)
	g.Insert(0, 9)

	id, ok := g.At(0)
	require.True(t, ok)
	assert.Equal(t, int32(3), id)
}

func TestBucketGrid(t *testing.T) {
	ix := NewIndexer([]float64{2, 2}, 1.0)
	g := NewBucketGrid(ix)

	assert.Empty(t, g.At(0))

	g.Insert(0, 3)
	g.Insert(0, 9)

	assert.Equal(t, []int32{3, 9}, g.At(0))
}
