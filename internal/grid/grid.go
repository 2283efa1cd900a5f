package grid

import (
	"math"
)

// Indexer maps points in a continuous N dimensional box onto the cells of a
// uniform grid & flattens those cell coordinates into offsets of a single
// slice (row-major). The same mapping is used both for sample storage and
// for radius field lookups so the two always agree on which cell a point
// falls in (for a given cell size).
type Indexer struct {
	dims     []float64
	cellSize float64

	// cells along each axis, ie. ceil(dims[i] / cellSize)
	extents []int

	// product of extents
	size int
}

// CellSize returns the cell edge length for the given exclusion radius in
// n dimensions. Sized so that a cell's diagonal is exactly one radius,
// meaning a cell can hold at most one sample & any two samples within one
// radius of each other sit at most two cells apart on every axis.
func CellSize(radius float64, n int) float64 {
	return radius / math.Sqrt(float64(n))
}

// NewIndexer builds an Indexer over a box of the given per-axis extents.
func NewIndexer(dims []float64, cellSize float64) *Indexer {
	extents := make([]int, len(dims))
	size := 1
	for i, d := range dims {
		extents[i] = int(math.Ceil(d / cellSize))
		size *= extents[i]
	}
	return &Indexer{dims: dims, cellSize: cellSize, extents: extents, size: size}
}

// Size returns the number of cells in the (flattened) grid.
func (ix *Indexer) Size() int {
	return ix.size
}

// CellOf writes the grid coordinates of the cell containing point into cell.
// Points outside the box yield out-of-range coordinates - see InGrid.
func (ix *Indexer) CellOf(point []float64, cell []int) {
	for i, p := range point {
		cell[i] = int(p / ix.cellSize)
	}
}

// Flatten turns cell coordinates into an offset into a flat slice.
// Bijective for cells with 0 <= cell[i] < extents[i].
func (ix *Indexer) Flatten(cell []int) int {
	idx := 0
	for i, c := range cell {
		idx = idx*ix.extents[i] + c
	}
	return idx
}

// IndexOf is CellOf followed by Flatten, using scratch as the cell buffer.
func (ix *Indexer) IndexOf(point []float64, scratch []int) int {
	ix.CellOf(point, scratch)
	return ix.Flatten(scratch)
}

// InGrid returns whether the given cell lies within the grid bounds.
func (ix *Indexer) InGrid(cell []int) bool {
	for i, c := range cell {
		if c < 0 || c >= ix.extents[i] {
			return false
		}
	}
	return true
}

// EachNeighbour visits the flattened offset of every in-grid cell within two
// cells of cell on every axis - a 5^N block counted off in mixed-radix base
// 5, one digit per axis. Cells falling outside the grid are skipped, not
// visited. Returning false from fn stops the walk early.
func (ix *Indexer) EachNeighbour(cell, scratch []int, fn func(idx int) bool) {
	for carry := 0; ; carry++ {
		c := carry
		for i := range scratch {
			scratch[i] = cell[i] + c%5 - 2
			c /= 5
		}
		if c > 0 {
			// counter overflowed N digits, every neighbour has been visited
			return
		}
		if !ix.InGrid(scratch) {
			continue
		}
		if !fn(ix.Flatten(scratch)) {
			return
		}
	}
}

// Grid stores at most one sample id per cell. Samples themselves live in an
// arena owned by the caller; we only hold int32 ids. A second insert into an
// occupied cell is ignored - with cells sized via CellSize two accepted
// samples can never share a cell anyway.
type Grid struct {
	*Indexer
	slots []int32
}

// NewGrid returns an empty single-occupancy grid over the given Indexer.
func NewGrid(ix *Indexer) *Grid {
	slots := make([]int32, ix.Size())
	for i := range slots {
		slots[i] = -1
	}
	return &Grid{Indexer: ix, slots: slots}
}

// Insert places sample id into the cell at offset idx (first writer wins).
func (g *Grid) Insert(idx int, id int32) {
	if g.slots[idx] >= 0 {
		return
	}
	g.slots[idx] = id
}

// At returns the sample id occupying the cell at offset idx, if any.
func (g *Grid) At(idx int) (int32, bool) {
	id := g.slots[idx]
	return id, id >= 0
}

// BucketGrid stores any number of sample ids per cell. Used for variable
// density distributions where a locally small radius can pack several
// samples into one cell of the (max radius sized) grid.
type BucketGrid struct {
	*Indexer
	buckets [][]int32
}

// NewBucketGrid returns an empty bucket grid over the given Indexer.
func NewBucketGrid(ix *Indexer) *BucketGrid {
	return &BucketGrid{Indexer: ix, buckets: make([][]int32, ix.Size())}
}

// Insert appends sample id to the cell at offset idx.
func (g *BucketGrid) Insert(idx int, id int32) {
	g.buckets[idx] = append(g.buckets[idx], id)
}

// At returns the sample ids occupying the cell at offset idx.
func (g *BucketGrid) At(idx int) []int32 {
	return g.buckets[idx]
}
