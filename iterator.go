package poisson

import (
	"math"
	"math/rand"
	"time"

	"github.com/arbrog/fast-poisson/internal/grid"
)

// newSeed returns a seed for runs that were not given one explicitly.
func newSeed() int64 {
	return time.Now().UnixNano()
}

// Iterator is a single in-progress generation run of a fixed radius
// distribution. Pull points with Next; the run owns all of its state & does
// no work between calls.
type Iterator struct {
	dist *Poisson
	rng  *rand.Rand

	grid *grid.Grid

	// flat arena of accepted samples, one block of N coords per sample;
	// the grid & frontier refer to samples by id (block number)
	samples []float64

	// ids of accepted samples still eligible to spawn candidates
	active []int32

	radiusSq float64

	// scratch buffers reused across calls
	candidate []float64
	cell      []int
	walk      []int
}

func newIterator(dist *Poisson) *Iterator {
	n := len(dist.dimensions)

	seed := newSeed()
	if dist.seed != nil {
		seed = *dist.seed
	}
	rng := rand.New(rand.NewSource(seed))

	ix := grid.NewIndexer(dist.dimensions, grid.CellSize(dist.radius, n))

	it := &Iterator{
		dist:      dist,
		rng:       rng,
		grid:      grid.NewGrid(ix),
		radiusSq:  dist.radius * dist.radius,
		candidate: make([]float64, n),
		cell:      make([]int, n),
		walk:      make([]int, n),
	}

	// seed the frontier with one uniformly random point in the box; an
	// empty box has nothing to collide with so it skips the acceptance test
	first := make([]float64, n)
	for i, d := range dist.dimensions {
		first[i] = rng.Float64() * d
	}
	it.addSample(first)

	return it
}

// Next returns the next accepted point, or false once the frontier is
// exhausted. Keeps returning false after that, so over-pulling is harmless.
func (it *Iterator) Next() (Point, bool) {
	for len(it.active) > 0 {
		i := it.rng.Intn(len(it.active))
		parent := it.sample(it.active[i])

		for s := 0; s < it.dist.numSamples; s++ {
			it.randomPointAround(parent)

			// a keeper must lie inside the box & at least one radius
			// from every sample accepted so far
			if it.inSpace(it.candidate) && !it.inNeighbourhood(it.candidate) {
				it.addSample(it.candidate)

				out := make(Point, len(it.candidate))
				copy(out, it.candidate)
				return out, true
			}
		}

		// parent spawned nothing in numSamples tries, retire it.
		// swap-with-last keeps removal O(1)
		it.active[i] = it.active[len(it.active)-1]
		it.active = it.active[:len(it.active)-1]
	}

	return nil, false
}

// sample returns the arena-backed coordinates of sample id.
func (it *Iterator) sample(id int32) []float64 {
	n := len(it.dist.dimensions)
	return it.samples[int(id)*n : (int(id)+1)*n]
}

// addSample copies point into the arena & registers it with the frontier &
// the grid.
func (it *Iterator) addSample(point []float64) {
	id := int32(len(it.samples) / len(it.dist.dimensions))
	it.samples = append(it.samples, point...)
	it.active = append(it.active, id)
	it.grid.Insert(it.grid.IndexOf(point, it.cell), id)
}

// randomPointAround fills the candidate buffer with a point between radius &
// 2*radius away from parent. Distance is uniform on [r, 2r); direction comes
// from normalizing N standard normal draws, which is uniformly distributed
// on the N-sphere without any rejection loop.
func (it *Iterator) randomPointAround(parent []float64) {
	dist := it.dist.radius * (1.0 + it.rng.Float64())

	mag := 0.0
	for i := range it.candidate {
		v := it.rng.NormFloat64()
		it.candidate[i] = v
		mag += v * v
	}

	// scaling the unit vector by dist & adding it onto parent in one pass
	translate := dist / math.Sqrt(mag)
	for i, p := range parent {
		it.candidate[i] = p + it.candidate[i]*translate
	}
}

// inSpace returns if the point lies within the box, ie. 0 <= p[i] < dims[i].
func (it *Iterator) inSpace(point []float64) bool {
	for i, d := range it.dist.dimensions {
		if point[i] < 0 || point[i] >= d {
			return false
		}
	}
	return true
}

// inNeighbourhood returns if any accepted sample sits within one radius of
// point. Cell size guarantees such a sample can only be in the 5^N block of
// cells around the point's own cell, so that's all we search.
func (it *Iterator) inNeighbourhood(point []float64) bool {
	it.grid.CellOf(point, it.cell)

	found := false
	it.grid.EachNeighbour(it.cell, it.walk, func(idx int) bool {
		id, ok := it.grid.At(idx)
		if !ok {
			return true
		}
		if distSq(point, it.sample(id)) < it.radiusSq {
			found = true
			return false
		}
		return true
	})

	return found
}
