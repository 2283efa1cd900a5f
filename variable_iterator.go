package poisson

import (
	"math"
	"math/rand"

	"github.com/arbrog/fast-poisson/internal/grid"
)

// VariableIterator is a single in-progress generation run of a variable
// density distribution. Identical in shape to Iterator except that the
// exclusion radius is looked up per point & the rejection test runs both
// ways: a candidate is refused if it sits inside its own radius *or* inside
// a neighbour's.
type VariableIterator struct {
	dist *PoissonVariable
	rng  *rand.Rand

	// sample grid, keyed on the maximum radius so the 5^N neighbourhood
	// walk is guaranteed to see every sample within rMax of a candidate
	grid *grid.BucketGrid

	// radius field indexer, keyed on the minimum radius so even the
	// densest regions resolve their own local radius
	field *grid.Indexer

	// arena of accepted samples & each sample's squared local radius
	samples []float64
	radiiSq []float64

	active []int32

	candidate []float64
	cell      []int
	walk      []int
}

func newVariableIterator(dist *PoissonVariable) *VariableIterator {
	n := len(dist.dimensions)

	seed := newSeed()
	if dist.seed != nil {
		seed = *dist.seed
	}
	rng := rand.New(rand.NewSource(seed))

	gridIx := grid.NewIndexer(dist.dimensions, grid.CellSize(dist.maxRadius, n))
	fieldIx := grid.NewIndexer(dist.dimensions, grid.CellSize(dist.minRadius, n))

	it := &VariableIterator{
		dist:      dist,
		rng:       rng,
		grid:      grid.NewBucketGrid(gridIx),
		field:     fieldIx,
		candidate: make([]float64, n),
		cell:      make([]int, n),
		walk:      make([]int, n),
	}

	// seed the frontier with one uniformly random point; nothing exists
	// yet for it to collide with
	first := make([]float64, n)
	for i, d := range dist.dimensions {
		first[i] = rng.Float64() * d
	}
	r := it.localRadius(first)
	it.addSample(first, r*r)

	return it
}

// Next returns the next accepted point, or false once the frontier is
// exhausted. Keeps returning false after that.
func (it *VariableIterator) Next() (Point, bool) {
	for len(it.active) > 0 {
		i := it.rng.Intn(len(it.active))
		parent := it.sample(it.active[i])

		for s := 0; s < it.dist.numSamples; s++ {
			it.randomPointAround(parent)

			// bounds first: the field lookup is only defined for
			// points inside the box
			if !it.inSpace(it.candidate) {
				continue
			}

			r := it.localRadius(it.candidate)
			rSq := r * r

			if !it.inNeighbourhood(it.candidate, rSq) {
				it.addSample(it.candidate, rSq)

				out := make(Point, len(it.candidate))
				copy(out, it.candidate)
				return out, true
			}
		}

		it.active[i] = it.active[len(it.active)-1]
		it.active = it.active[:len(it.active)-1]
	}

	return nil, false
}

// localRadius looks up the exclusion radius at point from the field.
// Point must be inside the box.
func (it *VariableIterator) localRadius(point []float64) float64 {
	return it.dist.field[it.field.IndexOf(point, it.cell)]
}

func (it *VariableIterator) sample(id int32) []float64 {
	n := len(it.dist.dimensions)
	return it.samples[int(id)*n : (int(id)+1)*n]
}

func (it *VariableIterator) addSample(point []float64, rSq float64) {
	id := int32(len(it.radiiSq))
	it.samples = append(it.samples, point...)
	it.radiiSq = append(it.radiiSq, rSq)
	it.active = append(it.active, id)
	it.grid.Insert(it.grid.IndexOf(point, it.cell), id)
}

// randomPointAround fills the candidate buffer with a point between r & 2r
// away from parent, where r is the local radius at the parent's position.
func (it *VariableIterator) randomPointAround(parent []float64) {
	dist := it.localRadius(parent) * (1.0 + it.rng.Float64())

	mag := 0.0
	for i := range it.candidate {
		v := it.rng.NormFloat64()
		it.candidate[i] = v
		mag += v * v
	}

	translate := dist / math.Sqrt(mag)
	for i, p := range parent {
		it.candidate[i] = p + it.candidate[i]*translate
	}
}

func (it *VariableIterator) inSpace(point []float64) bool {
	for i, d := range it.dist.dimensions {
		if point[i] < 0 || point[i] >= d {
			return false
		}
	}
	return true
}

// inNeighbourhood returns if any accepted sample sits too close to point,
// judged by the candidate's own squared radius *and* each neighbour's -
// whichever is violated first. Cells here are buckets since a locally small
// radius can pack several samples into one rMax-sized cell.
func (it *VariableIterator) inNeighbourhood(point []float64, rSq float64) bool {
	it.grid.CellOf(point, it.cell)

	found := false
	it.grid.EachNeighbour(it.cell, it.walk, func(idx int) bool {
		for _, id := range it.grid.At(idx) {
			dSq := distSq(point, it.sample(id))
			if dSq < rSq || dSq < it.radiiSq[id] {
				found = true
				return false
			}
		}
		return true
	})

	return found
}
