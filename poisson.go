package poisson

import (
	"github.com/pkg/errors"
)

// Point is a single sample of a distribution; one coordinate per dimension,
// each in [0, extent) of its axis.
type Point = []float64

// Poisson describes a fixed radius Poisson disk distribution over an
// N dimensional box: the space is filled as densely as possible with points
// while no two points ever sit closer than the radius.
//
// Configure with the With* setters, then call Iter or Generate. Each call
// starts an independent run from a copy of the configuration, so setters
// never disturb a run already in progress.
type Poisson struct {
	dimensions []float64
	radius     float64
	seed       *int64
	numSamples int
}

// New returns a distribution over n dimensions with default settings:
// each axis spans [0, 1), the radius is 0.1, up to 30 candidates are tried
// around each point & output is non-deterministic until WithSeed is called.
func New(n int) *Poisson {
	dims := make([]float64, n)
	for i := range dims {
		dims[i] = 1.0
	}
	return &Poisson{dimensions: dims, radius: 0.1, numSamples: 30}
}

// New2D is sugar for New(2).
func New2D() *Poisson { return New(2) }

// New3D is sugar for New(3).
func New3D() *Poisson { return New(3) }

// New4D is sugar for New(4).
func New4D() *Poisson { return New(4) }

// WithDimensions sets the box to be filled & the radius around each point
// that must remain empty. Overrides any previously set values.
func (p *Poisson) WithDimensions(dims []float64, radius float64) *Poisson {
	p.dimensions = dims
	p.radius = radius
	return p
}

// WithSeed makes generation deterministic: two runs built from the same
// configuration & seed produce identical sequences. Without a seed each run
// is seeded from the clock.
func (p *Poisson) WithSeed(seed int64) *Poisson {
	p.seed = &seed
	return p
}

// WithSamples sets the maximum number of candidate points generated around
// each frontier point before it is retired. This is not the output size -
// higher values fill space a little better at the cost of generation time.
func (p *Poisson) WithSamples(k int) *Poisson {
	p.numSamples = k
	return p
}

// Iter validates the configuration & returns a fresh generation run.
// All configuration errors surface here; once a run exists nothing it does
// can fail.
func (p *Poisson) Iter() (*Iterator, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return newIterator(p.clone()), nil
}

// Generate runs a distribution to completion & collects the points.
// Callable repeatedly: seeded configurations yield identical sets each time,
// unseeded ones yield an independent set per call.
func (p *Poisson) Generate() ([]Point, error) {
	it, err := p.Iter()
	if err != nil {
		return nil, err
	}
	points := []Point{}
	for pt, ok := it.Next(); ok; pt, ok = it.Next() {
		points = append(points, pt)
	}
	return points, nil
}

// validate checks the caller contract before a run is built.
func (p *Poisson) validate() error {
	for i, d := range p.dimensions {
		if d <= 0 {
			return errors.Wrapf(ErrInvalidDimension, "axis %d has extent %v", i, d)
		}
	}
	if p.radius <= 0 {
		return errors.Wrapf(ErrInvalidRadius, "radius %v", p.radius)
	}
	if p.numSamples <= 0 {
		return errors.Wrapf(ErrInvalidSampleCount, "%d candidate attempts", p.numSamples)
	}
	return nil
}

// clone copies the configuration so a running iterator is unaffected by
// later setter calls.
func (p *Poisson) clone() *Poisson {
	c := *p
	c.dimensions = append([]float64(nil), p.dimensions...)
	if p.seed != nil {
		s := *p.seed
		c.seed = &s
	}
	return &c
}

// distSq returns the squared euclidean distance between a & b.
// Squared distances are compared throughout - skipping the root is both
// faster & avoids the precision loss of root-then-compare.
func distSq(a, b []float64) float64 {
	total := 0.0
	for i, av := range a {
		d := av - b[i]
		total += d * d
	}
	return total
}
