package poisson

import (
	"math"

	"github.com/pkg/errors"

	"github.com/arbrog/fast-poisson/internal/grid"
)

// PoissonVariable describes a variable density Poisson disk distribution:
// the minimum separation between points varies across the box according to a
// caller supplied radius field, between a minimum & maximum radius.
//
// The field is a flat slice addressed with the same row-major cell indexing
// the engine itself uses, with cells sized from the *minimum* radius (see
// FieldSize). Each entry is the local exclusion radius at that cell,
// pre-scaled by the caller - the engine never re-normalizes. MapDensity
// converts a normalized [0,1] density field into such radii.
type PoissonVariable struct {
	dimensions []float64
	minRadius  float64
	maxRadius  float64
	seed       *int64
	numSamples int
	field      []float64
}

// NewVariable returns a variable density distribution over n dimensions
// with default settings: each axis spans [0, 1), radii span [0.05, 0.1] &
// up to 30 candidates are tried around each point. A radius field must be
// supplied via WithRadiusField before generation.
func NewVariable(n int) *PoissonVariable {
	dims := make([]float64, n)
	for i := range dims {
		dims[i] = 1.0
	}
	return &PoissonVariable{dimensions: dims, minRadius: 0.05, maxRadius: 0.1, numSamples: 30}
}

// NewVariable2D is sugar for NewVariable(2).
func NewVariable2D() *PoissonVariable { return NewVariable(2) }

// NewVariable3D is sugar for NewVariable(3).
func NewVariable3D() *PoissonVariable { return NewVariable(3) }

// WithDimensions sets the box to be filled & the radius range; rMin is the
// tightest spacing the field may ask for, rMax the loosest.
func (p *PoissonVariable) WithDimensions(dims []float64, rMin, rMax float64) *PoissonVariable {
	p.dimensions = dims
	p.minRadius = rMin
	p.maxRadius = rMax
	return p
}

// WithRadiusField sets the local exclusion radii, one per field cell (see
// FieldSize for the expected length). Values are used as-is; they are
// expected to lie within the configured radius range.
func (p *PoissonVariable) WithRadiusField(field []float64) *PoissonVariable {
	p.field = field
	return p
}

// WithSeed makes generation deterministic, as for the fixed variant.
func (p *PoissonVariable) WithSeed(seed int64) *PoissonVariable {
	p.seed = &seed
	return p
}

// WithSamples sets the maximum candidate attempts per frontier point.
func (p *PoissonVariable) WithSamples(k int) *PoissonVariable {
	p.numSamples = k
	return p
}

// FieldSize returns the radius field length implied by the current
// dimensions & minimum radius. The field grid is kept at minimum radius
// resolution so even the densest regions resolve their own radius.
func (p *PoissonVariable) FieldSize() int {
	size := 1
	cellSize := grid.CellSize(p.minRadius, len(p.dimensions))
	for _, d := range p.dimensions {
		size *= int(math.Ceil(d / cellSize))
	}
	return size
}

// Iter validates the configuration & returns a fresh generation run.
func (p *PoissonVariable) Iter() (*VariableIterator, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return newVariableIterator(p.clone()), nil
}

// Generate runs a distribution to completion & collects the points.
func (p *PoissonVariable) Generate() ([]Point, error) {
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

func (p *PoissonVariable) validate() error {
	for i, d := range p.dimensions {
		if d <= 0 {
			return errors.Wrapf(ErrInvalidDimension, "axis %d has extent %v", i, d)
		}
	}
	if p.minRadius <= 0 || p.minRadius > p.maxRadius {
		return errors.Wrapf(ErrInvalidRadius, "radius range [%v, %v]", p.minRadius, p.maxRadius)
	}
	if p.numSamples <= 0 {
		return errors.Wrapf(ErrInvalidSampleCount, "%d candidate attempts", p.numSamples)
	}
	if want := p.FieldSize(); len(p.field) != want {
		return errors.Wrapf(ErrRadiusFieldSize, "have %d values, want %d", len(p.field), want)
	}
	return nil
}

func (p *PoissonVariable) clone() *PoissonVariable {
	c := *p
	c.dimensions = append([]float64(nil), p.dimensions...)
	c.field = append([]float64(nil), p.field...)
	if p.seed != nil {
		s := *p.seed
		c.seed = &s
	}
	return &c
}

// MapDensity affine-maps a normalized [0,1] density field into local
// exclusion radii: 0 maps to rMin (densest), 1 to rMax (sparsest).
// Sugar for preparing WithRadiusField input from noise functions & the like.
func MapDensity(density []float64, rMin, rMax float64) []float64 {
	out := make([]float64, len(density))
	for i, v := range density {
		out[i] = v*(rMax-rMin) + rMin
	}
	return out
}
