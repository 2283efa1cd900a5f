package poisson

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// halfField builds a radius field over a 2D box where the left half (x below
// the midline) uses rMin & the right half rMax. Returns the field plus the
// cell counts per axis so tests can do their own lookups.
func halfField(dims []float64, rMin, rMax float64) ([]float64, int, int) {
	cellSize := rMin / math.Sqrt2
	nx := int(math.Ceil(dims[0] / cellSize))
	ny := int(math.Ceil(dims[1] / cellSize))

	field := make([]float64, nx*ny)
	for x := 0; x < nx; x++ {
		r := rMin
		if x >= nx/2 {
			r = rMax
		}
		for y := 0; y < ny; y++ {
			field[x*ny+y] = r
		}
	}
	return field, nx, ny
}

// fieldAt mirrors the engine's field lookup for test assertions.
func fieldAt(field []float64, p Point, rMin float64, ny int) float64 {
	cellSize := rMin / math.Sqrt2
	return field[int(p[0]/cellSize)*ny+int(p[1]/cellSize)]
}

func TestVariableGenerateSeeded(t *testing.T) {
	dims := []float64{10, 10}
	rMin, rMax := 0.5, 1.5
	field, _, ny := halfField(dims, rMin, rMax)

	p := NewVariable2D().
		WithDimensions(dims, rMin, rMax).
		WithRadiusField(field).
		WithSeed(42).
		WithSamples(30)

	points, err := p.Generate()
	require.NoError(t, err)
	require.NotEmpty(t, points)

	assertInBounds(t, points, dims)

	// bidirectional rule: a pair is legal if it clears the smaller of the
	// two local radii
	for i, a := range points {
		for _, b := range points[i+1:] {
			ra := fieldAt(field, a, rMin, ny)
			rb := fieldAt(field, b, rMin, ny)
			rSq := math.Min(ra*ra, rb*rb)
			require.GreaterOrEqual(t, distSq(a, b), rSq, "%v and %v too close", a, b)
		}
	}

	again, err := p.Generate()
	require.NoError(t, err)
	assert.Equal(t, points, again)
}

func TestVariableDensityBias(t *testing.T) {
	dims := []float64{10, 10}
	rMin, rMax := 0.5, 1.5
	field, _, _ := halfField(dims, rMin, rMax)

	points, err := NewVariable2D().
		WithDimensions(dims, rMin, rMax).
		WithRadiusField(field).
		WithSeed(7).
		Generate()
	require.NoError(t, err)
	require.NotEmpty(t, points)

	left, right := 0, 0
	for _, p := range points {
		if p[0] < dims[0]/2 {
			left++
		} else {
			right++
		}
	}

	// tighter radius packs measurably more points into the left half
	assert.Greater(t, left, 2*right, "left %d right %d", left, right)
}

func TestVariableUnseededRunsDiffer(t *testing.T) {
	dims := []float64{5, 5}
	field, _, _ := halfField(dims, 0.5, 1.0)
	p := NewVariable2D().WithDimensions(dims, 0.5, 1.0).WithRadiusField(field)

	a, err := p.Generate()
	require.NoError(t, err)
	b, err := p.Generate()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestVariableValidation(t *testing.T) {
	dims := []float64{5, 5}
	field, _, _ := halfField(dims, 0.5, 1.0)

	tests := []struct {
		name string
		p    *PoissonVariable
		want error
	}{
		{
			"MissingField",
			NewVariable2D().WithDimensions(dims, 0.5, 1.0),
			ErrRadiusFieldSize,
		},
		{
			"ShortField",
			NewVariable2D().WithDimensions(dims, 0.5, 1.0).WithRadiusField(field[:len(field)-1]),
			ErrRadiusFieldSize,
		},
		{
			"MinAboveMax",
			NewVariable2D().WithDimensions(dims, 1.0, 0.5).WithRadiusField(field),
			ErrInvalidRadius,
		},
		{
			"ZeroMin",
			NewVariable2D().WithDimensions(dims, 0, 1.0).WithRadiusField(field),
			ErrInvalidRadius,
		},
		{
			"ZeroDimension",
			NewVariable2D().WithDimensions([]float64{0, 5}, 0.5, 1.0).WithRadiusField(field),
			ErrInvalidDimension,
		},
		{
			"ZeroSamples",
			NewVariable2D().WithDimensions(dims, 0.5, 1.0).WithRadiusField(field).WithSamples(0),
			ErrInvalidSampleCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.p.Iter()
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestVariableFieldSize(t *testing.T) {
	dims := []float64{10, 10}
	_, nx, ny := halfField(dims, 0.5, 1.5)

	p := NewVariable2D().WithDimensions(dims, 0.5, 1.5)
	assert.Equal(t, nx*ny, p.FieldSize())
}

func TestMapDensity(t *testing.T) {
	got := MapDensity([]float64{0, 0.5, 1}, 1.0, 3.0)
	assert.Equal(t, []float64{1.0, 2.0, 3.0}, got)
}

func TestVariableRunUnaffectedByLaterSetters(t *testing.T) {
	dims := []float64{5, 5}
	field, _, _ := halfField(dims, 0.5, 1.0)
	p := NewVariable2D().WithDimensions(dims, 0.5, 1.0).WithRadiusField(field).WithSeed(13)

	want, err := p.Generate()
	require.NoError(t, err)

	it, err := p.Iter()
	require.NoError(t, err)

	p.WithSeed(77).WithSamples(3)

	got := []Point{}
	for pt, ok := it.Next(); ok; pt, ok = it.Next() {
		got = append(got, pt)
		require.Less(t, len(got), 100000, "run does not terminate")
	}
	assert.Equal(t, want, got)
}
