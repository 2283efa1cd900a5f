package poisson

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidDimension implies a configured axis extent is zero or negative.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrInvalidRadius implies a radius is zero or negative, or that a
	// variable density radius range has min > max.
	ErrInvalidRadius = errors.New("invalid radius")

	// ErrInvalidSampleCount implies the candidate attempt count is zero or
	// negative. A zero count would quietly retire every frontier point
	// before it could spawn anything, so we refuse it up front.
	ErrInvalidSampleCount = errors.New("invalid sample count")

	// ErrRadiusFieldSize implies the supplied radius field does not match
	// the grid size implied by the dimensions & minimum radius.
	ErrRadiusFieldSize = errors.New("radius field size mismatch")
)
