// Package poisson generates Poisson disk distributions in arbitrary
// dimensions - point sets where no two points sit closer than a minimum
// radius while the space is filled about as densely as that allows.
// It implements Bridson's "Fast Poisson Disk Sampling" algorithm, plus a
// variable density variant where the minimum radius varies across the space
// according to a caller supplied field.
//
// Generation is lazy: Iter returns a run whose Next method produces one
// point at a time, so consumers can stop early or transform points without
// materializing the whole set. Generate collects everything into a slice.
//
//	points, err := poisson.New2D().
//		WithDimensions([]float64{5, 5}, 1.0).
//		WithSeed(42).
//		Generate()
//
// Seeded configurations reproduce the exact same sequence on every run;
// unseeded ones are different each time.
package poisson
