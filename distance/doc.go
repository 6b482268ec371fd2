// Package distance provides float64 vector distance calculations.
//
// All functions assume both vectors have the same length; enforcing that
// is the caller's responsibility. The clustering engine validates input
// dimensions once up front and then calls these kernels in tight loops.
//
// # Usage
//
//	d2 := distance.SquaredL2(a, b)
//	d := distance.L2(a, b)
package distance
