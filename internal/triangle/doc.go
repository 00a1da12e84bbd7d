// Package triangle implements the numeric triangle container, the generic
// bottom-up fold engine, and the path-sum evaluators built on top of it.
//
// A triangle stores rows of int64 values where row i holds exactly i+1
// elements. Every path computation (maximum path, parity-constrained
// maximum, and the auxiliary statistics) is expressed as a parameterization
// of the single Fold function rather than as bespoke traversal code, so the
// fold is the only place that knows how a triangle collapses.
package triangle
