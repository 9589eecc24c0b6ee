// Package matrix stores compatibility scores between the states of two protocol graphs.
//
// A Matrix is a dense, row-major table of float64 values with named axes:
// rows are the states of the second graph and columns the states of the first.
// That orientation is load-bearing, so callers that know which graph a name comes
// from should read through Pair, which resolves the orientation internally.
// Lookup is the side-agnostic accessor (row-major first, transposed fallback).
//
// All errors are package sentinels prefixed with "matrix:" and are meant to be
// matched with errors.Is.
package matrix
