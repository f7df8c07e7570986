// Package search is the query engine over an inventory snapshot: exact
// substring filtering, an approximate (typo-tolerant) search index, and
// the sort and grouping used to present results.
//
// Every function here is a pure function of its arguments. None of them
// mutate the input slices, and all of them return empty results for empty
// input rather than an error.
package search
