// Package dux computes per-child disk usage aggregates for a directory.
//
// For every immediate child of a queried directory it walks the child's
// subtree in parallel using fastwalk, summing either on-disk size in
// kibibytes or filesystem-entry counts, and renders the results as a
// sorted histogram report.
package dux
