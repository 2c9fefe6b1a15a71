// Package layout implements float geometry and a small measure/arrange engine
// for the ace node tree.
//
// It supports stack, row and column containers with padding, gap, fixed,
// percentage and auto dimensions, and min/max constraints. Types are
// re-exported through the root ace package for public consumption.
//
// The main entry point is [Calculate], which takes a [Layoutable] tree and
// writes a parent-relative frame for each node.
package layout
