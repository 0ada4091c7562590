// Package tables implements the table-extraction collaborator: heuristic
// detection of tabular regions in a page's layout-preserving text.
//
// Two flavors are tried in order. The aligned flavor splits rows on runs of
// two or more spaces, which catches whitespace-aligned tables as produced
// by most text extractors. When it finds nothing, the delimited flavor is
// tried, splitting on tab and pipe characters. A run of consecutive rows
// with a consistent column count forms a grid.
//
// Detection never fails on pages without tables; it simply returns no
// grids.
package tables
