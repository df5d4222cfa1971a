// Package dump implements the two optional debugging outputs spec.md §6
// describes: a line-oriented connected-set text dump (one component per
// line, rank-ordered space-separated canonical simplex ids) and a
// structured YAML dump of the intersections map, field-by-field. Neither
// is ever on the hot path; both exist purely for diagnostics.
package dump
