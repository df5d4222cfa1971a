// Package balance repartitions detected features across ranks with a
// recursive k-d split: at each level the longest axis is cut at a
// weighted median (spec.md §4.5's "128-256 bin histogram" default,
// approximated here by binning the axis values into up to 128 buckets
// with gonum.org/v1/gonum/stat and taking the occupancy-weighted median
// of the bin midpoints), producing one Bounds per rank. Boundary points are
// resolved by the caller's forward Bounds.Contains scan, which gives the
// highest-indexed block priority on a shared split plane — the
// deterministic tie-break spec.md §9 leaves as an Open Question.
package balance
