// Package trajfile implements the collective ordered trajectory file
// format from spec.md §6: a sequence of records
// [float32 n][float32 x (n*(d+1))], each record one Trajectory, each
// sample packing its d-dimensional coordinate followed by its scalar
// value. Write and Read round-trip a []trajectory.Trajectory byte-for-byte,
// satisfying the Round-trip testable property in spec.md §8.
package trajfile
