// Package logging provides the small structured-logging interface
// pipeline.Runner writes progress and diagnostics through, modeled on the
// teacher's pkg/utils logger:
// a leveled Logger interface with WithField/WithFields for scoping, a
// stdlib log.Logger-backed default implementation, and a no-op sink for
// tests and library embedding.
package logging
