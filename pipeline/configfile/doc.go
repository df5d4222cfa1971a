// Package configfile loads a pipeline.Config from a YAML file using
// github.com/spf13/viper, mirroring the teacher pack's
// junjiewwang-perf-analysis/pkg/config loader: defaults are seeded first
// via v.SetDefault, then overridden by whatever the file supplies;
// environment variables are not consulted. This stays outside the hot path — the
// pipeline itself only ever consumes a pipeline.Config value.
package configfile
