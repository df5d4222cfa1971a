package pipeline

import "github.com/katalvlaran/critrace/detector"

// Config holds the tunables spec.md §6 lists for a pipeline run.
type Config struct {
	CriticalPointType detector.Mode
	ValueThreshold    float64
	LengthThreshold   int
	LoadBalancing     bool
	NThreads          int
	NBlocks           int
}

// Option mutates a Config; see WithCriticalPointType and friends.
type Option func(*Config)

// DefaultConfig mirrors prim_kruskal.DefaultOptions's shape: a
// reasonable baseline a caller can override with Options.
func DefaultConfig() Config {
	return Config{
		CriticalPointType: detector.ModeAll,
		ValueThreshold:    0,
		LengthThreshold:   2,
		LoadBalancing:     false,
		NThreads:          4,
		NBlocks:           1,
	}
}

// WithCriticalPointType sets which classification mode Detect uses.
func WithCriticalPointType(mode detector.Mode) Option {
	return func(c *Config) { c.CriticalPointType = mode }
}

// WithValueThreshold sets the minimum peak field value a trajectory must
// reach to be kept.
func WithValueThreshold(v float64) Option {
	return func(c *Config) { c.ValueThreshold = v }
}

// WithLengthThreshold sets the minimum point count a trajectory must
// reach to be kept.
func WithLengthThreshold(n int) Option {
	return func(c *Config) { c.LengthThreshold = n }
}

// WithLoadBalancing enables balance.Rebalance's post-detection
// repartitioning before union-find convergence.
func WithLoadBalancing(enabled bool) Option {
	return func(c *Config) { c.LoadBalancing = enabled }
}

// WithNThreads sets detector.Detect's per-rank worker pool size.
func WithNThreads(n int) Option {
	return func(c *Config) { c.NThreads = n }
}

// WithNBlocks sets how many ranks the volume is partitioned across.
func WithNBlocks(n int) Option {
	return func(c *Config) { c.NBlocks = n }
}

// New applies opts over DefaultConfig.
func New(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
