package configfile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/critrace/detector"
	"github.com/katalvlaran/critrace/pipeline"
	"github.com/spf13/viper"
)

func setDefaults(v *viper.Viper, defaults pipeline.Config) {
	v.SetDefault("critical_point_type", defaults.CriticalPointType.String())
	v.SetDefault("value_threshold", defaults.ValueThreshold)
	v.SetDefault("length_threshold", defaults.LengthThreshold)
	v.SetDefault("load_balancing", defaults.LoadBalancing)
	v.SetDefault("nthreads", defaults.NThreads)
	v.SetDefault("nblocks", defaults.NBlocks)
}

func unmarshal(v *viper.Viper) (pipeline.Config, error) {
	mode, err := detector.ParseMode(v.GetString("critical_point_type"))
	if err != nil {
		return pipeline.Config{}, fmt.Errorf("configfile: %w", err)
	}

	return pipeline.Config{
		CriticalPointType: mode,
		ValueThreshold:    v.GetFloat64("value_threshold"),
		LengthThreshold:   v.GetInt("length_threshold"),
		LoadBalancing:     v.GetBool("load_balancing"),
		NThreads:          v.GetInt("nthreads"),
		NBlocks:           v.GetInt("nblocks"),
	}, nil
}

// Load reads a YAML pipeline.Config from path, seeding pipeline.DefaultConfig
// values first so a file only needs to specify the options it overrides. A
// missing file at path is not an error: defaults are returned unchanged,
// mirroring junjiewwang-perf-analysis/pkg/config.Load's
// "config file not found, use defaults" behavior.
func Load(path string) (pipeline.Config, error) {
	v := viper.New()
	defaults := pipeline.DefaultConfig()
	setDefaults(v, defaults)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}

		return pipeline.Config{}, fmt.Errorf("configfile: read %s: %w", path, err)
	}

	return unmarshal(v)
}

// LoadReader reads a YAML pipeline.Config from r, seeding defaults the same
// way Load does.
func LoadReader(r io.Reader) (pipeline.Config, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return pipeline.Config{}, fmt.Errorf("configfile: read: %w", err)
	}

	v := viper.New()
	defaults := pipeline.DefaultConfig()
	setDefaults(v, defaults)

	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return pipeline.Config{}, fmt.Errorf("configfile: parse: %w", err)
	}

	return unmarshal(v)
}
