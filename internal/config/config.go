// Package config loads the geometric and CLI defaults erdc runs with,
// layering built-in defaults, a project config file, and ERDC_-prefixed
// environment variables in that order of increasing precedence.
// Command-line flags are not read here; the build command applies its
// own flags on top of the loaded Config.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/erdlang/erdc/compiler/metrics"
)

// Config is the fully resolved set of defaults for a build invocation.
type Config struct {
	Render  RenderConfig `mapstructure:"render"`
	Build   BuildConfig  `mapstructure:"build"`
	Verbose bool         `mapstructure:"verbose"`
}

// RenderConfig mirrors metrics.RenderConfig with mapstructure tags so
// it can be loaded from YAML or environment variables.
type RenderConfig struct {
	CharWidth      float64 `mapstructure:"char_width"`
	LineHeight     float64 `mapstructure:"line_height"`
	Padding        float64 `mapstructure:"padding"`
	HeaderHeight   float64 `mapstructure:"header_height"`
	GapX           float64 `mapstructure:"gap_x"`
	GapY           float64 `mapstructure:"gap_y"`
	ParallelStride float64 `mapstructure:"parallel_stride"`
	LoopRadius     float64 `mapstructure:"loop_radius"`
	LoopStep       float64 `mapstructure:"loop_step"`
	MarkerOffset   float64 `mapstructure:"marker_offset"`
}

// BuildConfig holds the build command's own defaults.
type BuildConfig struct {
	Output string `mapstructure:"output"`
	Detail string `mapstructure:"detail"`
}

// ToRenderConfig converts the loaded RenderConfig into the type the
// compiler pipeline actually consumes.
func (r RenderConfig) ToRenderConfig() metrics.RenderConfig {
	return metrics.RenderConfig{
		CharWidth:      r.CharWidth,
		LineHeight:     r.LineHeight,
		Padding:        r.Padding,
		HeaderHeight:   r.HeaderHeight,
		GapX:           r.GapX,
		GapY:           r.GapY,
		ParallelStride: r.ParallelStride,
		LoopRadius:     r.LoopRadius,
		LoopStep:       r.LoopStep,
		MarkerOffset:   r.MarkerOffset,
	}
}

// Load reads .erdc.yaml (or .erdc.yml) from the current directory,
// falling back to documented defaults for anything the file and
// environment leave unset. A missing config file is not an error.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom behaves like Load but reads the config file at the given
// path instead of searching the current directory. An empty path
// behaves exactly like Load.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()

	d := metrics.DefaultRenderConfig()
	v.SetDefault("render.char_width", d.CharWidth)
	v.SetDefault("render.line_height", d.LineHeight)
	v.SetDefault("render.padding", d.Padding)
	v.SetDefault("render.header_height", d.HeaderHeight)
	v.SetDefault("render.gap_x", d.GapX)
	v.SetDefault("render.gap_y", d.GapY)
	v.SetDefault("render.parallel_stride", d.ParallelStride)
	v.SetDefault("render.loop_radius", d.LoopRadius)
	v.SetDefault("render.loop_step", d.LoopStep)
	v.SetDefault("render.marker_offset", d.MarkerOffset)
	v.SetDefault("build.output", "")
	v.SetDefault("build.detail", "all")
	v.SetDefault("verbose", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".erdc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("ERDC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Build.Detail {
	case "all", "pk_fk", "pk", "tables":
	default:
		return fmt.Errorf("build.detail must be one of all, pk_fk, pk, tables, got: %s", cfg.Build.Detail)
	}
	r := cfg.Render
	if r.CharWidth <= 0 || r.LineHeight <= 0 || r.Padding < 0 || r.HeaderHeight <= 0 {
		return fmt.Errorf("render geometry constants must be positive")
	}
	return nil
}
