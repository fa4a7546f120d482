// Package config loads the integrator, camera, and driver tunables for a
// render from a YAML file, so a render is described by a checked-in
// render.yaml rather than a pile of flags.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the complete set of driver-supplied tunables for one render:
// image size, sampling, path-tracer limits, camera placement, and output.
type Config struct {
	Scene  string `yaml:"scene"`
	Output string `yaml:"output"`

	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	SqrtSPP int `yaml:"sqrt_spp"`
	Workers int `yaml:"workers"`

	MaxSegments               int     `yaml:"max_segments"`
	MinHit                    float64 `yaml:"min_hit"`
	RussianRouletteMinSegment int     `yaml:"russian_roulette_min_segment"`
	RussianRouletteMaxQ       float64 `yaml:"russian_roulette_max_q"`

	VFov          float64 `yaml:"vfov"`
	Aspect        float64 `yaml:"aspect"`
	Aperture      float64 `yaml:"aperture"`
	FocusDistance float64 `yaml:"focus_distance"`
	TimeStart     float64 `yaml:"time_start"`
	TimeEnd       float64 `yaml:"time_end"`
}

// Default returns the standard tunables: 128 max segments, 1e-4 min hit,
// Russian roulette from segment 5 capped at 0.95.
func Default() Config {
	return Config{
		Scene:                     "furnace",
		Output:                    "render.png",
		Width:                     400,
		Height:                    400,
		SqrtSPP:                   4,
		MaxSegments:               128,
		MinHit:                    1e-4,
		RussianRouletteMinSegment: 5,
		RussianRouletteMaxQ:       0.95,
		VFov:                      40,
		Aspect:                    1,
	}
}

// Load reads and parses a YAML config file, filling any field the file
// omits from Default.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Config{}, fmt.Errorf("config: width and height must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.SqrtSPP <= 0 {
		return Config{}, fmt.Errorf("config: sqrt_spp must be positive, got %d", cfg.SqrtSPP)
	}
	return cfg, nil
}
