package config

import (
	"encoding/json"
	"os"
)

// Config holds runtime configuration for the annotation canvas. Fields may
// be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Viewport
	MinZoom        float64 `json:"min_zoom"`
	MaxZoom        float64 `json:"max_zoom"`
	ZoomDebounceMS int     `json:"zoom_debounce_ms"`

	// Working image size cap; larger sources are downscaled for display
	// and projected back to source resolution on export.
	MaxDisplayWidth  int `json:"max_display_width"`
	MaxDisplayHeight int `json:"max_display_height"`

	// Effect parameters
	BlurKernel     int     `json:"blur_kernel"`
	PixelateSize   int     `json:"pixelate_size"`
	HighlightAlpha float64 `json:"highlight_alpha"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:            false,
		MinZoom:          0.5,
		MaxZoom:          10.0,
		ZoomDebounceMS:   50,
		MaxDisplayWidth:  1400,
		MaxDisplayHeight: 900,
		BlurKernel:       25,
		PixelateSize:     10,
		HighlightAlpha:   0.4,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.MinZoom <= 0 {
		c.MinZoom = 0.5
	}
	if c.MaxZoom < c.MinZoom {
		c.MaxZoom = c.MinZoom
	}
	if c.ZoomDebounceMS < 0 {
		c.ZoomDebounceMS = 50
	}
	if c.MaxDisplayWidth <= 0 {
		c.MaxDisplayWidth = 1400
	}
	if c.MaxDisplayHeight <= 0 {
		c.MaxDisplayHeight = 900
	}
	if c.BlurKernel <= 0 || c.BlurKernel%2 == 0 {
		c.BlurKernel = 25
	}
	if c.PixelateSize <= 0 {
		c.PixelateSize = 10
	}
	if c.HighlightAlpha <= 0 || c.HighlightAlpha > 1 {
		c.HighlightAlpha = 0.4
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the
// file does not exist it returns DefaultConfig(). On JSON error it returns
// defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
