// Package config loads demo settings from an optional YAML file layered over
// built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/toxichemicals/GO/holy-webgl/scene"
)

var ErrInvalid = errors.New("invalid config")

// Window sizes the desktop window. An empty Title leaves the demo's own
// title in place.
type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

// Camera is the eye position, look-at point and up vector in world units.
type Camera struct {
	Eye    [3]float32 `yaml:"eye"`
	Center [3]float32 `yaml:"center"`
	Up     [3]float32 `yaml:"up"`
}

// Lens is the perspective frustum; the field of view is vertical.
type Lens struct {
	FovDeg float32 `yaml:"fov_deg"`
	Near   float32 `yaml:"near"`
	Far    float32 `yaml:"far"`
}

// Spin sets how long one primary revolution takes and how fast the
// secondary rotation runs relative to it.
type Spin struct {
	PeriodSeconds  float64 `yaml:"period_seconds"`
	SecondaryRatio float64 `yaml:"secondary_ratio"`
}

// Shaders controls program building.
type Shaders struct {
	// Validate runs the advisory program validation pass.
	Validate bool `yaml:"validate"`
	// Strict turns shader build failures into a fatal startup error instead
	// of logging them and drawing with whatever program resulted.
	Strict bool `yaml:"strict"`
}

// Log selects the level: debug, info, warn or error.
type Log struct {
	Level string `yaml:"level"`
}

// Config is every setting a demo reads at startup.
type Config struct {
	Window     Window     `yaml:"window"`
	Camera     Camera     `yaml:"camera"`
	Lens       Lens       `yaml:"lens"`
	Spin       Spin       `yaml:"spin"`
	Background [4]float32 `yaml:"background"`
	Shaders    Shaders    `yaml:"shaders"`
	Log        Log        `yaml:"log"`
}

// Default matches the values the tutorials were written with.
func Default() Config {
	cam := scene.DefaultCamera()
	lens := scene.DefaultLens()
	spin := scene.DefaultSpin()
	return Config{
		Window: Window{Width: 800, Height: 600, VSync: true},
		Camera: Camera{Eye: cam.Eye, Center: cam.Center, Up: cam.Up},
		Lens:   Lens{FovDeg: lens.FovY, Near: lens.Near, Far: lens.Far},
		Spin: Spin{
			PeriodSeconds:  spin.Period.Seconds(),
			SecondaryRatio: spin.SecondaryRatio,
		},
		Background: [4]float32{0.75, 0.85, 0.8, 1.0},
		Shaders:    Shaders{Validate: true},
		Log:        Log{Level: "info"},
	}
}

// Load reads path over Default and validates the result. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays YAML data onto cfg and validates the result. Unknown keys
// are rejected.
func Decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config: %w", err)
	}
	return cfg.Validate()
}

// Validate reports the first setting that cannot produce a sensible frame.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Lens.FovDeg <= 0 || c.Lens.FovDeg >= 180:
		return fmt.Errorf("%w: fov_deg %v outside (0, 180)", ErrInvalid, c.Lens.FovDeg)
	case c.Lens.Near <= 0 || c.Lens.Far <= c.Lens.Near:
		return fmt.Errorf("%w: need 0 < near < far, got near=%v far=%v", ErrInvalid, c.Lens.Near, c.Lens.Far)
	case c.Spin.PeriodSeconds <= 0:
		return fmt.Errorf("%w: period_seconds must be positive", ErrInvalid)
	case mgl32.Vec3(c.Camera.Eye) == mgl32.Vec3(c.Camera.Center):
		return fmt.Errorf("%w: camera eye and center coincide", ErrInvalid)
	case mgl32.Vec3(c.Camera.Up).Len() == 0:
		return fmt.Errorf("%w: camera up vector is zero", ErrInvalid)
	}
	for i, v := range c.Background {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: background[%d]=%v outside [0, 1]", ErrInvalid, i, v)
		}
	}
	return nil
}

// WindowTitle is the configured title, or fallback when none is set.
func (c Config) WindowTitle(fallback string) string {
	if c.Window.Title != "" {
		return c.Window.Title
	}
	return fallback
}

// SceneCamera converts the camera section for scene.NewSession.
func (c Config) SceneCamera() scene.Camera {
	return scene.Camera{Eye: c.Camera.Eye, Center: c.Camera.Center, Up: c.Camera.Up}
}

// SceneLens converts the lens section for scene.NewSession.
func (c Config) SceneLens() scene.Lens {
	return scene.Lens{FovY: c.Lens.FovDeg, Near: c.Lens.Near, Far: c.Lens.Far}
}

// SceneSpin converts the spin section for scene.NewSession.
func (c Config) SceneSpin() scene.Spin {
	return scene.Spin{
		Period:         time.Duration(c.Spin.PeriodSeconds * float64(time.Second)),
		SecondaryRatio: c.Spin.SecondaryRatio,
	}
}

// BackgroundColor is the RGBA clear color.
func (c Config) BackgroundColor() mgl32.Vec4 { return mgl32.Vec4(c.Background) }
