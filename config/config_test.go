package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toxichemicals/GO/holy-webgl/scene"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, scene.DefaultCamera(), cfg.SceneCamera())
	assert.Equal(t, scene.DefaultLens(), cfg.SceneLens())
	assert.Equal(t, scene.DefaultSpin(), cfg.SceneSpin())
	assert.Equal(t, mgl32.Vec4{0.75, 0.85, 0.8, 1}, cfg.BackgroundColor())
	assert.True(t, cfg.Shaders.Validate)
	assert.False(t, cfg.Shaders.Strict)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
window:
  width: 1024
  height: 768
spin:
  period_seconds: 3
camera:
  eye: [0, 2, -8]
shaders:
  strict: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 768, cfg.Window.Height)
	assert.Equal(t, "Holy Rotating Cube", cfg.WindowTitle("Holy Rotating Cube"))
	assert.Equal(t, 3*time.Second, cfg.SceneSpin().Period)
	assert.Equal(t, 0.25, cfg.SceneSpin().SecondaryRatio)
	assert.Equal(t, mgl32.Vec3{0, 2, -8}, cfg.SceneCamera().Eye)
	assert.True(t, cfg.Shaders.Strict)
	assert.True(t, cfg.Shaders.Validate)
}

func TestWindowTitleOverride(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "Holy Triangle", cfg.WindowTitle("Holy Triangle"))

	require.NoError(t, Decode([]byte("window:\n  title: My Cube\n"), &cfg))
	assert.Equal(t, "My Cube", cfg.WindowTitle("Holy Triangle"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecodeEmptyDocument(t *testing.T) {
	cfg := Default()
	require.NoError(t, Decode(nil, &cfg))
	assert.Equal(t, Default(), cfg)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	cfg := Default()
	err := Decode([]byte("windoww:\n  width: 3\n"), &cfg)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"zero width":       func(c *Config) { c.Window.Width = 0 },
		"wide fov":         func(c *Config) { c.Lens.FovDeg = 180 },
		"near behind":      func(c *Config) { c.Lens.Near = 0 },
		"far before near":  func(c *Config) { c.Lens.Far = 0.05 },
		"stopped spin":     func(c *Config) { c.Spin.PeriodSeconds = 0 },
		"eye on center":    func(c *Config) { c.Camera.Eye = c.Camera.Center },
		"no up":            func(c *Config) { c.Camera.Up = [3]float32{} },
		"background range": func(c *Config) { c.Background[3] = 1.5 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}
