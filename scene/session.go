package scene

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Transforms is the world/view/projection chain fed to the vertex stage.
type Transforms struct {
	World      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4
}

// Session is the state of one running cube demo. It is owned by the caller and
// handed to the frame function; view and projection only change on Reproject.
type Session struct {
	Transforms

	Camera Camera
	Lens   Lens
	Spin   Spin

	Elapsed time.Duration
	Angles  Angles
	Frames  int
}

// NewSession builds the setup-time transforms: identity world, camera view,
// and a projection for the given aspect ratio.
func NewSession(cam Camera, lens Lens, spin Spin, aspect float32) *Session {
	return &Session{
		Transforms: Transforms{
			World:      mgl32.Ident4(),
			View:       cam.View(),
			Projection: lens.Projection(aspect),
		},
		Camera: cam,
		Lens:   lens,
		Spin:   spin,
	}
}

// Advance recomputes the world matrix for the elapsed time and returns it.
func (s *Session) Advance(elapsed time.Duration) *mgl32.Mat4 {
	s.Elapsed = elapsed
	s.Angles = s.Spin.Angles(elapsed)
	s.World = s.Angles.World()
	s.Frames++
	return &s.World
}

// Reproject rebuilds the projection for a new viewport aspect ratio.
func (s *Session) Reproject(aspect float32) *mgl32.Mat4 {
	s.Projection = s.Lens.Projection(aspect)
	return &s.Projection
}
