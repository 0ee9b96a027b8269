package scene

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera places the eye in world space.
type Camera struct {
	Eye, Center, Up mgl32.Vec3
}

// DefaultCamera looks at the origin from five units down the negative Z axis.
func DefaultCamera() Camera {
	return Camera{
		Eye:    mgl32.Vec3{0, 0, -5},
		Center: mgl32.Vec3{0, 0, 0},
		Up:     mgl32.Vec3{0, 1, 0},
	}
}

// View returns the world-to-camera matrix.
func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Center, c.Up)
}

// Lens is a symmetric perspective frustum. FovY is in degrees.
type Lens struct {
	FovY      float32
	Near, Far float32
}

// DefaultLens is a 45 degree field of view clipped at 0.1 and 1000.
func DefaultLens() Lens {
	return Lens{FovY: 45, Near: 0.1, Far: 1000}
}

// Projection returns the camera-to-clip matrix for a viewport aspect ratio
// (width / height).
func (l Lens) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(l.FovY), aspect, l.Near, l.Far)
}

// Aspect guards against a zero height while a window is minimized.
func Aspect(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// Spin turns the model one full revolution about Y every Period, while a
// secondary rotation about X runs at SecondaryRatio of that rate.
type Spin struct {
	Period         time.Duration
	SecondaryRatio float64
}

// DefaultSpin turns once every six seconds with the X rotation at a quarter
// of that rate.
func DefaultSpin() Spin {
	return Spin{Period: 6 * time.Second, SecondaryRatio: 0.25}
}

// Angles are rotation angles in radians.
type Angles struct {
	Primary, Secondary float64
}

// Angles derives both angles from the elapsed time alone; nothing carries
// over between calls.
func (s Spin) Angles(elapsed time.Duration) Angles {
	if s.Period <= 0 {
		return Angles{}
	}
	primary := elapsed.Seconds() / s.Period.Seconds() * 2 * math.Pi
	return Angles{Primary: primary, Secondary: primary * s.SecondaryRatio}
}

// World composes the primary Y rotation with the secondary X rotation.
func (a Angles) World() mgl32.Mat4 {
	return mgl32.HomogRotate3DY(wrap(a.Primary)).Mul4(mgl32.HomogRotate3DX(wrap(a.Secondary)))
}

// wrap reduces an angle to one revolution before it is narrowed to float32.
func wrap(rad float64) float32 {
	return float32(math.Mod(rad, 2*math.Pi))
}
