package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// Camera generates primary rays from the origin through the image plane
type Camera struct {
	width, height float64
	aspect        float64
	scale         float64 // tan(fov/2)
	orientation   mgl64.Quat
	oriented      bool // false when looking down +Z
}

// NewCamera creates a camera for an image of the given size.
// Options are normalized, so a zero axis looks down +Z.
func NewCamera(options scene.Options, width, height int) *Camera {
	options = options.Normalized()
	w, h := float64(max(1, width)), float64(max(1, height))

	c := &Camera{
		width:       w,
		height:      h,
		aspect:      w / h,
		scale:       math.Tan(options.CameraAngle * math.Pi / 360),
		orientation: mgl64.QuatIdent(),
	}

	axis := options.CameraAxis.Normalize()
	forward := mgl64.Vec3{0, 0, 1}
	target := mgl64.Vec3{axis.X, axis.Y, axis.Z}
	if !target.ApproxEqual(forward) {
		c.orientation = mgl64.QuatBetweenVectors(forward, target)
		c.oriented = true
	}

	return c
}

// GetRay returns the unit-direction ray through image coordinates (x, y).
// Integer coordinates address the pixel center.
func (c *Camera) GetRay(x, y float64) core.Ray {
	px := 2*(x+0.5)/c.width - 1
	py := 1 - 2*(y+0.5)/c.height

	dir := mgl64.Vec3{px * c.scale, py * c.scale / c.aspect, 1}
	if c.oriented {
		dir = c.orientation.Rotate(dir)
	}

	return core.NewRay(core.Vec3{}, core.NewVec3(dir[0], dir[1], dir[2]).Normalize())
}
