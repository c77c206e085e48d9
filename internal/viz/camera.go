package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/aerosim/internal/aircraft"
)

// Camera is a chase camera trailing the body at Distance, looking along the
// horizontal heading.
type Camera struct {
	Distance float64
	Height   float64
	Yaw      float64 // orbit around the body, radians
	Zoom     float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 18, Height: 3, Zoom: 1}
}

func (c *Camera) ZoomIn()          { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()         { c.Zoom = math.Max(0.1, c.Zoom/1.2) }
func (c *Camera) Orbit(a float64)  { c.Yaw += a }

// view returns the world-to-camera rotation and the camera position for a
// body at k.
func (c *Camera) view(k *aircraft.Kinematics) (mgl64.Quat, mgl64.Vec3) {
	fwd := k.Forward()
	heading := math.Atan2(fwd.X(), fwd.Z()) + c.Yaw
	yaw := mgl64.QuatRotate(heading, mgl64.Vec3{0, 1, 0})

	eye := k.Position.Add(yaw.Rotate(mgl64.Vec3{0, c.Height, -c.Distance}))
	return yaw.Inverse(), eye
}

// Project maps a world point onto a sw×sh dot grid. The flag is false for
// points behind the camera; points in front may still fall off the grid.
func (c *Camera) Project(k *aircraft.Kinematics, p mgl64.Vec3, sw, sh int) (int, int, bool) {
	toCam, eye := c.view(k)
	v := toCam.Rotate(p.Sub(eye))
	if v.Z() < 0.1 {
		return 0, 0, false
	}

	f := float64(min(sw, sh)) * c.Zoom / (v.Z() * 0.5)
	sx := int(v.X()*f) + sw/2
	sy := int(-v.Y()*f) + sh/2
	return sx, sy, true
}

// Outline returns the four world-space corners of each mounted surface.
func Outline(agg *aircraft.Aggregator, k *aircraft.Kinematics) [][4]mgl64.Vec3 {
	quads := make([][4]mgl64.Vec3, 0, len(agg.Mounts))
	for _, m := range agg.Mounts {
		cfg := m.Surface.Config()
		rot := k.Rotation.Mul(m.Rotation)
		center := k.Position.Add(k.Rotation.Rotate(m.Position))
		hc, hs := cfg.Chord/2, cfg.Span/2

		var q [4]mgl64.Vec3
		for i, corner := range [4]mgl64.Vec3{{hc, 0, hs}, {-hc, 0, hs}, {-hc, 0, -hs}, {hc, 0, -hs}} {
			q[i] = center.Add(rot.Rotate(corner))
		}
		quads = append(quads, q)
	}
	return quads
}

// Render draws the airframe wireframe, its horizon and the flight path trail
// onto canvas.
func Render(canvas *Canvas, cam *Camera, agg *aircraft.Aggregator, k *aircraft.Kinematics, trail []mgl64.Vec3) {
	canvas.Clear()
	sw, sh := canvas.Pixels()

	project := func(p mgl64.Vec3) (int, int, bool) { return cam.Project(k, p, sw, sh) }
	segment := func(a, b mgl64.Vec3) {
		x0, y0, v0 := project(a)
		x1, y1, v1 := project(b)
		if v0 && v1 {
			canvas.DrawLine(x0, y0, x1, y1)
		}
	}

	// Horizon: a long ground-level line abeam the camera at the body's
	// heading.
	toCam, eye := cam.view(k)
	right := toCam.Inverse().Rotate(mgl64.Vec3{1, 0, 0})
	ahead := toCam.Inverse().Rotate(mgl64.Vec3{0, 0, 1})
	far := mgl64.Vec3{eye.X(), 0, eye.Z()}.Add(ahead.Mul(5000))
	segment(far.Sub(right.Mul(5000)), far.Add(right.Mul(5000)))

	for _, q := range Outline(agg, k) {
		for i := range q {
			segment(q[i], q[(i+1)%4])
		}
	}

	for _, p := range trail {
		if x, y, ok := project(p); ok {
			canvas.Set(x, y)
		}
	}
}
