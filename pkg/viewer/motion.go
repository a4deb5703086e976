package viewer

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/meshview/pkg/models"
)

// settleEpsilon is how close an eased axis must be to its target, in radians
// and radians per frame, before it snaps to it.
const settleEpsilon = 1e-4

// axisMotion eases the applied rotation about one axis toward a target angle
// with a critically damped spring.
type axisMotion struct {
	axis     models.Axis
	target   float64
	applied  float64
	velocity float64
	spring   harmonica.Spring
}

func newAxisMotion(axis models.Axis, fps int) axisMotion {
	return axisMotion{
		axis: axis,
		// Frequency 8 settles a single step in about a quarter second.
		spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 1.0),
	}
}

// step advances the spring one frame and returns the rotation to apply now.
func (a *axisMotion) step() float64 {
	if a.settled() {
		return 0
	}

	pos, vel := a.spring.Update(a.applied, a.velocity, a.target)
	if math.Abs(a.target-pos) < settleEpsilon && math.Abs(vel) < settleEpsilon {
		pos, vel = a.target, 0
	}

	delta := pos - a.applied
	a.applied, a.velocity = pos, vel
	return delta
}

func (a *axisMotion) settled() bool {
	return a.applied == a.target && a.velocity == 0
}

// motion eases rotations about all three axes. Each frame applies the X, Y
// then Z increments, so the total turn per axis equals the sum of the steps
// requested, though interleaving differs from instant mode.
type motion struct {
	axes [3]axisMotion
}

func newMotion(fps int) *motion {
	return &motion{axes: [3]axisMotion{
		newAxisMotion(models.AxisX, fps),
		newAxisMotion(models.AxisY, fps),
		newAxisMotion(models.AxisZ, fps),
	}}
}

// push moves the target angle of axis by angle.
func (m *motion) push(axis models.Axis, angle float64) {
	m.axes[axis].target += angle
}

// update advances every axis one frame, rotating mesh by the increments.
func (m *motion) update(mesh *models.Mesh) {
	for i := range m.axes {
		a := &m.axes[i]
		if d := a.step(); d != 0 {
			mesh.Rotate(a.axis, d)
		}
	}
}

// settled reports whether every axis has reached its target.
func (m *motion) settled() bool {
	for i := range m.axes {
		if !m.axes[i].settled() {
			return false
		}
	}
	return true
}

// reset drops all pending motion.
func (m *motion) reset() {
	for i := range m.axes {
		a := &m.axes[i]
		a.target, a.applied, a.velocity = 0, 0, 0
	}
}
