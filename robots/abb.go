package robots

import (
	"github.com/golang/geo/r3"

	"github.com/mattj23/industrial-robots/kinematics"
	"github.com/mattj23/industrial-robots/spatialmath"
)

func init() {
	Register(mustModel(newIRB6640()))
}

// newIRB6640 builds the ABB IRB 6640-180/2.55, a heavy payload spherical wrist arm.
// Dimensions in mm: 320mm base offset, 780mm to J2, 1075mm upper arm, 200mm elbow rise,
// 1142.5mm forearm, 200mm wrist center to flange.
func newIRB6640() (*kinematics.Model, error) {
	axes := []kinematics.JointAxis{
		{Direction: r3.Vector{X: 0, Y: 0, Z: 1}, Point: r3.Vector{X: 0, Y: 0, Z: 0}},
		{Direction: r3.Vector{X: 0, Y: 1, Z: 0}, Point: r3.Vector{X: 320, Y: 0, Z: 780}},
		{Direction: r3.Vector{X: 0, Y: 1, Z: 0}, Point: r3.Vector{X: 320, Y: 0, Z: 1855}},
		{Direction: r3.Vector{X: 1, Y: 0, Z: 0}, Point: r3.Vector{X: 320, Y: 0, Z: 2055}},
		{Direction: r3.Vector{X: 0, Y: 1, Z: 0}, Point: r3.Vector{X: 1462.5, Y: 0, Z: 2055}},
		{Direction: r3.Vector{X: 1, Y: 0, Z: 0}, Point: r3.Vector{X: 1462.5, Y: 0, Z: 2055}},
	}
	home := spatialmath.NewPose(r3.Vector{X: 1662.5, Y: 0, Z: 2055}, mustRotation([]float64{
		0, 0, 1,
		0, -1, 0,
		1, 0, 0,
	}))
	limits := degLimits([kinematics.NumJoints][2]float64{
		{-170, 170}, {-65, 85}, {-180, 70}, {-300, 300}, {-120, 120}, {-360, 360},
	})
	return kinematics.NewModelWithLimits("irb6640", axes, spatialmath.NewZeroPose(), home, limits)
}
