package robots

import (
	"github.com/golang/geo/r3"

	"github.com/mattj23/industrial-robots/kinematics"
	"github.com/mattj23/industrial-robots/spatialmath"
	"github.com/mattj23/industrial-robots/utils"
)

// FANUC reports the flange at the zero configuration with Z pointing out along the world
// X axis and X pointing up, a half turn about the diagonal between world X and Z.
var fanucFlange = mustRotation([]float64{
	0, 0, 1,
	0, -1, 0,
	1, 0, 0,
})

// flangePose is a pose at the given point carrying the FANUC flange orientation.
func flangePose(pt r3.Vector) spatialmath.Pose {
	return spatialmath.NewPose(pt, fanucFlange)
}

func init() {
	Register(mustModel(newLRMate200iD()))
	Register(mustModel(newCRX("crx5ia", 410, 430, 145, 130)))
	Register(mustModel(newCRX("crx10ia", 540, 540, 160, 150)))
}

// newLRMate200iD builds the FANUC LR Mate 200iD, a spherical wrist arm. Dimensions in mm
// from the datasheet: 50mm J1 to J2, 330mm J2 to J3, 35mm J3 to J4/J6 line, 335mm to the
// J5 wrist center, 80mm wrist center to flange.
func newLRMate200iD() (*kinematics.Model, error) {
	axes := []kinematics.JointAxis{
		{Direction: r3.Vector{X: 0, Y: 0, Z: 1}, Point: r3.Vector{X: 0, Y: 0, Z: 0}},
		{Direction: r3.Vector{X: 0, Y: 1, Z: 0}, Point: r3.Vector{X: 50, Y: 0, Z: 0}},
		{Direction: r3.Vector{X: 0, Y: -1, Z: 0}, Point: r3.Vector{X: 50, Y: 0, Z: 330}},
		{Direction: r3.Vector{X: -1, Y: 0, Z: 0}, Point: r3.Vector{X: 50, Y: 0, Z: 365}},
		{Direction: r3.Vector{X: 0, Y: -1, Z: 0}, Point: r3.Vector{X: 385, Y: 0, Z: 365}},
		{Direction: r3.Vector{X: -1, Y: 0, Z: 0}, Point: r3.Vector{X: 465, Y: 0, Z: 365}},
	}
	home := flangePose(r3.Vector{X: 465, Y: 0, Z: 365})
	limits := degLimits([kinematics.NumJoints][2]float64{
		{-170, 170}, {-100, 145}, {-140, 200}, {-190, 190}, {-125, 125}, {-360, 360},
	})
	return kinematics.NewModelWithLimits("lrmate200id", axes, spatialmath.NewZeroPose(), home, limits)
}

// newCRX builds a robot in the FANUC CRX collaborative series. The whole series shares one
// kinematic structure, a non-spherical wrist with axes 2 and 3 parallel, and differs only
// in link lengths:
//
//	z1: height from the J2 axis to the J3 axis
//	x1: length from the J3 axis to the J5 axis
//	x2: length from the J5 axis to the flange
//	y1: offset from the J1 axis to the J2 axis
func newCRX(name string, z1, x1, x2, y1 float64) (*kinematics.Model, error) {
	axes := []kinematics.JointAxis{
		{Direction: r3.Vector{X: 0, Y: 0, Z: 1}, Point: r3.Vector{X: 0, Y: 0, Z: 0}},
		{Direction: r3.Vector{X: 0, Y: 1, Z: 0}, Point: r3.Vector{X: 0, Y: 0, Z: 0}},
		{Direction: r3.Vector{X: 0, Y: -1, Z: 0}, Point: r3.Vector{X: 0, Y: 0, Z: z1}},
		{Direction: r3.Vector{X: -1, Y: 0, Z: 0}, Point: r3.Vector{X: 0, Y: 0, Z: z1}},
		{Direction: r3.Vector{X: 0, Y: -1, Z: 0}, Point: r3.Vector{X: x1, Y: -y1, Z: z1}},
		{Direction: r3.Vector{X: -1, Y: 0, Z: 0}, Point: r3.Vector{X: x1 + x2, Y: -y1, Z: z1}},
	}
	home := flangePose(r3.Vector{X: x1 + x2, Y: -y1, Z: z1})
	limits := degLimits([kinematics.NumJoints][2]float64{
		{-180, 180}, {-180, 180}, {-270, 270}, {-190, 190}, {-180, 180}, {-225, 225},
	})
	return kinematics.NewModelWithLimits(name, axes, spatialmath.NewZeroPose(), home, limits)
}

// FanucJointsToRadians converts controller joint angles in degrees to model angles in
// radians. FANUC arms mechanically couple J2 and J3: the controller reports J3 relative to
// the base plane rather than the J2 link, so the model angle for J3 is the sum of the two.
func FanucJointsToRadians(joints [kinematics.NumJoints]float64) kinematics.JointAngles {
	var rad kinematics.JointAngles
	for i, deg := range joints {
		rad[i] = utils.DegToRad(deg)
	}
	rad[2] += rad[1]
	return rad
}

// FanucRadiansToJoints is the inverse of FanucJointsToRadians, producing the joint angles
// in degrees as the controller would display them.
func FanucRadiansToJoints(rad kinematics.JointAngles) [kinematics.NumJoints]float64 {
	var joints [kinematics.NumJoints]float64
	for i, r := range rad {
		joints[i] = utils.RadToDeg(r)
	}
	joints[2] -= joints[1]
	return joints
}
