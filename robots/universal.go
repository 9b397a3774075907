package robots

import (
	"math"

	"github.com/mattj23/industrial-robots/kinematics"
	"github.com/mattj23/industrial-robots/spatialmath"
)

func init() {
	Register(mustModel(newUR5e()))
}

// newUR5e builds the Universal Robots UR5e from the DH table UR publishes. Axes 2, 3 and
// 4 come out parallel, so the arm classifies as a three parallel axes structure rather
// than a spherical wrist.
func newUR5e() (*kinematics.Model, error) {
	params := []kinematics.DHParam{
		{A: 0, D: 162.5, Alpha: math.Pi / 2},
		{A: -425, D: 0, Alpha: 0},
		{A: -392.2, D: 0, Alpha: 0},
		{A: 0, D: 133.3, Alpha: math.Pi / 2},
		{A: 0, D: 99.7, Alpha: -math.Pi / 2},
		{A: 0, D: 99.6, Alpha: 0},
	}
	limits := degLimits([kinematics.NumJoints][2]float64{
		{-360, 360}, {-360, 360}, {-360, 360}, {-360, 360}, {-360, 360}, {-360, 360},
	})
	return kinematics.NewModelFromDHWithLimits("ur5e", params, spatialmath.NewZeroPose(), limits)
}
