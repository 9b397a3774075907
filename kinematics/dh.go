package kinematics

import (
	"github.com/golang/geo/r3"

	"github.com/mattj23/industrial-robots/spatialmath"
)

// DHParam describes one link in the standard Denavit-Hartenberg convention. Lengths are
// in millimeters, the twist in radians. The joint angle is the variable and is omitted.
type DHParam struct {
	A     float64 // link length, along the x axis
	D     float64 // link offset, along the z axis
	Alpha float64 // link twist, about the x axis
}

// NewModelFromDH constructs a Model from standard DH parameters, for robots whose
// datasheets publish a DH table rather than axis geometry. Joint i rotates about the z
// axis of frame i-1; walking the chain at the zero configuration yields each axis line
// and the home pose, so the resulting model is identical to one built from explicit axes.
func NewModelFromDH(name string, params []DHParam, base spatialmath.Pose) (*Model, error) {
	if len(params) != NumJoints {
		return nil, NewIncorrectDoFError(len(params), NumJoints)
	}
	axes := make([]JointAxis, 0, NumJoints)
	cursor := spatialmath.NewDualQuaternion()
	for _, p := range params {
		axes = append(axes, JointAxis{
			Direction: rotateVec(cursor.Rotation(), r3.Vector{X: 0, Y: 0, Z: 1}),
			Point:     cursor.Point(),
		})
		cursor = spatialmath.NewDualQuaternionFromPose(
			spatialmath.Compose(cursor, spatialmath.NewDualQuaternionFromDH(p.A, p.D, p.Alpha)))
	}
	return NewModel(name, axes, base, cursor)
}

// NewModelFromDHWithLimits is NewModelFromDH with per-joint motion limits attached.
func NewModelFromDHWithLimits(name string, params []DHParam, base spatialmath.Pose, limits []Limit) (*Model, error) {
	if len(limits) != NumJoints {
		return nil, NewIncorrectDoFError(len(limits), NumJoints)
	}
	m, err := NewModelFromDH(name, params, base)
	if err != nil {
		return nil, err
	}
	m.limits = append([]Limit{}, limits...)
	return m, nil
}
