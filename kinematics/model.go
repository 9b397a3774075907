// Package kinematics implements forward and inverse kinematics for six-axis serial robot
// arms. A robot is described by the directions and locations of its six joint axes in the
// base frame with the arm at its zero configuration, plus the pose of the end effector at
// that configuration. Inverse kinematics decomposes the resulting equations into canonical
// geometric subproblems according to the robot's structural family.
package kinematics

import (
	"math"
	"sync"

	"github.com/golang/geo/r3"
	"go.uber.org/multierr"

	"github.com/mattj23/industrial-robots/spatialmath"
)

// NumJoints is the number of revolute joints in the serial arms this package models.
const NumJoints = 6

// Below this norm an axis direction vector is treated as zero and rejected.
const zeroVectorEpsilon = 1e-9

// JointAxis describes one revolute joint: the unit direction of its rotation axis and a
// point the axis passes through. Both are expressed in the base frame with the robot at
// its zero configuration.
type JointAxis struct {
	Direction r3.Vector
	Point     r3.Vector
}

// JointAngles is one joint position per axis, in radians, in axis order.
type JointAngles [NumJoints]float64

// Limit represents the range of motion of one joint, in radians. Limits are metadata:
// they are reported to callers but never enforced by the solver.
type Limit struct {
	Min float64
	Max float64
}

// Model is an immutable kinematic description of a six-axis arm. Construct with NewModel;
// a Model is safe for concurrent use once constructed.
type Model struct {
	name   string
	axes   [NumJoints]JointAxis
	base   spatialmath.Pose
	home   spatialmath.Pose
	limits []Limit

	classOnce sync.Once
	class     StructuralClass
	classErr  error
	// geometry derived during classification
	wristCenter r3.Vector
}

// NewModel constructs a Model from six joint axes, the pose of the base frame in the world
// frame, and the pose of the end effector relative to the base frame at zero configuration.
// Axis directions are normalized; directions within tolerance of the zero vector are
// rejected, as are axis counts other than six.
func NewModel(name string, axes []JointAxis, base, home spatialmath.Pose) (*Model, error) {
	if len(axes) != NumJoints {
		return nil, NewIncorrectDoFError(len(axes), NumJoints)
	}
	if base == nil || home == nil {
		return nil, ErrNilPose
	}

	var errAll error
	m := &Model{name: name, base: base, home: home}
	for i, axis := range axes {
		norm := axis.Direction.Norm()
		if norm < zeroVectorEpsilon {
			multierr.AppendInto(&errAll, NewInvalidGeometryError(i+1, "axis direction is zero"))
			continue
		}
		m.axes[i] = JointAxis{Direction: axis.Direction.Mul(1 / norm), Point: axis.Point}
	}
	if errAll != nil {
		return nil, errAll
	}
	return m, nil
}

// NewModelWithLimits constructs a Model and attaches per-joint motion limits. The limits
// are reported by DoF but have no effect on kinematic computations.
func NewModelWithLimits(name string, axes []JointAxis, base, home spatialmath.Pose, limits []Limit) (*Model, error) {
	if len(limits) != NumJoints {
		return nil, NewIncorrectDoFError(len(limits), NumJoints)
	}
	m, err := NewModel(name, axes, base, home)
	if err != nil {
		return nil, err
	}
	m.limits = append([]Limit{}, limits...)
	return m, nil
}

// Name returns the name of the model.
func (m *Model) Name() string {
	return m.name
}

// Axis returns the i'th joint axis.
func (m *Model) Axis(i int) JointAxis {
	return m.axes[i]
}

// Axes returns a copy of all six joint axes.
func (m *Model) Axes() [NumJoints]JointAxis {
	return m.axes
}

// Base returns the pose of the base frame relative to the world frame.
func (m *Model) Base() spatialmath.Pose {
	return m.base
}

// Home returns the pose of the end effector relative to the base frame at zero configuration.
func (m *Model) Home() spatialmath.Pose {
	return m.home
}

// DoF returns one Limit per joint. Joints without configured limits report an infinite range.
func (m *Model) DoF() []Limit {
	if m.limits != nil {
		return append([]Limit{}, m.limits...)
	}
	limits := make([]Limit, NumJoints)
	for i := range limits {
		limits[i] = Limit{Min: math.Inf(-1), Max: math.Inf(1)}
	}
	return limits
}
