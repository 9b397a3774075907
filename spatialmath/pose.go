package spatialmath

import (
	"github.com/golang/geo/r3"
)

// Pose represents a rigid transformation in 3D space: a position in millimeters and an
// orientation. It is the pose of one frame of reference relative to another.
type Pose interface {
	Point() r3.Vector
	Orientation() Orientation
}

// NewZeroPose returns a pose at (0,0,0) with no rotation.
func NewZeroPose() Pose {
	return NewDualQuaternion()
}

// NewPose takes in a position and an orientation and returns a Pose.
func NewPose(p r3.Vector, o Orientation) Pose {
	if o == nil {
		return NewPoseFromPoint(p)
	}
	q := NewDualQuaternionFromRotation(o)
	q.SetTranslation(p.X, p.Y, p.Z)
	return q
}

// NewPoseFromPoint takes in a cartesian (x,y,z) and stores it as a vector.
// It will have the same orientation as the frame it is in reference to.
func NewPoseFromPoint(point r3.Vector) Pose {
	q := NewDualQuaternion()
	q.SetTranslation(point.X, point.Y, point.Z)
	return q
}

// NewPoseFromOrientation takes in a position and orientation and returns a Pose.
func NewPoseFromOrientation(point r3.Vector, o Orientation) Pose {
	return NewPose(point, o)
}

// Compose treats Poses as functions A(x) and B(x), and produces a new function C(x) = A(B(x)).
// It converts the poses to dual quaternions and multiplies them together, normalizing the result.
func Compose(a, b Pose) Pose {
	aq := NewDualQuaternionFromPose(a)
	result := &DualQuaternion{aq.Transformation(NewDualQuaternionFromPose(b).Quat)}
	return result
}

// PoseInverse will return the inverse of a pose. So if a pose maps A to B, the inverse maps B to A.
func PoseInverse(p Pose) Pose {
	return NewDualQuaternionFromPose(p).Invert()
}

// PoseBetween returns the difference between two poses, that is, the pose that when composed
// with a yields b.
func PoseBetween(a, b Pose) Pose {
	return Compose(PoseInverse(a), b)
}

// PoseDelta returns the difference between two poses as a pose: the translational difference
// as the point and the rotational difference as the orientation.
func PoseDelta(a, b Pose) Pose {
	return NewPose(b.Point().Sub(a.Point()), OrientationBetween(a.Orientation(), b.Orientation()))
}

// PoseAlmostCoincident checks if two poses approximately are at the same 6DoF position, using
// a default epsilon.
func PoseAlmostCoincident(a, b Pose) bool {
	return PoseAlmostCoincidentEps(a, b, 1e-8)
}

// PoseAlmostCoincidentEps checks if two poses approximately are at the same 6DoF position,
// within the given epsilon.
func PoseAlmostCoincidentEps(a, b Pose, epsilon float64) bool {
	return R3VectorAlmostEqual(a.Point(), b.Point(), epsilon) &&
		QuaternionAlmostEqual(a.Orientation().Quaternion(), b.Orientation().Quaternion(), epsilon)
}
