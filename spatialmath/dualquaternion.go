// Package spatialmath defines spatial mathematical operations: rigid transformations in 3D
// space and the various parameterizations of orientation.
package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// DualQuaternion defines functions to perform rigid transformations in 3D.
type DualQuaternion struct {
	Quat dualquat.Number
}

// NewDualQuaternion returns a pointer to a new DualQuaternion object whose Quaternion is an identity Quaternion.
// Since the real part of a dual quaternion should be a unit quaternion, not all zeroes, this should be used
// instead of &DualQuaternion{}.
func NewDualQuaternion() *DualQuaternion {
	return &DualQuaternion{dualquat.Number{
		Real: quat.Number{Real: 1},
		Dual: quat.Number{},
	}}
}

// NewDualQuaternionFromRotation returns a pointer to a new DualQuaternion object whose rotation
// quaternion is set from a provided Orientation.
func NewDualQuaternionFromRotation(o Orientation) *DualQuaternion {
	return &DualQuaternion{dualquat.Number{
		Real: o.Quaternion(),
		Dual: quat.Number{},
	}}
}

// NewDualQuaternionFromDH returns a pointer to a new DualQuaternion object created from a DH parameter.
func NewDualQuaternionFromDH(a, d, alpha float64) *DualQuaternion {
	m := mgl64.Ident4()

	m.Set(1, 1, math.Cos(alpha))
	m.Set(1, 2, -1*math.Sin(alpha))

	m.Set(2, 0, 0)
	m.Set(2, 1, math.Sin(alpha))
	m.Set(2, 2, math.Cos(alpha))

	qRot := mgl64.Mat4ToQuat(m)
	q := NewDualQuaternion()
	q.Quat.Real = quat.Number{Real: qRot.W, Imag: qRot.X(), Jmag: qRot.Y(), Kmag: qRot.Z()}
	q.SetTranslation(a, 0, d)
	return q
}

// NewDualQuaternionFromPose returns a pointer to a new DualQuaternion object whose rotation and
// translation are set from a provided Pose.
func NewDualQuaternionFromPose(p Pose) *DualQuaternion {
	if q, ok := p.(*DualQuaternion); ok {
		return q.Clone()
	}
	q := NewDualQuaternionFromRotation(p.Orientation())
	pt := p.Point()
	q.SetTranslation(pt.X, pt.Y, pt.Z)
	return q
}

// Clone returns a DualQuaternion object identical to this one.
func (q *DualQuaternion) Clone() *DualQuaternion {
	// No need for deep copies here, dualquats are primitives all the way down
	return &DualQuaternion{q.Quat}
}

// Point returns the cartesian translation of the transform as a vector.
func (q *DualQuaternion) Point() r3.Vector {
	trans := q.Translation()
	return r3.Vector{X: trans.Dual.Imag, Y: trans.Dual.Jmag, Z: trans.Dual.Kmag}
}

// Orientation returns the rotation of the transform as an Orientation.
func (q *DualQuaternion) Orientation() Orientation {
	return NewOrientationFromQuaternion(q.Quat.Real)
}

// Rotation returns the rotation quaternion.
func (q *DualQuaternion) Rotation() quat.Number {
	return q.Quat.Real
}

// Translation multiplies the dual quaternion by its own conjugate to give a dq where the real is the identity quat,
// and the dual is representative of real world millimeters.
func (q *DualQuaternion) Translation() dualquat.Number {
	return dualquat.Mul(q.Quat, dualquat.Conj(q.Quat))
}

// SetTranslation correctly sets the translation quaternion against the rotation.
func (q *DualQuaternion) SetTranslation(x, y, z float64) {
	q.Quat.Dual = quat.Number{Real: 0, Imag: x / 2, Jmag: y / 2, Kmag: z / 2}
	q.rotate()
}

// rotate multiplies the dual part of the quaternion by the real part give the correct rotation.
func (q *DualQuaternion) rotate() {
	q.Quat.Dual = quat.Mul(q.Quat.Dual, q.Quat.Real)
}

// Invert returns a DualQuaternion representing the opposite transformation. So if the input q
// goes from A to B, the returned dual quaternion will go from B to A.
func (q *DualQuaternion) Invert() *DualQuaternion {
	conj := quat.Conj(q.Quat.Real)
	pt := q.Point()
	// The inverted translation is the negated original, rotated into the inverted frame.
	rotated := quat.Mul(quat.Mul(conj, quat.Number{Real: 0, Imag: -pt.X, Jmag: -pt.Y, Kmag: -pt.Z}), q.Quat.Real)
	inv := &DualQuaternion{dualquat.Number{Real: conj}}
	inv.SetTranslation(rotated.Imag, rotated.Jmag, rotated.Kmag)
	return inv
}

// Transformation multiplies the dual quat contained in this DualQuaternion by another dual quat.
func (q *DualQuaternion) Transformation(by dualquat.Number) dualquat.Number {
	// Ensure we are multiplying by a unit dual quaternion
	if vecLen := quat.Abs(by.Real); vecLen != 1 {
		by.Real = quat.Scale(1/vecLen, by.Real)
	}

	return dualquat.Mul(q.Quat, by)
}

// TransformPoint applies the rigid transformation to a point in space.
func (q *DualQuaternion) TransformPoint(pt r3.Vector) r3.Vector {
	rotated := quat.Mul(quat.Mul(q.Quat.Real, quat.Number{Real: 0, Imag: pt.X, Jmag: pt.Y, Kmag: pt.Z}), quat.Conj(q.Quat.Real))
	return r3.Vector{X: rotated.Imag, Y: rotated.Jmag, Z: rotated.Kmag}.Add(q.Point())
}

// QuatToR4AA converts a quat to an R4 axis angle in the same way the C++ Eigen library does.
// https://eigen.tuxfamily.org/dox/AngleAxis_8h_source.html
func QuatToR4AA(q quat.Number) R4AA {
	denom := Norm(q)

	angle := 2 * math.Atan2(denom, math.Abs(q.Real))
	if q.Real < 0 {
		angle *= -1
	}

	if denom < 1e-6 {
		return R4AA{angle, 1, 0, 0}
	}
	return R4AA{angle, q.Imag / denom, q.Jmag / denom, q.Kmag / denom}
}

// Norm returns the norm of the quaternion, i.e. the sqrt of the squares of the imaginary parts.
func Norm(q quat.Number) float64 {
	return math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
}

// Flip will multiply a quaternion by -1, returning a quaternion representing the same orientation but in the opposing octant.
func Flip(q quat.Number) quat.Number {
	return quat.Number{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
}
