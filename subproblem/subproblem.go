// Package subproblem provides closed-form solutions to the canonical geometric subproblems
// that 6R inverse kinematics decomposes into: rotating a vector about an axis onto another
// vector, onto a plane, to a given distance, or matching a pair of rotations about two axes.
//
// Each solver returns the finite set of real angle branches, in radians, together with an
// Approximate flag. The flag is raised when the inputs are rank deficient or slightly
// inconsistent and the returned angles are least-squares rather than exact; callers are
// expected to re-validate candidates against the full kinematic equation.
package subproblem

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/mattj23/industrial-robots/utils"
)

// Below this squared norm a projected vector is considered degenerate: it lies on the
// rotation axis and its rotation circle has no usable radius.
const zeroProjectionEpsilon = 1e-12

// Inputs inconsistent by more than this (relative to the vector scale) mark a solution
// as least-squares rather than exact.
const consistencyEpsilon = 1e-8

// RotateOntoVector solves for theta such that rotating p1 about the unit axis k by theta
// lands it on p2. There is at most one such angle. If no exact rotation exists, for example
// when the two vectors have different norms or different components along k, the returned
// angle is the least-squares fit and approximate is true.
func RotateOntoVector(k r3.Vector, p1, p2 r3.Vector) (theta float64, approximate bool) {
	p1p := p1.Sub(k.Mul(k.Dot(p1)))
	p2p := p2.Sub(k.Mul(k.Dot(p2)))

	n1 := p1p.Norm()
	n2 := p2p.Norm()
	if n1*n1 < zeroProjectionEpsilon || n2*n2 < zeroProjectionEpsilon {
		// One of the vectors lies on the axis; every angle is an equally good fit.
		return 0, true
	}

	theta = math.Atan2(k.Dot(p1p.Cross(p2p)), p1p.Dot(p2p))

	scale := math.Max(p1.Norm(), p2.Norm())
	if math.Abs(n1-n2) > consistencyEpsilon*scale ||
		math.Abs(k.Dot(p1)-k.Dot(p2)) > consistencyEpsilon*scale {
		approximate = true
	}
	return theta, approximate
}

// RotatePair solves for the angle pairs (theta1, theta2) such that rotating p1 about the
// unit axis k1 by theta1 and rotating p2 about the unit axis k2 by theta2 produce the same
// vector. The axes are assumed to pass through a common point. Generic inputs yield two
// branches; tangent configurations collapse to one branch with approximate set, and
// unreachable inputs yield none.
func RotatePair(k1 r3.Vector, p1 r3.Vector, k2 r3.Vector, p2 r3.Vector) (thetas [][2]float64, approximate bool) {
	kCross := k1.Cross(k2)
	crossSq := kCross.Norm2()
	if crossSq < zeroProjectionEpsilon {
		// Parallel axes: the two rotation cones coincide and the pair is underdetermined.
		// Report the limiting branch that leaves the first rotation at zero.
		theta2, _ := RotateOntoVector(k2, p2, p1)
		return [][2]float64{{0, theta2}}, true
	}

	// The meeting vector z satisfies k1.z = k1.p1, k2.z = k2.p2 and |z| = |p1|.
	// Decompose z = alpha*k1 + beta*k2 + gamma*(k1 x k2) and solve the 2x2 Gram system.
	c := k1.Dot(k2)
	d1 := k1.Dot(p1)
	d2 := k2.Dot(p2)
	det := 1 - c*c
	alpha := (d1 - c*d2) / det
	beta := (d2 - c*d1) / det

	if math.Abs(p1.Norm()-p2.Norm()) > consistencyEpsilon*math.Max(p1.Norm(), p2.Norm()) {
		approximate = true
	}

	gammaSq := (p1.Norm2() - alpha*alpha - beta*beta - 2*alpha*beta*c) / crossSq
	scaleSq := math.Max(p1.Norm2(), 1)
	switch {
	case gammaSq < -consistencyEpsilon*scaleSq:
		return nil, approximate
	case gammaSq <= 0:
		// Tangent case, clamping roundoff: the two branches coincide. Any strictly
		// positive discriminant keeps both branches below, however close, so that
		// configurations approaching the tangent degrade continuously.
		z := k1.Mul(alpha).Add(k2.Mul(beta))
		theta1, _ := RotateOntoVector(k1, p1, z)
		theta2, _ := RotateOntoVector(k2, p2, z)
		return [][2]float64{{theta1, theta2}}, true
	}

	gamma := math.Sqrt(gammaSq)
	for _, g := range []float64{gamma, -gamma} {
		z := k1.Mul(alpha).Add(k2.Mul(beta)).Add(kCross.Mul(g))
		theta1, approx1 := RotateOntoVector(k1, p1, z)
		theta2, approx2 := RotateOntoVector(k2, p2, z)
		thetas = append(thetas, [2]float64{theta1, theta2})
		approximate = approximate || approx1 || approx2
	}
	return thetas, approximate
}

// RotateToDistance solves for theta such that rotating p1 about the unit axis k by theta
// places it at the given distance d from p2. This is the intersection of the rotation circle
// of p1 with the sphere of radius d around p2, yielding up to two branches. Tangency
// collapses to one branch with approximate set.
func RotateToDistance(k r3.Vector, p1, p2 r3.Vector, d float64) (thetas []float64, approximate bool) {
	p1p := p1.Sub(k.Mul(k.Dot(p1)))
	p2p := p2.Sub(k.Mul(k.Dot(p2)))
	dz := k.Dot(p1) - k.Dot(p2)

	// |R(k,theta)p1 - p2|^2 = dz^2 + |p1'|^2 + |p2'|^2 - 2 p2'.R(k,theta)p1'
	b := p1p.Dot(p2p)
	a := k.Dot(p1p.Cross(p2p))
	c := (dz*dz + p1p.Norm2() + p2p.Norm2() - d*d) / 2

	return solveTrigEquation(a, b, c, math.Max(p1.Norm2(), p2.Norm2()))
}

// RotateToPlane solves for theta such that the component of the rotated vector R(k,theta)p
// along the unit vector h equals d, i.e. the rotation circle of p intersected with a plane
// normal to h. Up to two branches; tangency collapses to one with approximate set.
func RotateToPlane(k r3.Vector, h r3.Vector, p r3.Vector, d float64) (thetas []float64, approximate bool) {
	hk := h.Dot(k)
	kp := k.Dot(p)
	a := h.Dot(k.Cross(p))
	b := h.Dot(p) - hk*kp
	c := d - hk*kp

	return solveTrigEquation(a, b, c, math.Max(p.Norm2(), 1))
}

// solveTrigEquation finds all theta with a*sin(theta) + b*cos(theta) = c. The scale
// argument sets the size below which the circle radius is considered degenerate.
func solveTrigEquation(a, b, c, scale float64) (thetas []float64, approximate bool) {
	r := math.Hypot(a, b)
	if r*r < zeroProjectionEpsilon*scale {
		// The rotation circle has no radius; the constraint is independent of theta.
		if math.Abs(c) < consistencyEpsilon*math.Max(scale, 1) {
			return []float64{0}, true
		}
		return nil, false
	}

	phase := math.Atan2(a, b)
	ratio := c / r
	switch {
	case ratio > 1+consistencyEpsilon || ratio < -1-consistencyEpsilon:
		return nil, false
	case ratio > 1-consistencyEpsilon || ratio < -1+consistencyEpsilon:
		// Tangent: the circle grazes the constraint set and both branches coincide.
		return []float64{utils.WrapAngleRad(phase + math.Acos(utils.Clamp(ratio, -1, 1)))}, true
	}

	offset := math.Acos(ratio)
	return []float64{utils.WrapAngleRad(phase + offset), utils.WrapAngleRad(phase - offset)}, false
}

// Rotate applies Rodrigues' rotation formula, rotating v about the unit axis k by theta.
func Rotate(k r3.Vector, theta float64, v r3.Vector) r3.Vector {
	cos := math.Cos(theta)
	sin := math.Sin(theta)
	return v.Mul(cos).Add(k.Cross(v).Mul(sin)).Add(k.Mul(k.Dot(v) * (1 - cos)))
}
