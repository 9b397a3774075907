package kinematics

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/mattj23/industrial-robots/utils"
)

// StructuralClass identifies which geometric family a Model belongs to. The family
// determines which subproblem decomposition the solver uses.
type StructuralClass int

const (
	// ClassUnknown is the zero value, before classification has run.
	ClassUnknown StructuralClass = iota
	// ClassSphericalWrist covers arms whose last three axes intersect at a common point
	// and whose axes 2 and 3 are parallel: the dominant industrial arrangement, solved
	// fully closed-form with position/orientation decoupling.
	ClassSphericalWrist
	// ClassThreeParallelAxes covers arms with axes 2, 3 and 4 parallel and axes 5 and 6
	// intersecting, the UR-style arrangement, also solved closed-form.
	ClassThreeParallelAxes
	// ClassParallelAxes2And3 covers arms with only axes 2 and 3 parallel and axes 5 and 6
	// intersecting, such as the FANUC CRX series. One constraint cannot be decoupled and
	// the solver runs a one-dimensional search over the first joint.
	ClassParallelAxes2And3
	// ClassGeneric6R marks an axis arrangement with no exploitable structure; inverse
	// kinematics is unsupported for these models.
	ClassGeneric6R
)

func (c StructuralClass) String() string {
	switch c {
	case ClassSphericalWrist:
		return "SphericalWrist"
	case ClassThreeParallelAxes:
		return "ThreeParallelAxes"
	case ClassParallelAxes2And3:
		return "ParallelAxes2And3"
	case ClassGeneric6R:
		return "Generic6R"
	default:
		return "Unknown"
	}
}

// Direction cosines within this of parallel count as parallel, and axis lines within this
// many millimeters count as intersecting. Borderline arrangements therefore classify into
// the more constrained family, whose decomposition is better conditioned.
const (
	parallelEpsilon  = 1e-6
	intersectEpsilon = 1e-6
)

// Class determines the structural family of the model, computing it on first use and
// caching it for the life of the model. A ClassGeneric6R result is accompanied by an
// UnsupportedGeometry error, reported identically on every call.
func (m *Model) Class() (StructuralClass, error) {
	m.classOnce.Do(func() {
		m.class, m.wristCenter, m.classErr = classify(m)
	})
	return m.class, m.classErr
}

// classify tests families from most constrained to least, so that a robot within tolerance
// of several families lands in the cheapest decomposition.
func classify(m *Model) (StructuralClass, r3.Vector, error) {
	axes := m.axes

	if center, ok := commonPoint(axes[3], axes[4], axes[5]); ok && axesParallel(axes[1], axes[2]) {
		return ClassSphericalWrist, center, nil
	}

	meet56, intersect56 := axesIntersect(axes[4], axes[5])
	if intersect56 && axesParallel(axes[1], axes[2]) {
		if axesParallel(axes[2], axes[3]) && axesParallel(axes[1], axes[3]) {
			return ClassThreeParallelAxes, meet56, nil
		}
		return ClassParallelAxes2And3, meet56, nil
	}

	return ClassGeneric6R, r3.Vector{}, NewUnsupportedGeometryError(m.name)
}

// axesParallel reports whether two axis lines have parallel (or antiparallel) directions.
func axesParallel(a, b JointAxis) bool {
	return utils.Float64AlmostEqual(a.Direction.Cross(b.Direction).Norm(), 0, parallelEpsilon)
}

// axesIntersect finds the point where two axis lines meet, if they do. Returns the midpoint
// of the closest-approach segment and whether its length is within tolerance.
func axesIntersect(a, b JointAxis) (r3.Vector, bool) {
	if axesParallel(a, b) {
		return r3.Vector{}, false
	}
	// Closest points of two skew lines a.Point + s*a.Direction and b.Point + t*b.Direction.
	w := a.Point.Sub(b.Point)
	dd := a.Direction.Dot(b.Direction)
	sa := a.Direction.Dot(w)
	sb := b.Direction.Dot(w)
	denom := 1 - dd*dd
	s := (dd*sb - sa) / denom
	t := (sb - dd*sa) / denom
	pa := a.Point.Add(a.Direction.Mul(s))
	pb := b.Point.Add(b.Direction.Mul(t))
	if !utils.Float64AlmostEqual(pa.Sub(pb).Norm(), 0, intersectEpsilon) {
		return r3.Vector{}, false
	}
	return pa.Add(pb).Mul(0.5), true
}

// commonPoint finds a single point shared by three axis lines, if one exists.
func commonPoint(a, b, c JointAxis) (r3.Vector, bool) {
	pab, okab := axesIntersect(a, b)
	if !okab {
		return r3.Vector{}, false
	}
	if distanceToLine(pab, c) > intersectEpsilon {
		return r3.Vector{}, false
	}
	pbc, okbc := axesIntersect(b, c)
	if !okbc || pab.Sub(pbc).Norm() > intersectEpsilon {
		return r3.Vector{}, false
	}
	return pab, true
}

// distanceToLine returns the perpendicular distance from a point to an axis line.
func distanceToLine(p r3.Vector, axis JointAxis) float64 {
	w := p.Sub(axis.Point)
	return math.Sqrt(math.Max(0, w.Norm2()-math.Pow(w.Dot(axis.Direction), 2)))
}
