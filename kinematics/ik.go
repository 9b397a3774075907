package kinematics

import (
	"context"
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/mattj23/industrial-robots/spatialmath"
	"github.com/mattj23/industrial-robots/subproblem"
	"github.com/mattj23/industrial-robots/utils"
)

const (
	// Exact branches must reproduce the target within these tolerances to be kept.
	defaultPositionEpsilon    = 1e-6 // mm
	defaultOrientationEpsilon = 1e-6 // radians

	// Degenerate branches are least-squares representatives and get looser validation.
	approxPositionEpsilon    = 1e-3
	approxOrientationEpsilon = 1e-3

	// Solutions closer than this per joint, modulo 2pi, are duplicates.
	dedupEpsilon = 1e-4

	// Below this |sin(q5)| the wrist is considered singular and the reported solution is
	// one representative of the continuous (q4, q6) family.
	wristSingularityEpsilon = 1e-6

	// 1D search parameters for the family with only axes 2 and 3 parallel.
	searchGridSize     = 512
	searchRefinements  = 60
	searchZeroEpsilon  = 1e-12
	searchValueEpsilon = 1e-10
)

// Solution is a single joint configuration reaching a target pose. Approximate marks
// configurations at or near a singularity, where the solver reports one representative of
// a continuous solution family rather than an isolated root.
type Solution struct {
	Joints      JointAngles
	Approximate bool
}

// Solver computes all joint configurations that reach a target end effector pose, by
// decomposing the kinematic equations according to the model's structural family.
type Solver struct {
	model  *Model
	class  StructuralClass
	logger golog.Logger
}

// NewSolver creates a Solver for the given model. It fails with an UnsupportedGeometry
// error if the model's axis arrangement has no known decomposition.
func NewSolver(model *Model, logger golog.Logger) (*Solver, error) {
	class, err := model.Class()
	if err != nil {
		return nil, err
	}
	return &Solver{model: model, class: class, logger: logger}, nil
}

// candidate is a leaf of the branch tree, prior to validation against forward kinematics.
type candidate struct {
	joints JointAngles
	approx bool
}

// Solve returns every joint configuration that reaches the goal pose, in branch discovery
// order. An unreachable goal yields an empty set and a nil error. Each returned solution
// has been re-validated against forward kinematics; degenerate branches are retained and
// flagged rather than dropped. The context is consulted during iterative search and is the
// only way Solve blocks on anything.
func (ik *Solver) Solve(ctx context.Context, goal spatialmath.Pose) ([]Solution, error) {
	// Strip the base and home transforms so the unknowns are just the six joint rotations.
	stripped := spatialmath.Compose(
		spatialmath.Compose(spatialmath.PoseInverse(ik.model.base), goal),
		spatialmath.PoseInverse(ik.model.home),
	)
	target := spatialmath.NewDualQuaternionFromPose(stripped)

	var candidates []candidate
	var err error
	switch ik.class {
	case ClassSphericalWrist:
		candidates = ik.solveSphericalWrist(target)
	case ClassThreeParallelAxes:
		candidates = ik.solveThreeParallel(target)
	case ClassParallelAxes2And3:
		candidates, err = ik.solveTwoParallel(ctx, target)
	default:
		return nil, NewUnsupportedGeometryError(ik.model.name)
	}
	if err != nil {
		return nil, err
	}
	return ik.validate(goal, candidates), nil
}

// solveSphericalWrist handles arms whose wrist axes meet at a point and whose axes 2 and 3
// are parallel. The wrist center position depends only on the first three joints, giving
// full position/orientation decoupling and up to eight isolated solutions.
func (ik *Solver) solveSphericalWrist(target *spatialmath.DualQuaternion) []candidate {
	axes := ik.model.axes
	h := directions(axes)
	p := points(axes)
	rot06 := target.Rotation()
	center := ik.model.wristCenter
	pWrist := target.TransformPoint(center)

	var candidates []candidate
	theta1s, approx1 := subproblem.RotateToPlane(h[0].Mul(-1), h[1], pWrist.Sub(p[0]), h[1].Dot(center.Sub(p[0])))
	for _, q1 := range theta1s {
		rot1Inv := quat.Conj(axisQuat(h[0], q1))
		u := rotateVec(rot1Inv, pWrist.Sub(p[0]))
		uRem := u.Sub(p[1].Sub(p[0]))

		theta3s, approx3 := subproblem.RotateToDistance(h[2], center.Sub(p[2]), p[1].Sub(p[2]), uRem.Norm())
		for _, q3 := range theta3s {
			elbow := p[2].Sub(p[1]).Add(subproblem.Rotate(h[2], q3, center.Sub(p[2])))
			q2, approx2 := subproblem.RotateOntoVector(h[1], elbow, uRem)

			rot13 := quat.Mul(axisQuat(h[0], q1), quat.Mul(axisQuat(h[1], q2), axisQuat(h[2], q3)))
			rot36 := quat.Mul(quat.Conj(rot13), rot06)

			pairs, approxWrist := subproblem.RotatePair(h[3], rotateVec(rot36, h[5]), h[4], h[5])
			for _, pair := range pairs {
				q4 := -pair[0]
				q5 := pair[1]
				rot45 := quat.Mul(axisQuat(h[3], q4), axisQuat(h[4], q5))
				rot6 := quat.Mul(quat.Conj(rot45), rot36)
				ref := perpendicularComponent(h[4], h[5])
				q6, approx6 := subproblem.RotateOntoVector(h[5], ref, rotateVec(rot6, ref))

				approx := approx1 || approx2 || approx3 || approxWrist || approx6 ||
					math.Abs(math.Sin(q5)) < wristSingularityEpsilon
				candidates = append(candidates, candidate{
					joints: JointAngles{q1, q2, q3, q4, q5, q6},
					approx: approx,
				})
			}
		}
	}
	return candidates
}

// solveThreeParallel handles arms with axes 2, 3 and 4 parallel and axes 5 and 6
// intersecting. The parallel axes preserve their shared direction component through the
// middle of the chain, which decouples q1 and q5 and leaves a planar two-link problem.
func (ik *Solver) solveThreeParallel(target *spatialmath.DualQuaternion) []candidate {
	axes := ik.model.axes
	h := directions(axes)
	p := points(axes)
	rot06 := target.Rotation()
	hShared := h[1]
	s3 := math.Copysign(1, h[2].Dot(hShared))
	s4 := math.Copysign(1, h[3].Dot(hShared))

	meet := ik.model.wristCenter
	pMeet := target.TransformPoint(meet)

	var candidates []candidate
	theta1s, approx1 := subproblem.RotateToPlane(h[0].Mul(-1), hShared, pMeet.Sub(p[0]), hShared.Dot(meet.Sub(p[0])))
	for _, q1 := range theta1s {
		rot1Inv := quat.Conj(axisQuat(h[0], q1))
		u := rotateVec(rot1Inv, pMeet.Sub(p[0]))
		rot16 := quat.Mul(rot1Inv, rot06)

		theta5s, approx5 := subproblem.RotateToPlane(h[4], hShared, h[5], hShared.Dot(rotateVec(rot16, h[5])))
		for _, q5 := range theta5s {
			rot5 := axisQuat(h[4], q5)
			q6, approx6 := subproblem.RotateOntoVector(h[5],
				rotateVec(quat.Conj(rot16), hShared), rotateVec(quat.Conj(rot5), hShared))
			rot6 := axisQuat(h[5], q6)

			// The remaining rotation is about the shared parallel direction.
			rotMid := quat.Mul(rot16, quat.Mul(quat.Conj(rot6), quat.Conj(rot5)))
			ref := perpendicularComponent(h[0], hShared)
			phi, approxPhi := subproblem.RotateOntoVector(hShared, ref, rotateVec(rotMid, ref))

			v := u.Sub(p[1].Sub(p[0])).Sub(rotateVec(rotMid, meet.Sub(p[3])))
			theta3s, approx3 := subproblem.RotateToDistance(h[2], p[3].Sub(p[2]), p[1].Sub(p[2]), v.Norm())
			for _, q3 := range theta3s {
				elbow := p[2].Sub(p[1]).Add(subproblem.Rotate(h[2], q3, p[3].Sub(p[2])))
				q2, approx2 := subproblem.RotateOntoVector(h[1], elbow, v)
				q4 := utils.WrapAngleRad(s4 * (phi - q2 - s3*q3))

				approx := approx1 || approx2 || approx3 || approx5 || approx6 || approxPhi
				candidates = append(candidates, candidate{
					joints: JointAngles{q1, q2, q3, q4, q5, q6},
					approx: approx,
				})
			}
		}
	}
	return candidates
}

// twoParallelSample is the closed-form tail of the two-parallel decomposition for one value
// of q1 on one branch. residual is the single remaining orientation constraint; a root of
// residual as a function of q1 is an exact solution.
type twoParallelSample struct {
	valid    bool
	residual float64
	joints   JointAngles
	approx   bool
}

// solveTwoParallel handles arms with only axes 2 and 3 parallel and axes 5 and 6
// intersecting. One scalar constraint cannot be decoupled, so the solver scans q1 over a
// full revolution on each of the four (q4, q3) branch combinations, brackets sign changes
// of the residual, and refines each bracket by bisection.
func (ik *Solver) solveTwoParallel(ctx context.Context, target *spatialmath.DualQuaternion) ([]candidate, error) {
	var candidates []candidate
	prev := [4]twoParallelSample{}
	step := 2 * math.Pi / searchGridSize

	for i := 0; i <= searchGridSize; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		q1 := -math.Pi + float64(i)*step
		samples := ik.twoParallelBranches(target, q1)
		for b := 0; b < 4; b++ {
			cur := samples[b]
			if !cur.valid {
				prev[b] = cur
				continue
			}
			if math.Abs(cur.residual) < searchValueEpsilon {
				candidates = append(candidates, candidate{joints: cur.joints, approx: cur.approx})
				prev[b] = cur
				continue
			}
			if prev[b].valid && prev[b].residual*cur.residual < 0 {
				if refined, ok := ik.refineTwoParallel(target, q1-step, q1, b); ok {
					candidates = append(candidates, refined)
				}
			}
			prev[b] = cur
		}
	}
	return candidates, nil
}

// refineTwoParallel narrows a bracketed sign change of the branch residual down to a root.
func (ik *Solver) refineTwoParallel(target *spatialmath.DualQuaternion, lo, hi float64, branch int) (candidate, bool) {
	fLo := ik.twoParallelBranches(target, lo)[branch]
	if !fLo.valid {
		return candidate{}, false
	}
	for i := 0; i < searchRefinements; i++ {
		mid := (lo + hi) / 2
		fMid := ik.twoParallelBranches(target, mid)[branch]
		if !fMid.valid {
			return candidate{}, false
		}
		if math.Abs(fMid.residual) < searchZeroEpsilon {
			return candidate{joints: fMid.joints, approx: fMid.approx}, true
		}
		if fLo.residual*fMid.residual < 0 {
			hi = mid
		} else {
			lo = mid
			fLo = fMid
		}
	}
	final := ik.twoParallelBranches(target, (lo+hi)/2)[branch]
	if !final.valid {
		return candidate{}, false
	}
	return candidate{joints: final.joints, approx: final.approx}, true
}

// twoParallelBranches evaluates the closed-form chain q4, q3, q2, q5, q6 for a fixed q1,
// returning one sample per (q4, q3) branch combination in a stable order.
func (ik *Solver) twoParallelBranches(target *spatialmath.DualQuaternion, q1 float64) [4]twoParallelSample {
	axes := ik.model.axes
	h := directions(axes)
	p := points(axes)
	rot06 := target.Rotation()
	meet := ik.model.wristCenter
	pMeet := target.TransformPoint(meet)

	var out [4]twoParallelSample

	rot1Inv := quat.Conj(axisQuat(h[0], q1))
	u := rotateVec(rot1Inv, pMeet.Sub(p[0]))
	rot16 := quat.Mul(rot1Inv, rot06)

	d := h[1].Dot(u) - h[1].Dot(p[3].Sub(p[0]))
	theta4s, approx4 := subproblem.RotateToPlane(h[3], h[1], meet.Sub(p[3]), d)
	uRem := u.Sub(p[1].Sub(p[0]))

	for i4 := 0; i4 < len(theta4s) && i4 < 2; i4++ {
		q4 := theta4s[i4]
		forearm := p[3].Sub(p[2]).Add(subproblem.Rotate(h[3], q4, meet.Sub(p[3])))
		theta3s, approx3 := subproblem.RotateToDistance(h[2], forearm, p[1].Sub(p[2]), uRem.Norm())
		for i3 := 0; i3 < len(theta3s) && i3 < 2; i3++ {
			q3 := theta3s[i3]
			elbow := p[2].Sub(p[1]).Add(subproblem.Rotate(h[2], q3, forearm))
			q2, approx2 := subproblem.RotateOntoVector(h[1], elbow, uRem)

			rot24 := quat.Mul(axisQuat(h[1], q2), quat.Mul(axisQuat(h[2], q3), axisQuat(h[3], q4)))
			rotRem := quat.Mul(quat.Conj(rot24), rot16)
			wristTarget := rotateVec(rotRem, h[5])

			q5, _ := subproblem.RotateOntoVector(h[4], h[5], wristTarget)
			rot5 := axisQuat(h[4], q5)
			ref := perpendicularComponent(h[4], h[5])
			q6, approx6 := subproblem.RotateOntoVector(h[5], ref,
				rotateVec(quat.Mul(quat.Conj(rot5), rotRem), ref))

			// The one constraint the chain has not consumed: rotating h6 about h5 cannot
			// change its h5 component, so any mismatch there is the q1 search residual.
			residual := h[4].Dot(wristTarget) - h[4].Dot(h[5])

			out[i4*2+i3] = twoParallelSample{
				valid:    true,
				residual: residual,
				joints:   JointAngles{q1, q2, q3, q4, q5, q6},
				approx:   approx4 || approx3 || approx2 || approx6,
			}
		}
	}
	return out
}

// validate re-checks every candidate against forward kinematics, wraps angles, and removes
// duplicate branches, preserving discovery order.
func (ik *Solver) validate(goal spatialmath.Pose, candidates []candidate) []Solution {
	solutions := make([]Solution, 0, len(candidates))
	for _, c := range candidates {
		for i := range c.joints {
			c.joints[i] = utils.WrapAngleRad(c.joints[i])
		}
		fk := ik.model.Transform(c.joints)
		posErr := fk.Point().Sub(goal.Point()).Norm()
		rotErr := spatialmath.AngleBetween(fk.Orientation(), goal.Orientation())

		posTol, rotTol := defaultPositionEpsilon, defaultOrientationEpsilon
		if c.approx {
			posTol, rotTol = approxPositionEpsilon, approxOrientationEpsilon
		}
		if posErr > posTol || rotErr > rotTol {
			ik.logger.Debugw("discarding branch", "joints", c.joints, "posErr", posErr, "rotErr", rotErr)
			continue
		}

		duplicate := false
		for _, existing := range solutions {
			same := true
			for i := range c.joints {
				if utils.AngleDiffRad(existing.Joints[i], c.joints[i]) > dedupEpsilon {
					same = false
					break
				}
			}
			if same {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		solutions = append(solutions, Solution{Joints: c.joints, Approximate: c.approx})
	}
	return solutions
}

func directions(axes [NumJoints]JointAxis) [NumJoints]r3.Vector {
	var h [NumJoints]r3.Vector
	for i := range axes {
		h[i] = axes[i].Direction
	}
	return h
}

func points(axes [NumJoints]JointAxis) [NumJoints]r3.Vector {
	var p [NumJoints]r3.Vector
	for i := range axes {
		p[i] = axes[i].Point
	}
	return p
}

func axisQuat(k r3.Vector, theta float64) quat.Number {
	return spatialmath.NewR4AAFromAxis(theta, k).ToQuat()
}

func rotateVec(q quat.Number, v r3.Vector) r3.Vector {
	rotated := quat.Mul(quat.Mul(q, quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}), quat.Conj(q))
	return r3.Vector{X: rotated.Imag, Y: rotated.Jmag, Z: rotated.Kmag}
}

// perpendicularComponent returns the unit component of v perpendicular to k, falling back
// to an arbitrary perpendicular unit vector when v is parallel to k.
func perpendicularComponent(v, k r3.Vector) r3.Vector {
	perp := v.Sub(k.Mul(v.Dot(k)))
	if perp.Norm() < 1e-9 {
		perp = k.Cross(r3.Vector{X: 1, Y: 0, Z: 0})
		if perp.Norm() < 1e-9 {
			perp = k.Cross(r3.Vector{X: 0, Y: 1, Z: 0})
		}
	}
	return perp.Normalize()
}
