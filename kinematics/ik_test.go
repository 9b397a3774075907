package kinematics_test

import (
	"context"
	"math"
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/mattj23/industrial-robots/kinematics"
	"github.com/mattj23/industrial-robots/robots"
	"github.com/mattj23/industrial-robots/spatialmath"
	"github.com/mattj23/industrial-robots/utils"
)

func solverFor(t *testing.T, robot string) (*kinematics.Model, *kinematics.Solver) {
	t.Helper()
	model, err := robots.Lookup(robot)
	test.That(t, err, test.ShouldBeNil)
	solver, err := kinematics.NewSolver(model, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	return model, solver
}

// checkRoundTrip solves for the pose reached by joints and verifies that every solution
// reproduces that pose and that the original configuration is among the solutions.
func checkRoundTrip(t *testing.T, robot string, joints kinematics.JointAngles) []kinematics.Solution {
	t.Helper()
	model, solver := solverFor(t, robot)
	goal := model.Transform(joints)

	solutions, err := solver.Solve(context.Background(), goal)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, solutions, test.ShouldNotBeEmpty)

	found := false
	for _, sol := range solutions {
		fk := model.Transform(sol.Joints)
		test.That(t, fk.Point().Sub(goal.Point()).Norm(), test.ShouldAlmostEqual, 0, 1e-3)
		test.That(t, spatialmath.AngleBetween(fk.Orientation(), goal.Orientation()),
			test.ShouldAlmostEqual, 0, 1e-3)
		match := true
		for i := range joints {
			if utils.AngleDiffRad(joints[i], sol.Joints[i]) > 1e-4 {
				match = false
				break
			}
		}
		if match {
			found = true
		}
	}
	test.That(t, found, test.ShouldBeTrue)
	return solutions
}

func TestSphericalWristRoundTrip(t *testing.T) {
	for _, joints := range []kinematics.JointAngles{
		{0.2, 0.3, -0.5, 0.4, 0.6, -0.3},
		{-1.1, 0.5, 0.7, 1.0, -0.8, 2.0},
		{0.4, 0.3, -0.35, 0.6, 1.0, -0.5},
		{2.5, -0.4, 0.2, -2.0, 0.5, 1.5},
	} {
		checkRoundTrip(t, "lrmate200id", joints)
	}
	checkRoundTrip(t, "irb6640", kinematics.JointAngles{0.3, 0.4, -0.6, 0.8, 0.9, -1.2})
}

func TestSphericalWristSolutionCount(t *testing.T) {
	// A target in the workspace interior, away from all singularities, is reached by
	// exactly eight configurations: two shoulder, two elbow, two wrist branches.
	solutions := checkRoundTrip(t, "lrmate200id", kinematics.JointAngles{0.4, 0.3, -0.35, 0.6, 1.0, -0.5})
	test.That(t, solutions, test.ShouldHaveLength, 8)
	for _, sol := range solutions {
		test.That(t, sol.Approximate, test.ShouldBeFalse)
	}
}

func TestThreeParallelRoundTrip(t *testing.T) {
	for _, joints := range []kinematics.JointAngles{
		{0.2, -0.6, 0.8, 0.3, 0.5, -0.2},
		{-0.9, -1.1, 1.4, -0.5, 1.2, 0.7},
		{1.5, -0.3, 0.5, 1.0, -0.9, -1.8},
	} {
		checkRoundTrip(t, "ur5e", joints)
	}
}

func TestTwoParallelRoundTrip(t *testing.T) {
	for _, joints := range []kinematics.JointAngles{
		{0.3, 0.4, 0.3, -0.5, 0.7, 0.2},
		{-0.8, 0.2, 0.9, 0.6, -1.1, 1.3},
	} {
		checkRoundTrip(t, "crx5ia", joints)
	}
	checkRoundTrip(t, "crx10ia", kinematics.JointAngles{0.5, 0.3, -0.4, 0.8, 0.9, -0.6})
}

func TestUnreachableTarget(t *testing.T) {
	_, solver := solverFor(t, "lrmate200id")
	goal := spatialmath.NewPoseFromPoint(r3.Vector{X: 5000, Y: 0, Z: 5000})
	solutions, err := solver.Solve(context.Background(), goal)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, solutions, test.ShouldBeEmpty)
}

func TestWristSingularity(t *testing.T) {
	// With the fifth joint at zero, axes 4 and 6 align and a continuum of (q4, q6) pairs
	// reaches the target. The solver reports flagged representatives rather than nothing.
	model, solver := solverFor(t, "lrmate200id")
	joints := kinematics.JointAngles{0.3, 0.2, -0.3, 0.25, 0, 0.4}
	goal := model.Transform(joints)

	solutions, err := solver.Solve(context.Background(), goal)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, solutions, test.ShouldNotBeEmpty)

	flagged := false
	for _, sol := range solutions {
		fk := model.Transform(sol.Joints)
		test.That(t, fk.Point().Sub(goal.Point()).Norm(), test.ShouldAlmostEqual, 0, 1e-3)
		if sol.Approximate {
			flagged = true
		}
	}
	test.That(t, flagged, test.ShouldBeTrue)
}

func TestWristSingularityApproach(t *testing.T) {
	// As the fifth joint approaches zero the two wrist branches draw together but stay
	// distinct. The solver must keep reporting both all the way down, so that the branch
	// containing the true configuration never drops out discontinuously.
	model, solver := solverFor(t, "lrmate200id")
	for _, q5 := range []float64{3e-4, 1.5e-4, 1e-4, 5e-5, 2e-5, 1e-5} {
		joints := kinematics.JointAngles{0.3, 0.2, -0.3, 0.25, q5, 0.4}
		goal := model.Transform(joints)

		solutions, err := solver.Solve(context.Background(), goal)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, solutions, test.ShouldHaveLength, 8)

		best := math.Inf(1)
		for _, sol := range solutions {
			worst := 0.0
			for i := range joints {
				if diff := utils.AngleDiffRad(joints[i], sol.Joints[i]); diff > worst {
					worst = diff
				}
			}
			if worst < best {
				best = worst
			}
		}
		test.That(t, best, test.ShouldBeLessThan, 1e-6)
	}
}

func TestSolveDeterministic(t *testing.T) {
	model, solver := solverFor(t, "lrmate200id")
	goal := model.Transform(kinematics.JointAngles{0.4, 0.3, -0.35, 0.6, 1.0, -0.5})
	first, err := solver.Solve(context.Background(), goal)
	test.That(t, err, test.ShouldBeNil)
	second, err := solver.Solve(context.Background(), goal)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, second, test.ShouldResemble, first)
}

func TestNewSolverRejectsGeneric(t *testing.T) {
	model := genericModel(t)
	_, err := kinematics.NewSolver(model, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "skewbot")
}

func TestSolveCancelled(t *testing.T) {
	model, solver := solverFor(t, "crx5ia")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	goal := model.Transform(kinematics.JointAngles{0.3, 0.4, 0.3, -0.5, 0.7, 0.2})
	_, err := solver.Solve(ctx, goal)
	test.That(t, err, test.ShouldNotBeNil)
}
