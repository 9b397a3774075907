package robots_test

import (
	"testing"

	"go.viam.com/test"

	"github.com/mattj23/industrial-robots/kinematics"
	"github.com/mattj23/industrial-robots/robots"
	"github.com/mattj23/industrial-robots/utils"
)

func TestLookup(t *testing.T) {
	for _, name := range []string{"lrmate200id", "crx5ia", "crx10ia", "ur5e", "irb6640"} {
		model, err := robots.Lookup(name)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, model.Name(), test.ShouldEqual, name)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := robots.Lookup("pr2")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "pr2")
}

func TestNames(t *testing.T) {
	names := robots.Names()
	test.That(t, names, test.ShouldResemble,
		[]string{"crx10ia", "crx5ia", "irb6640", "lrmate200id", "ur5e"})
}

func TestRegistryModelsAreSupported(t *testing.T) {
	for _, name := range robots.Names() {
		model, err := robots.Lookup(name)
		test.That(t, err, test.ShouldBeNil)
		_, err = model.Class()
		test.That(t, err, test.ShouldBeNil)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	model, err := robots.Lookup("ur5e")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, func() { robots.Register(model) }, test.ShouldPanic)
}

func TestFanucJointConversions(t *testing.T) {
	rad := robots.FanucJointsToRadians([6]float64{10, 30, 15, -20, 45, 90})
	test.That(t, rad[0], test.ShouldAlmostEqual, utils.DegToRad(10))
	test.That(t, rad[1], test.ShouldAlmostEqual, utils.DegToRad(30))
	// The controller reports J3 relative to the base plane, not the J2 link.
	test.That(t, rad[2], test.ShouldAlmostEqual, utils.DegToRad(45))
	test.That(t, rad[5], test.ShouldAlmostEqual, utils.DegToRad(90))

	back := robots.FanucRadiansToJoints(rad)
	for i, want := range [6]float64{10, 30, 15, -20, 45, 90} {
		test.That(t, back[i], test.ShouldAlmostEqual, want, 1e-9)
	}
}

func TestLimitsPopulated(t *testing.T) {
	model, err := robots.Lookup("lrmate200id")
	test.That(t, err, test.ShouldBeNil)
	dof := model.DoF()
	test.That(t, dof, test.ShouldHaveLength, kinematics.NumJoints)
	test.That(t, utils.RadToDeg(dof[0].Max), test.ShouldAlmostEqual, 170, 1e-9)
	test.That(t, utils.RadToDeg(dof[1].Min), test.ShouldAlmostEqual, -100, 1e-9)
}
