package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestDegRadConversions(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, math.Pi)
	test.That(t, RadToDeg(math.Pi/2), test.ShouldAlmostEqual, 90)
	test.That(t, RadToDeg(DegToRad(-37.5)), test.ShouldAlmostEqual, -37.5)
}

func TestAngleDiff(t *testing.T) {
	test.That(t, AngleDiffRad(0, math.Pi/2), test.ShouldAlmostEqual, math.Pi/2)
	test.That(t, AngleDiffRad(-math.Pi, math.Pi), test.ShouldAlmostEqual, 0)
	test.That(t, AngleDiffRad(0.1, 2*math.Pi-0.1), test.ShouldAlmostEqual, 0.2)
	test.That(t, AngleDiffDeg(350, 10), test.ShouldAlmostEqual, 20)
}

func TestWrapAngleRad(t *testing.T) {
	test.That(t, WrapAngleRad(0), test.ShouldAlmostEqual, 0)
	test.That(t, WrapAngleRad(3*math.Pi), test.ShouldAlmostEqual, math.Pi)
	test.That(t, WrapAngleRad(-3*math.Pi), test.ShouldAlmostEqual, math.Pi)
	test.That(t, WrapAngleRad(math.Pi/4+4*math.Pi), test.ShouldAlmostEqual, math.Pi/4)
	test.That(t, WrapAngleRad(-math.Pi/4), test.ShouldAlmostEqual, -math.Pi/4)
}

func TestClamp(t *testing.T) {
	test.That(t, Clamp(5, 0, 1), test.ShouldEqual, 1)
	test.That(t, Clamp(-5, 0, 1), test.ShouldEqual, 0)
	test.That(t, Clamp(0.5, 0, 1), test.ShouldEqual, 0.5)
}
