package kinematics_test

import (
	"testing"

	"go.viam.com/test"

	"github.com/mattj23/industrial-robots/kinematics"
	"github.com/mattj23/industrial-robots/robots"
	"github.com/mattj23/industrial-robots/spatialmath"
)

// poseFixture pairs controller joint angles in degrees with the expected flange pose as a
// row-major homogeneous matrix, as recorded from the vendor's own kinematic software.
type poseFixture struct {
	joints [kinematics.NumJoints]float64
	mat    [16]float64
}

func checkFixture(t *testing.T, pose spatialmath.Pose, mat [16]float64) {
	t.Helper()
	pt := pose.Point()
	test.That(t, pt.X, test.ShouldAlmostEqual, mat[3], 1e-6)
	test.That(t, pt.Y, test.ShouldAlmostEqual, mat[7], 1e-6)
	test.That(t, pt.Z, test.ShouldAlmostEqual, mat[11], 1e-6)
	rm := pose.Orientation().RotationMatrix()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			test.That(t, rm.At(row, col), test.ShouldAlmostEqual, mat[row*4+col], 1e-6)
		}
	}
}

func TestLRMateAtHome(t *testing.T) {
	model, err := robots.Lookup("lrmate200id")
	test.That(t, err, test.ShouldBeNil)
	pose := model.Transform(kinematics.JointAngles{})
	checkFixture(t, pose, [16]float64{
		0, 0, 1, 465,
		0, -1, 0, 0,
		1, 0, 0, 365,
		0, 0, 0, 1,
	})
}

func TestLRMateSingleJointPoses(t *testing.T) {
	fixtures := []poseFixture{
		{[6]float64{-15, 0, 0, 0, 0, 0}, [16]float64{0.0, -0.2588190451, 0.9659258263, 449.1555092244, -0.0, -0.9659258263, -0.2588190451, -120.3508559727, 1.0, -0.0, -0.0, 365.0, 0, 0, 0, 1}},
		{[6]float64{20, 0, 0, 0, 0, 0}, [16]float64{0.0, 0.3420201433, 0.9396926208, 436.9570686654, -0.0, -0.9396926208, 0.3420201433, 159.0393666464, 1.0, -0.0, -0.0, 365.0, 0, 0, 0, 1}},
		{[6]float64{0, -15, 0, 0, 0, 0}, [16]float64{0.0, 0.0, 1.0, 379.5897151162, -0.0, -1.0, 0.0, 0.0, 1.0, -0.0, -0.0, 353.7555226754, 0, 0, 0, 1}},
		{[6]float64{0, 20, 0, 0, 0, 0}, [16]float64{0.0, 0.0, 1.0, 577.8666472975, -0.0, -1.0, 0.0, 0.0, 1.0, -0.0, -0.0, 345.0985648593, 0, 0, 0, 1}},
		{[6]float64{0, 0, -15, 0, 0, 0}, [16]float64{0.2588190451, 0.0, 0.9659258263, 459.9178844886, -0.0, -1.0, 0.0, 0.0, 0.9659258263, -0.0, -0.2588190451, 256.3975002026, 0, 0, 0, 1}},
		{[6]float64{0, 0, 20, 0, 0, 0}, [16]float64{-0.3420201433, 0.0, 0.9396926208, 428.0017326098, -0.0, -1.0, 0.0, -0.0, 0.9396926208, -0.0, 0.3420201433, 504.8276012077, 0, 0, 0, 1}},
		{[6]float64{0, 0, 0, -15, 0, 0}, [16]float64{0.0, 0.0, 1.0, 465.0, -0.2588190451, -0.9659258263, 0.0, 0.0, 0.9659258263, -0.2588190451, -0.0, 365.0, 0, 0, 0, 1}},
		{[6]float64{0, 0, 0, 20, 0, 0}, [16]float64{0.0, 0.0, 1.0, 465.0, 0.3420201433, -0.9396926208, 0.0, 0.0, 0.9396926208, 0.3420201433, -0.0, 365.0, 0, 0, 0, 1}},
		{[6]float64{0, 0, 0, 0, -15, 0}, [16]float64{0.2588190451, 0.0, 0.9659258263, 462.2740661031, -0.0, -1.0, 0.0, 0.0, 0.9659258263, -0.0, -0.2588190451, 344.2944763918, 0, 0, 0, 1}},
		{[6]float64{0, 0, 0, 0, 20, 0}, [16]float64{-0.3420201433, 0.0, 0.9396926208, 460.1754096629, -0.0, -1.0, 0.0, 0.0, 0.9396926208, -0.0, 0.3420201433, 392.3616114661, 0, 0, 0, 1}},
		{[6]float64{0, 0, 0, 0, 0, -15}, [16]float64{0.0, 0.0, 1.0, 465.0, -0.2588190451, -0.9659258263, 0.0, 0.0, 0.9659258263, -0.2588190451, -0.0, 365.0, 0, 0, 0, 1}},
		{[6]float64{0, 0, 0, 0, 0, 20}, [16]float64{0.0, 0.0, 1.0, 465.0, 0.3420201433, -0.9396926208, 0.0, 0.0, 0.9396926208, 0.3420201433, -0.0, 365.0, 0, 0, 0, 1}},
	}

	model, err := robots.Lookup("lrmate200id")
	test.That(t, err, test.ShouldBeNil)
	for _, fixture := range fixtures {
		pose := model.Transform(robots.FanucJointsToRadians(fixture.joints))
		checkFixture(t, pose, fixture.mat)
	}
}

func TestCRX5iAPoses(t *testing.T) {
	fixtures := []poseFixture{
		{[6]float64{0, 0, 0, 0, 0, 0}, [16]float64{0.0, 0.0, 1.0, 575.0, 0.0, -1.0, 0.0, -130.0, 1.0, 0.0, 0.0, 410.0, 0, 0, 0, 1}},
		{[6]float64{10, 0, 0, 0, 0, 0}, [16]float64{0.0, 0.1736481776669304, 0.984807753012208, 588.8387210787206, 0.0, -0.984807753012208, 0.1736481776669304, -28.17730573310209, 1.0, 0.0, 0.0, 410.0, 0, 0, 0, 1}},
		{[6]float64{0, 10, 0, 0, 0, 0}, [16]float64{0.0, 0.0, 1.0, 646.1957528434414, 0.0, -1.0, 0.0, -130.0, 1.0, 0.0, 0.0, 403.7711787350052, 0, 0, 0, 1}},
		{[6]float64{0, 0, 10, 0, 0, 0}, [16]float64{-0.17364817766693028, 0.0, 0.984807753012208, 566.2644579820196, 0.0, -1.0, 0.0, -130.0, 0.984807753012208, 0.0, 0.17364817766693028, 509.84770215848494, 0, 0, 0, 1}},
		{[6]float64{0, 0, 0, 10, 0, 0}, [16]float64{0.0, 0.0, 1.0, 575.0, 0.17364817766693028, -0.984807753012208, 0.0, -128.02500789158705, 0.984807753012208, 0.17364817766693028, 0.0, 432.5742630967009, 0, 0, 0, 1}},
		{[6]float64{0, 0, 0, 0, 10, 0}, [16]float64{-0.17364817766693028, 0.0, 0.984807753012208, 572.7971241867701, 0.0, -1.0, 0.0, -130.0, 0.984807753012208, 0.0, 0.17364817766693028, 435.1789857617049, 0, 0, 0, 1}},
		{[6]float64{0, 0, 0, 0, 0, 10}, [16]float64{0.0, 0.0, 1.0, 575.0, 0.17364817766693028, -0.984807753012208, 0.0, -130.0, 0.984807753012208, 0.17364817766693028, 0.0, 410.0, 0, 0, 0, 1}},
	}

	model, err := robots.Lookup("crx5ia")
	test.That(t, err, test.ShouldBeNil)
	for _, fixture := range fixtures {
		pose := model.Transform(robots.FanucJointsToRadians(fixture.joints))
		checkFixture(t, pose, fixture.mat)
	}
}

func TestUR5eAtZero(t *testing.T) {
	model, err := robots.Lookup("ur5e")
	test.That(t, err, test.ShouldBeNil)
	pose := model.Transform(kinematics.JointAngles{})
	checkFixture(t, pose, [16]float64{
		1, 0, 0, -817.2,
		0, 0, -1, -232.9,
		0, 1, 0, 62.8,
		0, 0, 0, 1,
	})
}

func TestJointPositions(t *testing.T) {
	model, err := robots.Lookup("lrmate200id")
	test.That(t, err, test.ShouldBeNil)
	positions := model.JointPositions(kinematics.JointAngles{})
	test.That(t, positions, test.ShouldHaveLength, kinematics.NumJoints+1)

	// At zero everything sits at the axis reference points, ending at the flange.
	test.That(t, positions[0].Norm(), test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, positions[6].X, test.ShouldAlmostEqual, 465, 1e-9)
	test.That(t, positions[6].Z, test.ShouldAlmostEqual, 365, 1e-9)
}
