package kinematics

import (
	"github.com/golang/geo/r3"

	"github.com/mattj23/industrial-robots/spatialmath"
	"github.com/mattj23/industrial-robots/subproblem"
)

// Transform computes the pose of the end effector in the world frame for the given joint
// angles. This is forward kinematics: each joint contributes a rotation about its axis line,
// anchored at the axis's reference point, and the contributions are composed in joint order
// between the base and home transforms. It is a pure function of its inputs and is defined
// for any real angles.
func (m *Model) Transform(angles JointAngles) spatialmath.Pose {
	pose := m.base
	for i, axis := range m.axes {
		pose = spatialmath.Compose(pose, jointPose(axis, angles[i]))
	}
	return spatialmath.Compose(pose, m.home)
}

// JointPositions returns the world-frame locations of each joint axis's reference point,
// followed by the end effector position, for the given joint angles. Useful for rendering
// the arm or checking clearances link by link.
func (m *Model) JointPositions(angles JointAngles) []r3.Vector {
	positions := make([]r3.Vector, 0, NumJoints+1)
	pose := spatialmath.NewDualQuaternionFromPose(m.base)
	for i, axis := range m.axes {
		positions = append(positions, pose.TransformPoint(axis.Point))
		pose = spatialmath.NewDualQuaternionFromPose(spatialmath.Compose(pose, jointPose(axis, angles[i])))
	}
	end := spatialmath.Compose(pose, m.home)
	positions = append(positions, end.Point())
	return positions
}

// jointPose is the rigid transform of a rotation about the axis line: points on the axis
// stay fixed, everything else rotates by theta around it.
func jointPose(axis JointAxis, theta float64) spatialmath.Pose {
	translation := axis.Point.Sub(subproblem.Rotate(axis.Direction, theta, axis.Point))
	return spatialmath.NewPose(translation, spatialmath.NewR4AAFromAxis(theta, axis.Direction))
}
