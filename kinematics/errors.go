package kinematics

import (
	"github.com/pkg/errors"
)

// ErrNilPose is returned when a model is constructed with a nil base or home pose.
var ErrNilPose = errors.New("pose is not allowed to be nil")

// NewIncorrectDoFError returns an error describing a joint count mismatch.
func NewIncorrectDoFError(actual, expected int) error {
	return errors.Errorf("need exactly %d joints, got %d", expected, actual)
}

// NewInvalidGeometryError returns an error indicating that a model's axis data is malformed
// and the model cannot be constructed.
func NewInvalidGeometryError(joint int, reason string) error {
	return errors.Errorf("invalid geometry for joint %d: %s", joint, reason)
}

// NewUnsupportedGeometryError returns an error indicating that no known decomposition
// applies to the robot's axis arrangement.
func NewUnsupportedGeometryError(name string) error {
	return errors.Errorf("robot %q has no axis structure with a known closed-form decomposition", name)
}
