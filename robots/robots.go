// Package robots is a registry of ready-made kinematic models for common six axis
// industrial arms. Models are built once at init time from published datasheet geometry
// and retrieved by name.
package robots

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/mattj23/industrial-robots/kinematics"
	"github.com/mattj23/industrial-robots/spatialmath"
	"github.com/mattj23/industrial-robots/utils"
)

var registry = map[string]*kinematics.Model{}

// Register adds a model to the registry under its name, making it available to Lookup.
// Registering the same name twice is a programming error and panics.
func Register(model *kinematics.Model) {
	if _, ok := registry[model.Name()]; ok {
		panic(errors.Errorf("robot %q is already registered", model.Name()))
	}
	registry[model.Name()] = model
}

// NewUnknownRobotError is returned by Lookup for a name with no registered model.
func NewUnknownRobotError(name string) error {
	return errors.Errorf("no robot named %q in the registry", name)
}

// Lookup returns the registered model for the given name.
func Lookup(name string) (*kinematics.Model, error) {
	model, ok := registry[name]
	if !ok {
		return nil, NewUnknownRobotError(name)
	}
	return model, nil
}

// Names returns all registered robot names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registry data is static, so a construction failure here is a programming error.
func mustModel(model *kinematics.Model, err error) *kinematics.Model {
	if err != nil {
		panic(err)
	}
	return model
}

func mustRotation(m []float64) *spatialmath.RotationMatrix {
	rm, err := spatialmath.NewRotationMatrix(m)
	if err != nil {
		panic(err)
	}
	return rm
}

// degLimits builds joint limits from min/max pairs given in degrees.
func degLimits(pairs [kinematics.NumJoints][2]float64) []kinematics.Limit {
	limits := make([]kinematics.Limit, 0, len(pairs))
	for _, pair := range pairs {
		limits = append(limits, kinematics.Limit{
			Min: utils.DegToRad(pair[0]),
			Max: utils.DegToRad(pair[1]),
		})
	}
	return limits
}
