// Package utils contains small numeric helpers shared across the kinematics packages.
package utils

import (
	"math"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// AngleDiffDeg returns the closest difference from the two given
// angles. The arguments are commutative.
func AngleDiffDeg(a1, a2 float64) float64 {
	return float64(180) - math.Abs(math.Abs(a1-a2)-float64(180))
}

// AngleDiffRad returns the closest difference between two angles in radians,
// accounting for 2pi periodicity. The arguments are commutative.
func AngleDiffRad(a1, a2 float64) float64 {
	return math.Pi - math.Abs(math.Abs(a1-a2)-math.Pi)
}

// WrapAngleRad wraps an angle to the interval (-pi, pi].
func WrapAngleRad(a float64) float64 {
	wrapped := math.Mod(a, 2*math.Pi)
	if wrapped > math.Pi {
		wrapped -= 2 * math.Pi
	} else if wrapped <= -math.Pi {
		wrapped += 2 * math.Pi
	}
	return wrapped
}

// Float64AlmostEqual determines if two float64s are within a given epsilon of each other.
func Float64AlmostEqual(v1, v2, epsilon float64) bool {
	return math.Abs(v1-v2) <= epsilon
}

// Clamp returns min if x is less than min, max if x is greater than max, and x otherwise.
func Clamp(x, min, max float64) float64 {
	return math.Min(math.Max(x, min), max)
}
