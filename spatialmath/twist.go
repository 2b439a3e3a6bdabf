package spatialmath

import "github.com/golang/geo/r3"

// Twist is a spatial velocity: a linear component and an angular component, both expressed in
// the same coordinate frame. It is the physical quantity a single Jacobian column represents --
// the instantaneous motion induced at a point by a unit rate of change of one joint value.
type Twist struct {
	Linear  r3.Vector
	Angular r3.Vector
}

// Vec6 returns the twist as a 6-element slice, translation first then rotation, matching the
// column layout used by Robot.Jacobian and the IK pose error.
func (t Twist) Vec6() [6]float64 {
	return [6]float64{t.Linear.X, t.Linear.Y, t.Linear.Z, t.Angular.X, t.Angular.Y, t.Angular.Z}
}

// RevoluteTwist returns the unit twist induced at world point p by a unit angular rate about an
// axis â anchored at world point o: [â × (p - o); â]. This is exactly the Jacobian column rule
// for a revolute (or continuous) joint.
func RevoluteTwist(axis, jointOrigin, p r3.Vector) Twist {
	return Twist{Linear: axis.Cross(p.Sub(jointOrigin)), Angular: axis}
}

// PrismaticTwist returns the unit twist induced by a unit translation rate along axis â:
// [â; 0]. This is exactly the Jacobian column rule for a prismatic joint.
func PrismaticTwist(axis r3.Vector) Twist {
	return Twist{Linear: axis, Angular: r3.Vector{}}
}
