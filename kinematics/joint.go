package kinematics

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/a-price/robotKin/spatialmath"
)

// JointKind enumerates the supported joint types. Continuous behaves identically to Revolute for
// the instantaneous twist and effective transform; the only difference is that SetValue never
// clamps a continuous joint's value.
type JointKind int

const (
	Revolute JointKind = iota
	Continuous
	Prismatic
	Fixed
	Floating
	Planar
)

func (k JointKind) String() string {
	switch k {
	case Revolute:
		return "revolute"
	case Continuous:
		return "continuous"
	case Prismatic:
		return "prismatic"
	case Fixed:
		return "fixed"
	case Floating:
		return "floating"
	case Planar:
		return "planar"
	default:
		return "unknown"
	}
}

// DoF returns the number of scalar values the joint kind carries: 0 for fixed, 1 for
// revolute/continuous/prismatic, 3 for planar (two in-plane translations, one rotation about the
// plane normal), 6 for floating (translation plus rotation vector).
func (k JointKind) DoF() int {
	switch k {
	case Fixed:
		return 0
	case Planar:
		return 3
	case Floating:
		return 6
	default:
		return 1
	}
}

// Joint is a Frame that additionally carries an axis, a kind, a vector of scalar values (its
// articulated degrees of freedom), optional limits, and a mass/center-of-mass pair used by
// Robot.Mass / Robot.CenterOfMass.
type Joint interface {
	Frame

	// ID returns the joint's stable index, assigned by Robot.Finalize. It is the value
	// Robot.Jacobian, Robot.JointByIndex and the IK engine use to name a joint.
	ID() int
	setID(int)

	Kind() JointKind
	Axis() r3.Vector
	DoF() int

	// Value and SetValue are the single-DoF accessors used by revolute, continuous and
	// prismatic joints. Calling them on a joint whose DoF() != 1 is a programmer error and
	// returns/accepts the first value only.
	Value() float64
	SetValue(v float64)

	// Values and SetValues are the vectorized accessors, length DoF(); used directly by planar
	// and floating joints and by Linkage.Values/SetValues for every joint uniformly.
	Values() []float64
	SetValues(v []float64)

	Min() float64
	Max() float64

	Mass() float64
	COM() r3.Vector

	// OutputPose returns the joint's effective local transform: its fixed local pose composed
	// with the displacement implied by its current value(s). This is what Frame.refresh
	// composes with the anchor's world pose; it is also what URDF-style loaders call
	// "relative to the joint's own base" when describing the output frame.
	OutputPose() spatialmath.Pose
}

type joint struct {
	baseFrame
	idx    int
	kind   JointKind
	axis   r3.Vector
	values []float64
	min    float64
	max    float64
	mass   float64
	com    r3.Vector
}

// NewJoint constructs a Joint of the given kind, anchored to parent with the given fixed local
// pose (the joint's origin transform before any displacement) and unit axis. min/max are ignored
// for continuous, fixed, planar and floating kinds.
func NewJoint(name string, kind JointKind, axis r3.Vector, local spatialmath.Pose, parent Frame, min, max, mass float64, com r3.Vector) Joint {
	if axis.Norm() > 1e-12 {
		axis = axis.Normalize()
	} else if kind == Revolute || kind == Continuous || kind == Prismatic {
		axis = r3.Vector{Z: 1}
	}
	j := &joint{
		baseFrame: *newFrame(name, local, parent),
		kind:      kind,
		axis:      axis,
		values:    make([]float64, kind.DoF()),
		min:       min,
		max:       max,
		mass:      mass,
		com:       com,
	}
	return j
}

func (j *joint) ID() int        { return j.idx }
func (j *joint) setID(id int) { j.idx = id }

func (j *joint) Kind() JointKind { return j.kind }
func (j *joint) Axis() r3.Vector { return j.axis }
func (j *joint) DoF() int        { return j.kind.DoF() }

func (j *joint) Value() float64 {
	if len(j.values) == 0 {
		return 0
	}
	return j.values[0]
}

func (j *joint) SetValue(v float64) {
	if len(j.values) == 0 {
		return
	}
	if j.kind == Revolute || j.kind == Prismatic {
		if v < j.min {
			v = j.min
		}
		if v > j.max {
			v = j.max
		}
	}
	j.values[0] = v
	j.setDirty()
}

func (j *joint) Values() []float64 {
	out := make([]float64, len(j.values))
	copy(out, j.values)
	return out
}

func (j *joint) SetValues(v []float64) {
	n := len(j.values)
	if len(v) < n {
		n = len(v)
	}
	copy(j.values, v[:n])
	j.setDirty()
}

func (j *joint) Min() float64 { return j.min }
func (j *joint) Max() float64 { return j.max }

func (j *joint) Mass() float64    { return j.mass }
func (j *joint) COM() r3.Vector   { return j.com }

// OutputPose returns the fixed local pose composed with the kind-specific displacement.
func (j *joint) OutputPose() spatialmath.Pose {
	return spatialmath.Compose(j.baseFrame.LocalPose(), j.displacement())
}

func (j *joint) displacement() spatialmath.Pose {
	switch j.kind {
	case Revolute, Continuous:
		return spatialmath.NewPoseFromOrientation(axisRotation(j.axis, j.values[0]))
	case Prismatic:
		return spatialmath.NewPoseFromPoint(j.axis.Mul(j.values[0]))
	case Fixed:
		return spatialmath.NewZeroPose()
	case Planar:
		u, v := orthonormalBasis(j.axis)
		translation := u.Mul(j.values[0]).Add(v.Mul(j.values[1]))
		return spatialmath.NewPose(translation, axisRotation(j.axis, j.values[2]))
	case Floating:
		translation := r3.Vector{X: j.values[0], Y: j.values[1], Z: j.values[2]}
		rotVec := r3.Vector{X: j.values[3], Y: j.values[4], Z: j.values[5]}
		return spatialmath.NewPose(translation, spatialmath.R3ToR4(rotVec))
	default:
		return spatialmath.NewZeroPose()
	}
}

// refresh overrides baseFrame.refresh to compose through the effective (displaced) local pose
// rather than the raw fixed local pose.
func (j *joint) refresh() {
	if j.anchorFrame == nil {
		j.world = j.OutputPose()
	} else {
		j.world = spatialmath.Compose(j.anchorFrame.WorldPose(), j.OutputPose())
	}
	j.dirtyFlag = false
}

func (j *joint) WorldPose() spatialmath.Pose {
	if j.stale() {
		j.refresh()
	}
	return j.world
}

// axisRotation returns the orientation of a right-handed rotation by angle radians about axis.
func axisRotation(axis r3.Vector, angle float64) spatialmath.Orientation {
	half := angle / 2
	s := math.Sin(half)
	return &r4aaOrientation{
		q: quat.Number{Real: math.Cos(half), Imag: axis.X * s, Jmag: axis.Y * s, Kmag: axis.Z * s},
	}
}

// r4aaOrientation is a minimal Orientation wrapper around a quaternion already known to be unit
// norm, used internally to avoid a public dependency from kinematics back into axis-angle
// construction details that belong to spatialmath.
type r4aaOrientation struct {
	q quat.Number
}

func (o *r4aaOrientation) AxisAngles() *spatialmath.R4AA { return spatialmath.QuatToR4AA(o.q) }
func (o *r4aaOrientation) Quaternion() quat.Number        { return o.q }

// orthonormalBasis returns two unit vectors spanning the plane perpendicular to axis (itself
// assumed unit length), used by the planar joint's in-plane translation and by Robot.Jacobian's
// planar column construction.
func orthonormalBasis(axis r3.Vector) (r3.Vector, r3.Vector) {
	ref := r3.Vector{X: 1}
	if math.Abs(axis.X) > 0.9 {
		ref = r3.Vector{Y: 1}
	}
	u := axis.Cross(ref).Normalize()
	v := axis.Cross(u).Normalize()
	return u, v
}
