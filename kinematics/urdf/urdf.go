// Package urdf is a minimal boundary loader: it demonstrates the contract a real URDF/XML parser
// must satisfy against kinematics.Robot, without being one itself. Given a slice of plain
// descriptors it builds Joints and Linkages and wires them into a Robot with AddLinkage, exactly
// as a full parser would after reading a robot description file.
package urdf

import (
	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/a-price/robotKin/kinematics"
	"github.com/a-price/robotKin/spatialmath"
)

// JointDescriptor is the minimal per-joint description a real parser would extract from a
// <joint> element: name, kind, axis, limits, mass/COM, and the local (origin) transform the
// joint carries before any articulation.
type JointDescriptor struct {
	Name      string
	Kind      kinematics.JointKind
	Axis      r3.Vector
	Min, Max  float64
	Mass      float64
	COM       r3.Vector
	LocalPose spatialmath.Pose
}

// LinkageDescriptor is the minimal per-linkage description a real parser would extract from a
// chain of <link>/<joint> elements: a name, the name of the parent linkage (empty for the robot
// base), its ordered joints, and the tool (end-effector) transform, mass and COM past the last
// joint.
type LinkageDescriptor struct {
	Name     string
	Parent   string
	Joints   []JointDescriptor
	ToolPose spatialmath.Pose
	ToolMass float64
	ToolCOM  r3.Vector
}

// Options configures Load. The zero value is ready to use.
type Options struct {
	Log golog.Logger
}

// DefaultOptions returns Options with Log defaulting to a discard logger.
func DefaultOptions() Options {
	return Options{Log: golog.NewTestLogger(nil)}
}

// Load populates a new Robot from descriptors. A duplicate or empty linkage name, or an axis with
// zero norm on an articulated joint, does not abort the load: the offending linkage or joint is
// replaced with a placeholder whose Name() is kinematics.InvalidName. An unresolvable parent name
// is discovered by Robot.Finalize once every descriptor has been registered; that linkage keeps
// its name, and Finalize stops there, so no joint ids are assigned. Every problem found is
// combined with go.uber.org/multierr and returned alongside the Robot. A caller that ignores the
// returned error will see ErrInvalidLinkage/ErrInvalidJoint surface the first time it resolves a
// placeholder name through the usual IK call path.
func Load(name string, basePose spatialmath.Pose, descriptors []LinkageDescriptor, opts Options) (*kinematics.Robot, error) {
	if opts.Log == nil {
		opts.Log = golog.NewTestLogger(nil)
	}
	robot := kinematics.NewRobot(name, basePose, opts.Log)

	var errs error
	seenNames := map[string]bool{}

	for i, d := range descriptors {
		linkageName := d.Name
		if linkageName == "" || seenNames[linkageName] {
			errs = multierr.Append(errs, errors.Errorf("urdf: linkage %d: name %q is empty or duplicated", i, d.Name))
			linkageName = kinematics.InvalidName
		}
		seenNames[linkageName] = true

		joints, jointErr := buildJoints(linkageName, d.Joints)
		if jointErr != nil {
			errs = multierr.Append(errs, jointErr)
		}

		linkage := kinematics.NewLinkageWithTool(linkageName, joints, orIdentity(d.ToolPose), d.ToolMass, d.ToolCOM)
		if err := robot.AddLinkage(d.Parent, linkage); err != nil {
			errs = multierr.Append(errs, err)
			opts.Log.Warnw("urdf: failed to add linkage", "linkage", linkageName, "error", err)
		}
	}

	if err := robot.Finalize(); err != nil {
		errs = multierr.Append(errs, errors.Wrap(err, "urdf: finalize"))
	}

	return robot, errs
}

// buildJoints constructs a linkage's joint chain, anchoring joint i+1 to joint i (joint 0 is left
// unanchored; Robot.Finalize rewires it to the linkage's resolved parent). An articulated joint
// (revolute/continuous/prismatic) with a zero-norm axis is malformed: it is replaced with a fixed
// placeholder named kinematics.InvalidName and the problem is returned as a non-nil error.
func buildJoints(linkageName string, descriptors []JointDescriptor) ([]kinematics.Joint, error) {
	joints := make([]kinematics.Joint, len(descriptors))
	var errs error
	var parent kinematics.Frame

	for i, d := range descriptors {
		kind := d.Kind
		name := d.Name
		axis := d.Axis

		needsAxis := kind == kinematics.Revolute || kind == kinematics.Continuous || kind == kinematics.Prismatic
		if needsAxis && axis.Norm() < 1e-12 {
			errs = multierr.Append(errs, errors.Errorf("urdf: linkage %q joint %d (%q): zero-norm axis on a %s joint", linkageName, i, d.Name, kind))
			name = kinematics.InvalidName
			kind = kinematics.Fixed
		}
		if name == "" {
			name = kinematics.InvalidName
		}

		j := kinematics.NewJoint(name, kind, axis, orIdentity(d.LocalPose), parent, d.Min, d.Max, d.Mass, d.COM)
		joints[i] = j
		parent = j
	}

	return joints, errs
}

func orIdentity(p spatialmath.Pose) spatialmath.Pose {
	if p == nil {
		return spatialmath.NewZeroPose()
	}
	return p
}
