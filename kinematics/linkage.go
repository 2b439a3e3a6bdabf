package kinematics

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/a-price/robotKin/spatialmath"
)

// Linkage is an ordered serial chain of Joints rooted at its proximal anchor, ending in a Tool
// frame anchored to the distal joint. Joint i+1's anchor is joint i; the tool's anchor is the
// last joint. Linkages are owned by a Robot and reference their parent Linkage by index, never by
// pointer (see Robot's arena-and-index layout).
type Linkage struct {
	name        string
	index       int
	parentIdx   int // -1 if rooted at the robot base, -2 if not yet resolved by Finalize
	parentName  string
	joints      []Joint
	jointByName map[string]int
	tool        *baseFrame
}

// NewLinkage constructs a Linkage from an ordered slice of Joints (already anchored joint-to-
// joint by the caller, joint[0] anchored to the linkage's eventual parent) and a tool local pose
// relative to the distal joint. Joints must be supplied in proximal-to-distal order. The tool
// frame itself carries no mass; use NewLinkageWithTool to give it one.
func NewLinkage(name string, joints []Joint, toolLocalPose spatialmath.Pose) *Linkage {
	return NewLinkageWithTool(name, joints, toolLocalPose, 0, r3.Vector{})
}

// NewLinkageWithTool is NewLinkage plus a mass and center of mass (in the tool frame's own local
// coordinates) for the end-of-chain tool -- a gripper or other end effector contributes its own
// mass to Robot.Mass and its own COM to Robot.CenterOfMass/Linkage.CenterOfMass alongside the
// joints that carry it.
func NewLinkageWithTool(name string, joints []Joint, toolLocalPose spatialmath.Pose, toolMass float64, toolCOM r3.Vector) *Linkage {
	byName := make(map[string]int, len(joints))
	for i, j := range joints {
		byName[j.Name()] = i
	}
	var anchor Frame
	if len(joints) > 0 {
		anchor = joints[len(joints)-1]
	}
	return &Linkage{
		name:        name,
		parentIdx:   -1,
		joints:      joints,
		jointByName: byName,
		tool:        newMassFrame(name+".tool", toolLocalPose, anchor, toolMass, toolCOM),
	}
}

func (l *Linkage) Name() string { return l.name }

// Joint returns the i'th joint in proximal-to-distal order, or nil if i is out of range.
func (l *Linkage) Joint(i int) Joint {
	if i < 0 || i >= len(l.joints) {
		return nil
	}
	return l.joints[i]
}

// JointByName returns the named joint, or nil (plus false) if this linkage has no such joint.
func (l *Linkage) JointByName(name string) (Joint, bool) {
	i, ok := l.jointByName[name]
	if !ok {
		return nil, false
	}
	return l.joints[i], true
}

// JointIDs returns the stable Robot-assigned id of every joint in the chain, proximal to distal.
// Valid only after the owning Robot's Finalize has run.
func (l *Linkage) JointIDs() []int {
	ids := make([]int, len(l.joints))
	for i, j := range l.joints {
		ids[i] = j.ID()
	}
	return ids
}

// NumJoints returns the number of joints in the chain.
func (l *Linkage) NumJoints() int { return len(l.joints) }

// Joints returns the full ordered joint slice. Callers must not mutate the returned slice's
// backing array; use SetValues to update values.
func (l *Linkage) Joints() []Joint { return l.joints }

// Tool returns the linkage's distal tool frame.
func (l *Linkage) Tool() Frame { return l.tool }

// Values returns the concatenation of every joint's Values(), in chain order.
func (l *Linkage) Values() []float64 {
	var out []float64
	for _, j := range l.joints {
		out = append(out, j.Values()...)
	}
	return out
}

// SetValues distributes v across the chain's joints in order, DoF(i) values per joint i. Returns
// an error if len(v) does not match the chain's total DoF.
func (l *Linkage) SetValues(v []float64) error {
	total := 0
	for _, j := range l.joints {
		total += j.DoF()
	}
	if len(v) != total {
		return errors.Errorf("linkage %q: expected %d joint values, got %d", l.name, total, len(v))
	}
	offset := 0
	for _, j := range l.joints {
		n := j.DoF()
		j.SetValues(v[offset : offset+n])
		offset += n
	}
	return nil
}

// CenterOfMass returns the mass-weighted average world-frame center of mass over joints
// [fromJoint, toJoint] inclusive, plus the linkage's own tool mass. If toJoint < fromJoint, the
// range is taken as [toJoint, fromJoint] -- an explicit swap-and-sum, rather than the
// single-iteration loop a fromJoint > toJoint call would otherwise silently no-op into.
func (l *Linkage) CenterOfMass(fromJoint, toJoint int) (r3.Vector, error) {
	if fromJoint > toJoint {
		fromJoint, toJoint = toJoint, fromJoint
	}
	if fromJoint < 0 || toJoint >= len(l.joints) {
		return r3.Vector{}, ErrInvalidScope
	}
	var totalMass float64
	var weighted r3.Vector
	for i := fromJoint; i <= toJoint; i++ {
		j := l.joints[i]
		m := j.Mass()
		if m == 0 {
			continue
		}
		worldCOM := spatialmath.Compose(j.WorldPose(), spatialmath.NewPoseFromPoint(j.COM())).Point()
		weighted = weighted.Add(worldCOM.Mul(m))
		totalMass += m
	}
	if tm := l.tool.Mass(); tm != 0 {
		worldCOM := spatialmath.Compose(l.tool.WorldPose(), spatialmath.NewPoseFromPoint(l.tool.COM())).Point()
		weighted = weighted.Add(worldCOM.Mul(tm))
		totalMass += tm
	}
	if totalMass == 0 {
		return r3.Vector{}, ErrZeroMass
	}
	return weighted.Mul(1 / totalMass), nil
}

// setParentJoint rewires joint[0]'s anchor to parent, used by Robot.AddLinkage/Finalize once the
// parent linkage's distal frame is known.
func (l *Linkage) setParentJoint(parent Frame) {
	if len(l.joints) == 0 {
		return
	}
	l.joints[0].(interface{ setAnchor(Frame) }).setAnchor(parent)
}
