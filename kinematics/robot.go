// Package kinematics implements the kinematic model: a tree of Linkages made of Joints, rooted
// at a Robot base, with cached world poses and an invalidation discipline. It computes forward
// kinematics, the geometric Jacobian, and mass/center-of-mass aggregates; numerical inverse
// kinematics lives in the kinematics/ik subpackage.
package kinematics

import (
	"sort"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/a-price/robotKin/spatialmath"
)

// Reference selects the coordinate frame a mass/center-of-mass query is expressed in.
type Reference int

const (
	World Reference = iota
	RobotBase
	ParentLinkage
)

// Robot is the root of the kinematic tree: a base Frame with world pose T_base, and a flat arena
// of Linkages (each owning its Joints) wired together by integer parent indices rather than
// pointers. AddLinkage appends during an initializing window; Finalize performs the stable
// topological sort, rebuilds the name/index registries, and assigns joint ids.
type Robot struct {
	log golog.Logger

	base *baseFrame

	linkages        []*Linkage
	linkagesByName  map[string]int
	jointsByName    map[string]int
	jointsByIndex   []Joint // dense, rebuilt in topological order by every Finalize
	finalized       bool
}

// NewRobot constructs an empty Robot with the given base pose (world frame if nil). A nil logger
// defaults to a discard logger. The base itself carries no mass; use NewRobotWithBaseMass to give
// it one.
func NewRobot(name string, basePose spatialmath.Pose, log golog.Logger) *Robot {
	return NewRobotWithBaseMass(name, basePose, log, 0, r3.Vector{})
}

// NewRobotWithBaseMass is NewRobot plus a mass and center of mass (in the base frame's own local
// coordinates) for the robot's fixed base, so a mounted base's own mass contributes to Robot.Mass
// and Robot.CenterOfMass alongside its joints and linkage tools.
func NewRobotWithBaseMass(name string, basePose spatialmath.Pose, log golog.Logger, baseMass float64, baseCOM r3.Vector) *Robot {
	if log == nil {
		log = golog.NewTestLogger(nil)
	}
	if basePose == nil {
		basePose = spatialmath.NewZeroPose()
	}
	return &Robot{
		log:            log,
		base:           newMassFrame(name, basePose, nil, baseMass, baseCOM),
		linkagesByName: map[string]int{},
		jointsByName:   map[string]int{},
	}
}

// Base returns the robot's root frame.
func (r *Robot) Base() Frame { return r.base }

// AddLinkage appends a Linkage to the robot, anchored under the named parent (an empty name for
// the robot base, or another linkage's name, resolved at Finalize). The linkage's final index and its joints' ids
// are not assigned until Finalize is called; until then, name lookups for this linkage succeed
// but NumJoints()-based id math should not be relied on.
func (r *Robot) AddLinkage(parentName string, l *Linkage) error {
	if _, exists := r.linkagesByName[l.name]; exists {
		return errors.Wrapf(ErrInvalidLinkage, "duplicate linkage name %q", l.name)
	}
	l.parentIdx = -2 // sentinel: "parent name recorded, index not yet resolved"
	l.parentName = parentName
	r.linkages = append(r.linkages, l)
	r.linkagesByName[l.name] = len(r.linkages) - 1
	r.finalized = false
	return nil
}

// Finalize resolves every linkage's parent index, performs a stable topological sort (ascending
// on parent index, ties broken by input order, base-rooted linkages -- parentIndex == -1 --
// first), rewires each linkage's proximal anchor to its parent's tool frame (or the robot base),
// rebuilds the name/index registries, and assigns joint ids sequentially in the new order.
// Returns ErrCyclicTopology if the parent graph does not resolve to a DAG.
func (r *Robot) Finalize() error {
	for _, l := range r.linkages {
		if l.parentName == "" {
			l.parentIdx = -1
			continue
		}
		if idx, ok := r.linkagesByName[l.parentName]; ok {
			l.parentIdx = idx
		} else {
			return errors.Wrapf(ErrInvalidLinkage, "linkage %q: unresolved parent %q", l.name, l.parentName)
		}
	}

	order, err := topoSort(r.linkages)
	if err != nil {
		return err
	}

	oldToNew := make(map[int]int, len(order))
	sorted := make([]*Linkage, len(order))
	for newIdx, oldIdx := range order {
		sorted[newIdx] = r.linkages[oldIdx]
		oldToNew[oldIdx] = newIdx
	}

	for _, l := range sorted {
		if l.parentIdx == -1 {
			l.parentIdx = -1
		} else {
			l.parentIdx = oldToNew[l.parentIdx]
		}
	}
	r.linkages = sorted

	r.linkagesByName = make(map[string]int, len(sorted))
	for i, l := range sorted {
		l.index = i
		r.linkagesByName[l.name] = i
		var parent Frame = r.base
		if l.parentIdx >= 0 {
			parent = r.linkages[l.parentIdx].Tool()
		}
		l.setParentJoint(parent)
	}

	r.jointsByName = map[string]int{}
	r.jointsByIndex = nil
	id := 0
	for _, l := range sorted {
		for _, j := range l.joints {
			j.setID(id)
			r.jointsByName[j.Name()] = id
			r.jointsByIndex = append(r.jointsByIndex, j)
			id++
		}
	}

	r.finalized = true
	return nil
}

// topoSort returns linkage indices (into the input slice) in an order where every linkage
// appears after its parent, sorting on parent index ascending with ties broken by original
// index. It detects a cycle as a fixed point: a pass that drains no further linkages.
func topoSort(linkages []*Linkage) ([]int, error) {
	remaining := make([]int, len(linkages))
	for i := range linkages {
		remaining[i] = i
	}

	placed := make(map[int]bool, len(linkages))
	var order []int

	for len(remaining) > 0 {
		ready := remaining[:0:0]
		for _, idx := range remaining {
			p := linkages[idx].parentIdx
			if p == -1 || placed[p] {
				ready = append(ready, idx)
			}
		}
		if len(ready) == 0 {
			return nil, ErrCyclicTopology
		}
		sort.SliceStable(ready, func(a, b int) bool {
			return linkages[ready[a]].parentIdx < linkages[ready[b]].parentIdx
		})
		var next []int
		readySet := make(map[int]bool, len(ready))
		for _, idx := range ready {
			readySet[idx] = true
			placed[idx] = true
			order = append(order, idx)
		}
		for _, idx := range remaining {
			if !readySet[idx] {
				next = append(next, idx)
			}
		}
		remaining = next
	}
	return order, nil
}

// Refresh walks linkages in topological order, refreshing each joint's world pose by chained
// composition from its parent's distal frame (or the base), then the tool frame. O(J) in the
// number of joints. Finalize must have been called at least once; Refresh after further
// AddLinkage calls without a following Finalize walks the stale order.
func (r *Robot) Refresh() {
	for _, l := range r.linkages {
		for _, j := range l.joints {
			j.setDirty()
		}
		l.tool.setDirty()
		for _, j := range l.joints {
			j.WorldPose()
		}
		l.tool.WorldPose()
	}
}

// LinkageByName resolves a linkage by name.
func (r *Robot) LinkageByName(name string) (*Linkage, error) {
	idx, ok := r.linkagesByName[name]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidLinkage, "unknown linkage %q", name)
	}
	return r.linkages[idx], nil
}

// JointByName resolves a joint by name, searching every linkage.
func (r *Robot) JointByName(name string) (Joint, error) {
	if idx, ok := r.jointsByName[name]; ok {
		return r.jointsByIndex[idx], nil
	}
	return nil, errors.Wrapf(ErrInvalidJoint, "unknown joint %q", name)
}

// JointByIndex resolves a joint by its stable id, assigned during Finalize.
func (r *Robot) JointByIndex(idx int) (Joint, error) {
	if idx < 0 || idx >= len(r.jointsByIndex) {
		return nil, errors.Wrapf(ErrInvalidJoint, "joint index %d out of range", idx)
	}
	return r.jointsByIndex[idx], nil
}

// Jacobian builds the 6xK geometric Jacobian relating the rate of change of the named joints
// (column order matches joints) to the spatial velocity of point, expressed in reference's
// coordinates. Each joint's columns follow the kind-specific twist rules in jointTwists, one
// column per DoF(): fixed joints contribute none, planar and floating joints 3 and 6
// respectively, in the order of joints. A repeated joint id is reported as ErrInvalidJoint.
func (r *Robot) Jacobian(joints []int, point r3.Vector, reference Frame) (*mat.Dense, error) {
	seen := make(map[int]bool, len(joints))
	cols := 0
	for _, idx := range joints {
		if seen[idx] {
			return nil, errors.Wrapf(ErrInvalidJoint, "joint index %d repeated", idx)
		}
		seen[idx] = true
		j, err := r.JointByIndex(idx)
		if err != nil {
			return nil, err
		}
		cols += j.DoF()
	}

	refWorld := reference.WorldPose()
	refWorldInv := spatialmath.Invert(refWorld)

	J := mat.NewDense(6, cols, nil)
	col := 0
	for _, idx := range joints {
		j, _ := r.JointByIndex(idx)
		twists := jointTwists(j, point)
		for _, tw := range twists {
			vec := worldTwistToReference(tw, refWorldInv)
			v := vec.Vec6()
			for row := 0; row < 6; row++ {
				J.Set(row, col, v[row])
			}
			col++
		}
	}
	return J, nil
}

// jointTwists returns one unit spatial twist per DoF of j, expressed in world coordinates,
// induced at world point p by the corresponding joint value changing at unit rate, holding all
// ancestor joints fixed.
func jointTwists(j Joint, p r3.Vector) []spatialmath.Twist {
	axisWorld := j.WorldPose().Orientation().Quaternion()
	worldAxis := rotateVector(axisWorld, j.Axis())
	origin := j.WorldPose().Point()

	switch j.Kind() {
	case Revolute, Continuous:
		return []spatialmath.Twist{spatialmath.RevoluteTwist(worldAxis, origin, p)}
	case Prismatic:
		return []spatialmath.Twist{spatialmath.PrismaticTwist(worldAxis)}
	case Fixed:
		return nil
	case Planar:
		u, v := orthonormalBasis(j.Axis())
		worldU := rotateVector(axisWorld, u)
		worldV := rotateVector(axisWorld, v)
		return []spatialmath.Twist{
			spatialmath.PrismaticTwist(worldU),
			spatialmath.PrismaticTwist(worldV),
			spatialmath.RevoluteTwist(worldAxis, origin, p),
		}
	case Floating:
		return []spatialmath.Twist{
			spatialmath.PrismaticTwist(r3.Vector{X: 1}),
			spatialmath.PrismaticTwist(r3.Vector{Y: 1}),
			spatialmath.PrismaticTwist(r3.Vector{Z: 1}),
			spatialmath.RevoluteTwist(rotateVector(axisWorld, r3.Vector{X: 1}), origin, p),
			spatialmath.RevoluteTwist(rotateVector(axisWorld, r3.Vector{Y: 1}), origin, p),
			spatialmath.RevoluteTwist(rotateVector(axisWorld, r3.Vector{Z: 1}), origin, p),
		}
	default:
		return nil
	}
}

// worldTwistToReference re-expresses a world-frame twist in reference's coordinates, given the
// inverse of reference's world pose.
func worldTwistToReference(tw spatialmath.Twist, refWorldInv spatialmath.Pose) spatialmath.Twist {
	q := refWorldInv.Orientation().Quaternion()
	return spatialmath.Twist{
		Linear:  rotateVector(q, tw.Linear),
		Angular: rotateVector(q, tw.Angular),
	}
}

// Mass sums joint masses over the requested scope (joint ids); an empty scope sums every joint in
// the robot plus every linkage's tool mass and the base mass.
func (r *Robot) Mass(jointIDs ...int) (float64, error) {
	if len(jointIDs) == 0 {
		total := r.base.Mass()
		for _, j := range r.jointsByIndex {
			total += j.Mass()
		}
		for _, l := range r.linkages {
			total += l.tool.Mass()
		}
		return total, nil
	}
	var total float64
	for _, id := range jointIDs {
		j, err := r.JointByIndex(id)
		if err != nil {
			return 0, err
		}
		total += j.Mass()
	}
	return total, nil
}

// CenterOfMass returns the mass-weighted average center of mass over the requested joint ids,
// expressed in the given reference. An empty scope is ErrInvalidScope; zero total mass is
// ErrZeroMass. World expresses the result in world coordinates, RobotBase in the robot base
// frame's coordinates, and ParentLinkage in the first scoped joint's linkage's proximal anchor
// frame (its parent linkage's tool frame, or the base).
func (r *Robot) CenterOfMass(reference Reference, jointIDs ...int) (r3.Vector, error) {
	if len(jointIDs) == 0 {
		return r3.Vector{}, ErrInvalidScope
	}
	var totalMass float64
	var weighted r3.Vector
	for _, id := range jointIDs {
		j, err := r.JointByIndex(id)
		if err != nil {
			return r3.Vector{}, err
		}
		m := j.Mass()
		if m == 0 {
			continue
		}
		worldCOM := spatialmath.Compose(j.WorldPose(), spatialmath.NewPoseFromPoint(j.COM())).Point()
		weighted = weighted.Add(worldCOM.Mul(m))
		totalMass += m
	}
	if totalMass == 0 {
		return r3.Vector{}, ErrZeroMass
	}
	com := weighted.Mul(1 / totalMass)

	switch reference {
	case World:
		return com, nil
	case RobotBase:
		return spatialmath.PoseBetween(r.base.WorldPose(), spatialmath.NewPoseFromPoint(com)).Point(), nil
	case ParentLinkage:
		first, err := r.JointByIndex(jointIDs[0])
		if err != nil {
			return r3.Vector{}, err
		}
		anchor := first.anchor()
		for _, l := range r.linkages {
			for _, j := range l.joints {
				if j == first {
					anchor = l.joints[0].anchor()
				}
			}
		}
		if anchor == nil {
			anchor = r.base
		}
		return spatialmath.PoseBetween(anchor.WorldPose(), spatialmath.NewPoseFromPoint(com)).Point(), nil
	default:
		return r3.Vector{}, ErrInvalidScope
	}
}
