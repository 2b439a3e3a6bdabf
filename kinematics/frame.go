package kinematics

import (
	"github.com/golang/geo/r3"

	"github.com/a-price/robotKin/spatialmath"
)

// Frame is the base entity in the kinematic tree: a named coordinate system with a local pose
// relative to some anchor (the robot base, or another Frame), and a cached world pose kept
// consistent by a dirty flag. Joint embeds Frame and adds the articulated behavior; the base
// frame and tool frames are plain Frames.
type Frame interface {
	Name() string
	LocalPose() spatialmath.Pose
	SetLocalPose(spatialmath.Pose)
	// WorldPose returns the frame's pose relative to the robot's world origin. If the frame (or
	// any ancestor) is dirty, this walks up to the nearest clean ancestor and refreshes back
	// down before returning -- logically a read, but it may mutate the cached T_world along the
	// way, so concurrent reads of the same tree are not safe (there is no internal locking).
	WorldPose() spatialmath.Pose
	// PoseRelativeTo returns this frame's pose expressed in another frame's coordinates:
	// Invert(other.WorldPose()) composed with this.WorldPose().
	PoseRelativeTo(other Frame) spatialmath.Pose

	anchor() Frame
	setDirty()
	isDirty() bool
	// stale reports whether this frame's cached world pose is out of date: either this frame was
	// marked dirty directly, or any ancestor up the anchor chain was, without this frame having
	// been refreshed since.
	stale() bool
	refresh()
}

// baseFrame is the concrete Frame implementation shared by the robot base, tool frames, and
// embedded in Joint. anchorFrame is nil only for the robot's root base frame, whose world pose
// is its local pose by definition.
type baseFrame struct {
	name        string
	local       spatialmath.Pose
	world       spatialmath.Pose
	dirtyFlag   bool
	anchorFrame Frame
	mass        float64
	com         r3.Vector
}

// newFrame constructs a Frame anchored to parent (nil for a root base frame), with the given
// local pose and zero mass.
func newFrame(name string, local spatialmath.Pose, parent Frame) *baseFrame {
	return newMassFrame(name, local, parent, 0, r3.Vector{})
}

// newMassFrame is newFrame plus a mass and center of mass (in the frame's own local coordinates),
// used for the robot base and each linkage's tool frame so both contribute to Robot.Mass and the
// CenterOfMass aggregators alongside the articulated joints.
func newMassFrame(name string, local spatialmath.Pose, parent Frame, mass float64, com r3.Vector) *baseFrame {
	if local == nil {
		local = spatialmath.NewZeroPose()
	}
	return &baseFrame{
		name:        name,
		local:       local,
		world:       local,
		dirtyFlag:   true,
		anchorFrame: parent,
		mass:        mass,
		com:         com,
	}
}

// Mass returns the frame's own point mass (zero unless constructed via newMassFrame).
func (f *baseFrame) Mass() float64 { return f.mass }

// COM returns the frame's center of mass in its own local coordinates.
func (f *baseFrame) COM() r3.Vector { return f.com }

func (f *baseFrame) Name() string { return f.name }

func (f *baseFrame) LocalPose() spatialmath.Pose { return f.local }

func (f *baseFrame) SetLocalPose(p spatialmath.Pose) {
	f.local = p
	f.setDirty()
}

func (f *baseFrame) anchor() Frame { return f.anchorFrame }

// setAnchor rewires the frame's anchor, used by Robot/Linkage wiring during AddLinkage and
// Finalize. It marks the frame dirty; descendants need no separate marking since stale() walks
// up through the anchor chain on every read.
func (f *baseFrame) setAnchor(parent Frame) {
	f.anchorFrame = parent
	f.setDirty()
}

func (f *baseFrame) setDirty() {
	f.dirtyFlag = true
}

func (f *baseFrame) isDirty() bool { return f.dirtyFlag }

// stale is true if this frame's own flag is set, or (recursively) if any ancestor's is -- a
// joint's value changing marks only that joint dirty, never its descendants directly, so every
// read has to walk up the chain to notice an ancestor changed since this frame was last refreshed.
func (f *baseFrame) stale() bool {
	if f.dirtyFlag {
		return true
	}
	if f.anchorFrame == nil {
		return false
	}
	return f.anchorFrame.stale()
}

// refresh recomputes T_world from the anchor's (already clean, by the time this runs) world
// pose. Callers are responsible for refreshing ancestors first; WorldPose does this via
// recursion.
func (f *baseFrame) refresh() {
	if f.anchorFrame == nil {
		f.world = f.local
	} else {
		f.world = spatialmath.Compose(f.anchorFrame.WorldPose(), f.local)
	}
	f.dirtyFlag = false
}

func (f *baseFrame) WorldPose() spatialmath.Pose {
	if f.stale() {
		f.refresh()
	}
	return f.world
}

func (f *baseFrame) PoseRelativeTo(other Frame) spatialmath.Pose {
	return spatialmath.PoseBetween(other.WorldPose(), f.WorldPose())
}

// worldFrame is a fixed identity frame representing the global coordinate system every Robot's
// world poses are ultimately expressed in (a Robot's own base may itself be posed away from
// identity). It has no anchor, so its WorldPose never changes.
var worldFrame = newFrame("world", spatialmath.NewZeroPose(), nil)

// WorldFrame returns the fixed identity frame used as the default reference for Robot.Jacobian
// and the IK engine, so the Jacobian and the PoseDelta error it is combined with are expressed
// in the same coordinates.
func WorldFrame() Frame {
	return worldFrame
}
