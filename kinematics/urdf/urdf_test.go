package urdf

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/a-price/robotKin/kinematics"
	"github.com/a-price/robotKin/spatialmath"
)

func twoLinkDescriptor() []LinkageDescriptor {
	return []LinkageDescriptor{
		{
			Name:   "arm",
			Parent: "",
			Joints: []JointDescriptor{
				{
					Name:      "shoulder",
					Kind:      kinematics.Revolute,
					Axis:      r3.Vector{Z: 1},
					Min:       -math.Pi,
					Max:       math.Pi,
					Mass:      1,
					LocalPose: spatialmath.NewPoseFromPoint(r3.Vector{X: 1}),
				},
				{
					Name:      "elbow",
					Kind:      kinematics.Revolute,
					Axis:      r3.Vector{Z: 1},
					Min:       -math.Pi,
					Max:       math.Pi,
					Mass:      1,
					LocalPose: spatialmath.NewPoseFromPoint(r3.Vector{X: 1}),
				},
			},
			ToolPose: spatialmath.NewPoseFromPoint(r3.Vector{X: 1}),
		},
	}
}

func TestLoadBuildsWorkingRobot(t *testing.T) {
	robot, err := Load("arm-robot", nil, twoLinkDescriptor(), DefaultOptions())
	test.That(t, err, test.ShouldBeNil)

	robot.Refresh()
	linkage, err := robot.LinkageByName("arm")
	test.That(t, err, test.ShouldBeNil)

	tool := linkage.Tool().WorldPose().Point()
	test.That(t, tool.X, test.ShouldAlmostEqual, 3.0)
}

func TestLoadFlagsDuplicateLinkageName(t *testing.T) {
	descriptors := twoLinkDescriptor()
	descriptors = append(descriptors, descriptors[0])

	robot, err := Load("dup-robot", nil, descriptors, DefaultOptions())
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, robot, test.ShouldNotBeNil)

	_, err = robot.LinkageByName(kinematics.InvalidName)
	test.That(t, err, test.ShouldBeNil)
}

func TestLoadFlagsZeroAxisJoint(t *testing.T) {
	descriptors := twoLinkDescriptor()
	descriptors[0].Joints[0].Axis = r3.Vector{}

	_, err := Load("bad-axis-robot", nil, descriptors, DefaultOptions())
	test.That(t, err, test.ShouldNotBeNil)
}

func TestLoadFlagsUnresolvedParent(t *testing.T) {
	descriptors := twoLinkDescriptor()
	descriptors[0].Parent = "does-not-exist"

	_, err := Load("bad-parent-robot", nil, descriptors, DefaultOptions())
	test.That(t, err, test.ShouldNotBeNil)
}
