// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package levk

import (
	"testing"

	"github.com/karnkaul/levk/asset"
	"github.com/karnkaul/levk/draw"
)

func lerpVec4Test(a, b [4]float32, ratio float32) [4]float32 {
	var out [4]float32
	for i := range out {
		out[i] = a[i] + (b[i]-a[i])*ratio
	}
	return out
}

// twoJointSkeleton builds a root joint at the origin and a child offset by
// (1, 0, 0), both with identity rotation and unit scale.
func twoJointSkeleton(uri asset.Uri) *asset.Skeleton {
	return &asset.Skeleton{
		SelfUri: uri,
		Joints: []asset.Joint{
			{SelfIndex: 0, Parent: -1, Children: []int{1}, Transform: asset.IdentityTransform()},
			{SelfIndex: 1, Parent: 0, Transform: asset.Transform{
				Position: [3]float32{1, 0, 0},
				Rotation: [4]float32{0, 0, 0, 1},
				Scale:    [3]float32{1, 1, 1},
			}},
		},
	}
}

func newSkeletonScene(skeletonUri asset.Uri, skeleton *asset.Skeleton) (*Scene, *Entity) {
	providers := newTestProviders()
	providers.Skeleton().Add(skeletonUri, skeleton)

	scene := NewScene("test")
	scene.Providers = providers
	e := scene.Spawn(CreateInfo{Name: "rig", Transform: NewTransform()})
	return scene, e
}

func TestSkeletonControllerBindPoseComposesParentBeforeChild(t *testing.T) {
	skeletonUri := asset.NewUri("rig.skel.json")
	scene, e := newSkeletonScene(skeletonUri, twoJointSkeleton(skeletonUri))

	controller := Attach(e, NewSkeletonController(skeletonUri))
	scene.Tick(1.0/60, nil)

	root := controller.JointMatrix(0)
	if root.Wx != 0 || root.Wy != 0 || root.Wz != 0 {
		t.Fatalf("expected the root joint to stay at the origin, got %+v", root)
	}
	child := controller.JointMatrix(1)
	if child.Wx != 1 || child.Wy != 0 || child.Wz != 0 {
		t.Fatalf("expected the child joint's bind-pose offset to carry through, got %+v", child)
	}
}

func TestSkeletonControllerElapsedWrapsAtClipDuration(t *testing.T) {
	skeletonUri := asset.NewUri("rig.skel.json")
	skeleton := twoJointSkeleton(skeletonUri)
	scene, e := newSkeletonScene(skeletonUri, skeleton)

	clipUri := asset.NewUri("walk.clip.json")
	clip := &asset.SkeletalAnimation{
		Name: "walk",
		Channels: []asset.Channel{{
			TargetJoint: 0,
			Kind:        asset.SamplerTranslation,
			Sampler: asset.Interpolator[[4]float32]{
				Keyframes: []asset.Keyframe[[4]float32]{
					{Time: 0, Value: [4]float32{0, 0, 0, 0}},
					{Time: 1, Value: [4]float32{2, 0, 0, 0}},
				},
				Interpolation: asset.InterpolationLinear,
				Lerp:          lerpVec4Test,
			},
		}},
	}
	scene.Providers.SkeletalAnimation().Add(clipUri, clip)

	controller := Attach(e, NewSkeletonController(skeletonUri))
	controller.Play(clipUri)

	// First tick: elapsed settles at 0.6s, well inside the 1s clip.
	scene.Tick(0.6, nil)
	root := controller.JointMatrix(0)
	if got, want := root.Wx, 1.2; !floatsClose(got, want) {
		t.Fatalf("at t=0.6s expected root.Wx = %v, got %v", want, got)
	}

	// Second tick pushes elapsed to 1.2s, past the 1s duration: it should
	// wrap to 0.2s rather than clamp to the final keyframe.
	scene.Tick(0.6, nil)
	root = controller.JointMatrix(0)
	if got, want := root.Wx, 0.4; !floatsClose(got, want) {
		t.Fatalf("after wrapping past the clip duration expected root.Wx = %v, got %v", want, got)
	}
}

func TestSkeletonControllerStopHoldsBindPose(t *testing.T) {
	skeletonUri := asset.NewUri("rig.skel.json")
	skeleton := twoJointSkeleton(skeletonUri)
	scene, e := newSkeletonScene(skeletonUri, skeleton)

	clipUri := asset.NewUri("walk.clip.json")
	clip := &asset.SkeletalAnimation{Channels: []asset.Channel{{
		TargetJoint: 0,
		Kind:        asset.SamplerTranslation,
		Sampler: asset.Interpolator[[4]float32]{
			Keyframes:     []asset.Keyframe[[4]float32]{{Time: 0, Value: [4]float32{5, 0, 0, 0}}},
			Interpolation: asset.InterpolationStep,
		},
	}}}
	scene.Providers.SkeletalAnimation().Add(clipUri, clip)

	controller := Attach(e, NewSkeletonController(skeletonUri))
	controller.Play(clipUri)
	controller.Stop()

	scene.Tick(1.0/60, nil)

	root := controller.JointMatrix(0)
	if root.Wx != 0 {
		t.Fatalf("expected Stop to hold the bind pose (Wx=0), got %v", root.Wx)
	}
}

func floatsClose(a, b float64) bool {
	const eps = 1e-6
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < eps
}

func TestSkinnedMeshRendererAppliesSiblingSkeletonPose(t *testing.T) {
	skeletonUri := asset.NewUri("rig.skel.json")
	scene, e := newSkeletonScene(skeletonUri, twoJointSkeleton(skeletonUri))

	Attach(e, NewSkeletonController(skeletonUri))
	scene.Tick(1.0/60, nil)

	meshUri := asset.NewUri("rig.mesh.json")
	mesh := &asset.SkinnedMesh{
		Primitives: []asset.MeshPrimitiveRef{
			{Primitive: &asset.Primitive{}, Material: asset.NewUri("missing.mat.json")},
		},
		InverseBindMatrices: [][16]float32{
			{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1},
			{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1},
		},
	}
	scene.Providers.SkinnedMesh().Add(meshUri, mesh)
	Attach(e, NewSkinnedMeshRenderer(meshUri))

	var out draw.List
	e.render(&out)

	if len(out.Drawables) != 1 {
		t.Fatalf("expected 1 drawable, got %d", len(out.Drawables))
	}
	d := out.Drawables[0]
	if d.Kind != draw.Skinned {
		t.Fatalf("expected a Skinned drawable, got %v", d.Kind)
	}
	if len(d.Joints) != 2 {
		t.Fatalf("expected 2 joint matrices, got %d", len(d.Joints))
	}
	if d.Joints[1].Wx != 1 {
		t.Fatalf("expected the child joint's skin matrix to carry its bind-pose offset, got %+v", d.Joints[1])
	}
}
