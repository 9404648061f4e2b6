// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package levk

// skeleton_controller.go advances a skeleton's joint pose once per tick by
// sampling the enabled animation clip, and a sibling renderer turns that
// pose into per-joint matrices for a skinned draw call. Grounded on the
// original's animator.hpp/skeleton.hpp (elapsed-time sampling, per-joint
// local-then-global composition, invariant #3's exact wrap-at-duration
// behavior) and the teacher's animation.go scratch-matrix-reuse idiom
// (jnt0/jnt1 reused here as the controller's global-matrix scratch slice).

import (
	"log/slog"

	"github.com/karnkaul/levk/asset"
	"github.com/karnkaul/levk/draw"
	"github.com/karnkaul/levk/math/lin"
)

// SkeletonController samples an enabled animation clip against a skeleton's
// joint tree once per tick, producing a global matrix per joint.
type SkeletonController struct {
	Base

	SkeletonUri asset.Uri
	TimeScale   float64

	skeleton   *asset.Skeleton
	enabled    *asset.SkeletalAnimation
	enabledUri asset.Uri // clip Uri passed to Play; retained for scene export.
	elapsed    float64
	globals    []*lin.M4 // one per joint, indexed by Joint.SelfIndex.
}

// NewSkeletonController returns a controller bound to skeletonUri, with the
// original's default time scale of 1.
func NewSkeletonController(skeletonUri asset.Uri) *SkeletonController {
	return &SkeletonController{SkeletonUri: skeletonUri, TimeScale: 1}
}

func (c *SkeletonController) setup() {
	if c.Scene() == nil || c.Scene().Providers == nil {
		return
	}
	c.skeleton = c.Scene().Providers.Skeleton().Get(c.SkeletonUri)
	if c.skeleton == nil {
		slog.Warn("skeleton controller: skeleton not found", "uri", c.SkeletonUri.Value())
		return
	}
	c.globals = make([]*lin.M4, len(c.skeleton.Joints))
	for i := range c.globals {
		c.globals[i] = lin.NewM4I()
	}
}

// Play selects clipUri as the enabled animation and resets elapsed time to
// zero; an unresolvable clip disables playback (globals hold the skeleton's
// bind pose).
func (c *SkeletonController) Play(clipUri asset.Uri) {
	if c.skeleton == nil || c.Scene() == nil || c.Scene().Providers == nil {
		return
	}
	c.enabled = c.Scene().Providers.SkeletalAnimation().Get(clipUri)
	c.enabledUri = clipUri
	c.elapsed = 0
}

// Stop disables playback; subsequent ticks hold the skeleton's bind pose.
func (c *SkeletonController) Stop() {
	c.enabled = nil
	c.enabledUri = asset.Uri{}
	c.elapsed = 0
}

func (c *SkeletonController) toAttachment() Attachment {
	a := &SkeletonAttachment{Uri: c.SkeletonUri}
	if c.enabled != nil {
		a.EnabledClip, a.HasEnabled = c.enabledUri, true
	}
	return a
}

// JointMatrix returns joint i's current global matrix, or the identity if i
// is out of range or the skeleton failed to resolve.
func (c *SkeletonController) JointMatrix(i int) *lin.M4 {
	if i < 0 || i >= len(c.globals) {
		return lin.NewM4I()
	}
	return c.globals[i]
}

// tick advances elapsed time (wrapping at the clip's duration per invariant
// #3) and recomposes every joint's global matrix root-to-leaf, applying the
// enabled clip's sampled channels over each joint's bind-pose local
// transform.
func (c *SkeletonController) tick(dt float64) {
	if c.skeleton == nil {
		return
	}
	if c.enabled != nil {
		c.elapsed += dt * c.TimeScale
		if d := float64(c.enabled.Duration()); d > 0 && c.elapsed >= d {
			c.elapsed = modFloat(c.elapsed, d)
		}
	}

	locals := make([]*lin.M4, len(c.skeleton.Joints))
	for i, joint := range c.skeleton.Joints {
		locals[i] = c.localJointMatrix(joint)
	}

	for _, joint := range c.skeleton.Joints {
		c.composeGlobal(joint, locals)
	}
}

// localJointMatrix returns joint's bind-pose local matrix, overridden by
// any channel the enabled clip drives for this joint.
func (c *SkeletonController) localJointMatrix(joint asset.Joint) *lin.M4 {
	pos := joint.Transform.Position
	rot := joint.Transform.Rotation
	scale := joint.Transform.Scale

	if c.enabled != nil {
		for _, ch := range c.enabled.Channels {
			if ch.TargetJoint != joint.SelfIndex {
				continue
			}
			v := ch.Sampler.Sample(float32(c.elapsed))
			switch ch.Kind {
			case asset.SamplerTranslation:
				pos = [3]float32{v[0], v[1], v[2]}
			case asset.SamplerRotation:
				rot = v
			case asset.SamplerScale:
				scale = [3]float32{v[0], v[1], v[2]}
			}
		}
	}

	q := lin.Q{X: float64(rot[0]), Y: float64(rot[1]), Z: float64(rot[2]), W: float64(rot[3])}
	m := lin.NewM4().SetQ(&q)
	m.ScaleSM(float64(scale[0]), float64(scale[1]), float64(scale[2]))
	m.TranslateMT(float64(pos[0]), float64(pos[1]), float64(pos[2]))
	return m
}

// composeGlobal writes joint's global matrix as joint.local * parent.global
// (row-vector order: the joint's local transform applies first), relying on
// joints being stored in parent-before-child order so that the parent's
// global matrix is already current.
func (c *SkeletonController) composeGlobal(joint asset.Joint, locals []*lin.M4) {
	idx := joint.SelfIndex
	if joint.Parent < 0 {
		c.globals[idx].Set(locals[idx])
		return
	}
	c.globals[idx].Mult(locals[idx], c.globals[joint.Parent])
}

func modFloat(v, m float64) float64 {
	for v >= m {
		v -= m
	}
	for v < 0 {
		v += m
	}
	return v
}

// SkinnedMeshRenderer draws a SkinnedMesh's primitives using a sibling
// SkeletonController's current joint pose.
type SkinnedMeshRenderer struct {
	Base

	MeshUri asset.Uri

	mesh *asset.SkinnedMesh
}

// NewSkinnedMeshRenderer returns a renderer bound to meshUri.
func NewSkinnedMeshRenderer(meshUri asset.Uri) *SkinnedMeshRenderer {
	return &SkinnedMeshRenderer{MeshUri: meshUri}
}

func (r *SkinnedMeshRenderer) setup() {
	if r.Scene() == nil || r.Scene().Providers == nil {
		return
	}
	r.mesh = r.Scene().Providers.SkinnedMesh().Get(r.MeshUri)
	if r.mesh == nil {
		slog.Warn("skinned mesh renderer: mesh not found", "uri", r.MeshUri.Value())
	}
}

func (r *SkinnedMeshRenderer) tick(dt float64) {}

// render emits one Skinned Drawable per primitive, with joint matrices
// computed as inverseBindMatrix * globalJoint in row-vector order (the
// inverse bind applies first), the row-vector form of the original's
// skin_matrix = joint.global * joint.inverse_bind convention.
func (r *SkinnedMeshRenderer) render(out *draw.List) {
	if r.mesh == nil {
		return
	}
	controller, ok := Find[*SkeletonController](r.Scene().entities[r.Entity()])
	if !ok {
		slog.Warn("skinned mesh renderer: no sibling SkeletonController", "uri", r.MeshUri.Value())
		return
	}

	joints := make([]*lin.M4, len(r.mesh.InverseBindMatrices))
	for i, ibm := range r.mesh.InverseBindMatrices {
		inv := m4FromArray(ibm)
		global := controller.JointMatrix(i)
		skin := lin.NewM4()
		skin.Mult(inv, global)
		joints[i] = skin
	}

	parent := r.Scene().Nodes.GlobalTransform(r.Scene().entities[r.Entity()].Node())
	for _, ref := range r.mesh.Primitives {
		mat := r.materialOrDefault(ref.Material)
		out.Add(draw.Drawable{
			Kind:                draw.Skinned,
			Primitive:           ref.Primitive,
			Material:            mat,
			ParentMat:           parent,
			InverseBindMatrices: r.mesh.InverseBindMatrices,
			Joints:              joints,
		})
	}
}

func (r *SkinnedMeshRenderer) materialOrDefault(uri asset.Uri) asset.Material {
	if ptr := r.Scene().Providers.Material().Get(uri); ptr != nil && *ptr != nil {
		return *ptr
	}
	slog.Warn("skinned mesh renderer: material not found, using default", "uri", uri.Value())
	return asset.NewUnlitMaterial()
}

func m4FromArray(a [16]float32) *lin.M4 {
	return &lin.M4{
		Xx: float64(a[0]), Xy: float64(a[1]), Xz: float64(a[2]), Xw: float64(a[3]),
		Yx: float64(a[4]), Yy: float64(a[5]), Yz: float64(a[6]), Yw: float64(a[7]),
		Zx: float64(a[8]), Zy: float64(a[9]), Zz: float64(a[10]), Zw: float64(a[11]),
		Wx: float64(a[12]), Wy: float64(a[13]), Wz: float64(a[14]), Ww: float64(a[15]),
	}
}
