// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

// skeleton.go defines the Skeleton asset payload (joint tree + clips) and the
// Interpolator that evaluates a single channel's keyframes, per spec §4.8.
// Grounded on the teacher's animation.go (keyframe sampling loop) generalized
// from a single translation-only track to the Translate/Rotate/Scale variant
// set spec §4.8 requires, plus original_source's lerp-vs-step switch.

import (
	"encoding/json"
	"fmt"
)

// Joint is one node-like transform in a skeleton's joint tree.
type Joint struct {
	SelfIndex int
	Parent    int // -1 if this is a root joint.
	Children  []int
	Transform Transform
	Name      string
}

// Transform is a local (translation, rotation, scale) triple. Defined here
// rather than imported from the root package to keep the asset package
// self-contained; the root package's scene Transform wraps the identical
// shape over math/lin.
type Transform struct {
	Position [3]float32
	Rotation [4]float32 // quaternion, identity = {0,0,0,1}.
	Scale    [3]float32
}

// IdentityTransform returns the neutral transform (zero translation, no
// rotation, unit scale).
func IdentityTransform() Transform {
	return Transform{Rotation: [4]float32{0, 0, 0, 1}, Scale: [3]float32{1, 1, 1}}
}

// Keyframe is one (time, value) sample of an interpolated channel.
type Keyframe[V any] struct {
	Time  float32
	Value V
}

// Interpolator evaluates a sequence of keyframes at an arbitrary time,
// either linearly interpolating or stepping to the most recent keyframe.
type Interpolator[V any] struct {
	Keyframes     []Keyframe[V]
	Interpolation Interpolation
	Lerp          func(a, b V, ratio float32) V
}

// Sample evaluates the interpolator at time t. Times before the first
// keyframe clamp to the first value; times after the last clamp to the last.
func (i Interpolator[V]) Sample(t float32) V {
	n := len(i.Keyframes)
	if n == 0 {
		var zero V
		return zero
	}
	if t <= i.Keyframes[0].Time {
		return i.Keyframes[0].Value
	}
	if t >= i.Keyframes[n-1].Time {
		return i.Keyframes[n-1].Value
	}
	for k := 1; k < n; k++ {
		if t > i.Keyframes[k].Time {
			continue
		}
		prev, next := i.Keyframes[k-1], i.Keyframes[k]
		if i.Interpolation == InterpolationStep || i.Lerp == nil {
			return prev.Value
		}
		span := next.Time - prev.Time
		if span <= 0 {
			return prev.Value
		}
		ratio := (t - prev.Time) / span
		return i.Lerp(prev.Value, next.Value, ratio)
	}
	return i.Keyframes[n-1].Value
}

// Duration returns the last keyframe's time, ie the clip's endpoint.
func (i Interpolator[V]) Duration() float32 {
	if len(i.Keyframes) == 0 {
		return 0
	}
	return i.Keyframes[len(i.Keyframes)-1].Time
}

// Skeleton is the asset-side payload: a joint tree, its clips (referenced by
// Uri, loaded separately as SkeletalAnimation), and the inverse bind
// matrices joint matrices are computed against.
type Skeleton struct {
	Name                string
	Joints              []Joint
	InverseBindMatrices [][16]float32
	Clips               []Uri
	SelfUri             Uri
}

type jointJson struct {
	SelfIndex int              `json:"self_index"`
	Parent    *int             `json:"parent_index"`
	Children  []int            `json:"children"`
	Transform transformJsonRaw `json:"transform"`
	Name      string           `json:"name"`
}

type transformJsonRaw struct {
	Position [3]float32 `json:"position"`
	Rotation [4]float32 `json:"rotation"`
	Scale    [3]float32 `json:"scale"`
}

func (t transformJsonRaw) toTransform() Transform {
	tr := Transform{Position: t.Position, Rotation: t.Rotation, Scale: t.Scale}
	if tr.Rotation == [4]float32{} {
		tr.Rotation = [4]float32{0, 0, 0, 1}
	}
	if tr.Scale == [3]float32{} {
		tr.Scale = [3]float32{1, 1, 1}
	}
	return tr
}

type skeletonJson struct {
	AssetType string      `json:"asset_type"`
	Name      string      `json:"name"`
	Joints    []jointJson `json:"joints"`
	Animations []string   `json:"animations"`
}

// NewSkeletonProvider loads "Skeleton JSON" descriptors (spec §6).
func NewSkeletonProvider(vfs DataSource, monitor *UriMonitor) *Provider[Skeleton] {
	load := func(uri Uri) (*Skeleton, []Uri, error) {
		raw := vfs.Read(uri)
		if raw == nil {
			return nil, nil, fmt.Errorf("skeleton: read failed: %s", uri.Value())
		}
		var doc skeletonJson
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, nil, fmt.Errorf("skeleton: decode %s: %w", uri.Value(), err)
		}
		skel := &Skeleton{Name: doc.Name, SelfUri: uri}
		for _, j := range doc.Joints {
			parent := -1
			if j.Parent != nil {
				parent = *j.Parent
			}
			skel.Joints = append(skel.Joints, Joint{
				SelfIndex: j.SelfIndex,
				Parent:    parent,
				Children:  j.Children,
				Transform: j.Transform.toTransform(),
				Name:      j.Name,
			})
		}
		deps := []Uri{uri}
		for _, a := range doc.Animations {
			clipUri := uri.Parent().Append(a)
			skel.Clips = append(skel.Clips, clipUri)
			deps = append(deps, clipUri)
		}
		return skel, deps, nil
	}
	return NewProvider[Skeleton]("Skeleton", vfs, monitor, load, nil)
}
