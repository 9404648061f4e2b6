// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

// animation.go wraps the binary animation codec into a loadable
// SkeletalAnimation asset and its provider, per spec §4.8: "binds each
// sampler to a target joint index".

import "fmt"

// Channel binds one AnimationSampler to the joint index and transform
// component (translation, rotation or scale) it drives.
type Channel struct {
	Sampler     Interpolator[[4]float32]
	TargetJoint int
	Kind        SamplerKind
}

// SkeletalAnimation is a loaded clip: a name and a set of channels, each
// targeting one joint by index within its owning skeleton.
type SkeletalAnimation struct {
	Name     string
	Channels []Channel
}

// Duration is the clip's endpoint: the latest of any channel's last keyframe.
func (a *SkeletalAnimation) Duration() float32 {
	var d float32
	for _, c := range a.Channels {
		if cd := c.Sampler.Duration(); cd > d {
			d = cd
		}
	}
	return d
}

func lerpVec4(a, b [4]float32, ratio float32) [4]float32 {
	var out [4]float32
	for i := range out {
		out[i] = a[i] + (b[i]-a[i])*ratio
	}
	return out
}

// NewSkeletalAnimationProvider decodes the binary animation format (spec §6)
// into a SkeletalAnimation.
func NewSkeletalAnimationProvider(vfs DataSource, monitor *UriMonitor) *Provider[SkeletalAnimation] {
	load := func(uri Uri) (*SkeletalAnimation, []Uri, error) {
		raw := vfs.Read(uri)
		if raw == nil {
			return nil, nil, fmt.Errorf("skeletal animation: read failed: %s", uri.Value())
		}
		decoded, _, err := DecodeAnimation(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("skeletal animation: decode %s: %w", uri.Value(), err)
		}
		anim := &SkeletalAnimation{Name: decoded.Name}
		for i, s := range decoded.Samplers {
			interp := Interpolator[[4]float32]{Interpolation: s.Interpolation, Lerp: lerpVec4}
			interp.Keyframes = make([]Keyframe[[4]float32], len(s.Times))
			for k, t := range s.Times {
				interp.Keyframes[k] = Keyframe[[4]float32]{Time: t, Value: s.Values[k]}
			}
			target := 0
			if i < len(decoded.TargetJoints) {
				target = int(decoded.TargetJoints[i])
			}
			anim.Channels = append(anim.Channels, Channel{Sampler: interp, TargetJoint: target, Kind: s.Kind})
		}
		return anim, []Uri{uri}, nil
	}
	return NewProvider[SkeletalAnimation]("SkeletalAnimation", vfs, monitor, load, nil)
}
