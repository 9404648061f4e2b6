// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package levk

// attachment.go is the scene-export counterpart to Component: a small,
// serializable record describing one component (or set of components) to
// attach to an entity on load, decoupled from the live Component instance
// itself. Grounded on the original's level/attachment.hpp/attachments.hpp
// (Attachment::attach(Entity&), the Shape/Mesh/Skeleton/Freecam concrete
// set) and asset/material.go's Serialize/Deserialize-via-anonymous-struct
// idiom for the wire format.

import (
	"encoding/json"

	"github.com/karnkaul/levk/asset"
)

// AttachmentTag marks a Serializable type as a scene Attachment for the
// shared Serializer's dispatch.
const AttachmentTag asset.Tag = "Attachment"

// Attachment constructs one or more live Components on an Entity when a
// scene is loaded, and is itself the thing that gets serialized into scene
// export JSON — the original's two-phase "data record now, live component
// object later" split that keeps save files independent of component
// back-references.
type Attachment interface {
	asset.Serializable
	Attach(e *Entity)
}

// RegisterAttachments binds every built-in Attachment type into s, the way
// the original's register_types() call binds every built-in Component and
// Attachment in one place at startup.
func RegisterAttachments(s *asset.Serializer) {
	s.Bind("MeshAttachment", func() asset.Serializable { return &MeshAttachment{} }, AttachmentTag)
	s.Bind("SkeletonAttachment", func() asset.Serializable { return &SkeletonAttachment{} }, AttachmentTag)
	s.Bind("FreecamAttachment", func() asset.Serializable { return &FreecamAttachment{} }, AttachmentTag)
	s.Bind("ShapeAttachment", func() asset.Serializable { return &ShapeAttachment{} }, AttachmentTag)
}

// MeshAttachment attaches a MeshRenderer bound to Uri.
type MeshAttachment struct {
	Uri asset.Uri
}

func (a *MeshAttachment) TypeName() string { return "MeshAttachment" }

func (a *MeshAttachment) Attach(e *Entity) {
	Attach(e, NewMeshRenderer(a.Uri))
}

func (a *MeshAttachment) Serialize() (json.RawMessage, error) {
	return json.Marshal(struct {
		Uri string `json:"uri"`
	}{a.Uri.Value()})
}

func (a *MeshAttachment) Deserialize(data json.RawMessage) error {
	var aux struct {
		Uri string `json:"uri"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	a.Uri = asset.NewUri(aux.Uri)
	return nil
}

// SkeletonAttachment attaches a SkeletonController bound to Uri, optionally
// starting it playing EnabledClip.
type SkeletonAttachment struct {
	Uri         asset.Uri
	EnabledClip asset.Uri
	HasEnabled  bool
}

func (a *SkeletonAttachment) TypeName() string { return "SkeletonAttachment" }

func (a *SkeletonAttachment) Attach(e *Entity) {
	controller := Attach(e, NewSkeletonController(a.Uri))
	if a.HasEnabled {
		controller.Play(a.EnabledClip)
	}
}

func (a *SkeletonAttachment) Serialize() (json.RawMessage, error) {
	return json.Marshal(struct {
		Uri         string `json:"uri"`
		EnabledClip string `json:"enabled_clip,omitempty"`
	}{a.Uri.Value(), a.EnabledClip.Value()})
}

func (a *SkeletonAttachment) Deserialize(data json.RawMessage) error {
	var aux struct {
		Uri         string `json:"uri"`
		EnabledClip string `json:"enabled_clip"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	a.Uri = asset.NewUri(aux.Uri)
	if aux.EnabledClip != "" {
		a.EnabledClip = asset.NewUri(aux.EnabledClip)
		a.HasEnabled = true
	}
	return nil
}

// FreecamAttachment attaches a FreecamController with the recorded
// move/look speed and starting orientation.
type FreecamAttachment struct {
	MoveSpeed float64
	LookSpeed float64
	PitchRad  float64
	YawRad    float64
}

func (a *FreecamAttachment) TypeName() string { return "FreecamAttachment" }

func (a *FreecamAttachment) Attach(e *Entity) {
	c := NewFreecamController()
	if a.MoveSpeed != 0 {
		c.MoveSpeed = a.MoveSpeed
	}
	if a.LookSpeed != 0 {
		c.LookSpeed = a.LookSpeed
	}
	c.PitchRad, c.YawRad = a.PitchRad, a.YawRad
	Attach(e, c)
}

func (a *FreecamAttachment) Serialize() (json.RawMessage, error) {
	return json.Marshal(struct {
		MoveSpeed float64 `json:"move_speed"`
		LookSpeed float64 `json:"look_speed"`
		Pitch     float64 `json:"pitch"`
		Yaw       float64 `json:"yaw"`
	}{a.MoveSpeed, a.LookSpeed, a.PitchRad, a.YawRad})
}

func (a *FreecamAttachment) Deserialize(data json.RawMessage) error {
	var aux struct {
		MoveSpeed float64 `json:"move_speed"`
		LookSpeed float64 `json:"look_speed"`
		Pitch     float64 `json:"pitch"`
		Yaw       float64 `json:"yaw"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	a.MoveSpeed, a.LookSpeed, a.PitchRad, a.YawRad = aux.MoveSpeed, aux.LookSpeed, aux.Pitch, aux.Yaw
	return nil
}

// ShapeAttachment attaches a ShapeRenderer bound to MaterialUri.
type ShapeAttachment struct {
	MaterialUri asset.Uri
}

func (a *ShapeAttachment) TypeName() string { return "ShapeAttachment" }

func (a *ShapeAttachment) Attach(e *Entity) {
	r := NewShapeRenderer()
	r.MaterialUri = a.MaterialUri
	if e.scene != nil && e.scene.Providers != nil {
		if ptr := e.scene.Providers.Material().Get(a.MaterialUri); ptr != nil && *ptr != nil {
			r.Material = *ptr
		}
	}
	Attach(e, r)
}

func (a *ShapeAttachment) Serialize() (json.RawMessage, error) {
	return json.Marshal(struct {
		MaterialUri string `json:"material_uri"`
	}{a.MaterialUri.Value()})
}

func (a *ShapeAttachment) Deserialize(data json.RawMessage) error {
	var aux struct {
		MaterialUri string `json:"material_uri"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	a.MaterialUri = asset.NewUri(aux.MaterialUri)
	return nil
}
