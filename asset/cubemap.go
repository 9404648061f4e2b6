// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

// cubemap.go loads a six-face cubemap descriptor, reusing the same decode
// path as texture.go for each face.

import (
	"encoding/json"
	"fmt"
)

// CubemapFace indexes the six faces of a cubemap in the conventional
// +X,-X,+Y,-Y,+Z,-Z order.
type CubemapFace int

const (
	FacePosX CubemapFace = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// Cubemap is six decoded faces sharing one resolution.
type Cubemap struct {
	Width, Height int
	Faces         [6][]byte // RGBA8, indexed by CubemapFace.
}

type cubemapJson struct {
	AssetType string `json:"asset_type"`
	Name      string `json:"name"`
	Faces     [6]string `json:"faces"`
}

// NewCubemapProvider loads a Cubemap JSON descriptor naming six face images.
func NewCubemapProvider(vfs DataSource, monitor *UriMonitor) *Provider[Cubemap] {
	decodeFace := decodeTextureBytes
	load := func(uri Uri) (*Cubemap, []Uri, error) {
		raw := vfs.Read(uri)
		if raw == nil {
			return nil, nil, fmt.Errorf("cubemap: read failed: %s", uri.Value())
		}
		var doc cubemapJson
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, nil, fmt.Errorf("cubemap: decode %s: %w", uri.Value(), err)
		}
		cube := &Cubemap{}
		deps := []Uri{uri}
		for i, faceName := range doc.Faces {
			faceUri := uri.Parent().Append(faceName)
			faceBytes := vfs.Read(faceUri)
			if faceBytes == nil {
				return nil, nil, fmt.Errorf("cubemap: missing face %d: %s", i, faceUri.Value())
			}
			w, h, pix, err := decodeFace(faceBytes)
			if err != nil {
				return nil, nil, fmt.Errorf("cubemap: decode face %d: %w", i, err)
			}
			if i == 0 {
				cube.Width, cube.Height = w, h
			}
			cube.Faces[i] = pix
			deps = append(deps, faceUri)
		}
		return cube, deps, nil
	}
	return NewProvider[Cubemap]("Cubemap", vfs, monitor, load, nil)
}
