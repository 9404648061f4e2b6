// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

// shader.go loads a shader's compiled SPIR-V stages from a small JSON
// descriptor pointing at the binary blobs, grounded on the teacher's
// shader.go (separate vertex/fragment source load, combined into one GPU
// program) adapted from GLSL source text to SPIR-V bytes per spec §6/§9:
// "the shader hash is derived from the SPIR-V byte contents of the vertex
// and fragment stages".

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
)

// Shader is a compiled vertex+fragment SPIR-V pair plus its content hash,
// which is what pipeline caching keys off (spec §9).
type Shader struct {
	Vertex   []byte
	Fragment []byte
	Hash     uint64
}

type shaderDescriptor struct {
	Vertex   string `json:"vertex"`
	Fragment string `json:"fragment"`
}

// NewShaderProvider builds a Provider[Shader]. There is no fallback shader:
// a missing shader means the drawable is dropped, per spec §7's device error
// policy ("log + drop drawable; continue").
func NewShaderProvider(vfs DataSource, monitor *UriMonitor) *Provider[Shader] {
	load := func(uri Uri) (*Shader, []Uri, error) {
		raw := vfs.Read(uri)
		if raw == nil {
			return nil, nil, fmt.Errorf("shader: read failed: %s", uri.Value())
		}
		var desc shaderDescriptor
		if err := json.Unmarshal(raw, &desc); err != nil {
			return nil, nil, fmt.Errorf("shader: decode descriptor %s: %w", uri.Value(), err)
		}
		vertUri := uri.Parent().Append(desc.Vertex)
		fragUri := uri.Parent().Append(desc.Fragment)
		vert := vfs.Read(vertUri)
		frag := vfs.Read(fragUri)
		if vert == nil || frag == nil {
			return nil, nil, fmt.Errorf("shader: missing stage bytes for %s", uri.Value())
		}
		h := fnv.New64a()
		h.Write(vert)
		h.Write(frag)
		return &Shader{Vertex: vert, Fragment: frag, Hash: h.Sum64()}, []Uri{uri, vertUri, fragUri}, nil
	}
	return NewProvider[Shader]("Shader", vfs, monitor, load, nil)
}
