// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package render

// pipeline.go is the pipeline cache shared by any concrete Device
// implementation: pipelines are uniquely identified by
// (shader_hash, vertex_input_hash, pipeline_state, target_format) per
// spec §4.11, built lazily on first use. Grounded on the teacher's
// render.go Model/Shader binding split (a Model references its bound
// Shader by id; here the pipeline key plays that role) generalized from
// "one shader, one GL program" to a full pipeline-state-object key.

import "sync"

// TargetFormat names the colour/depth format a pipeline targets.
type TargetFormat int

const (
	TargetFormatColour TargetFormat = iota
	TargetFormatShadow
)

// PipelineState is the subset of fixed-function state a pipeline key
// captures: cull mode, fill mode (see asset.RenderMode) and blend.
type PipelineState struct {
	CullBackFace bool
	Wireframe    bool
	Blend        bool
	LineWidth    float32
}

// PipelineKey uniquely identifies a pipeline.
type PipelineKey struct {
	ShaderHash      uint64
	VertexInputHash uint64
	State           PipelineState
	Target          TargetFormat
}

// Pipeline is an opaque handle to a built pipeline object; the concrete
// Device implementation defines what Handle actually points to (e.g. a
// VkPipeline).
type Pipeline struct {
	Key    PipelineKey
	Handle any
}

// PipelineCache builds and caches Pipelines by PipelineKey, and lets a
// Device invalidate every pipeline built from a given shader hash when
// that shader's provider entry reloads (spec §4.11: "invalidating a
// shader provider entry invalidates pipelines transitively").
type PipelineCache struct {
	mu        sync.Mutex
	pipelines map[PipelineKey]*Pipeline
	byShader  map[uint64]map[PipelineKey]struct{}
}

// NewPipelineCache returns an empty cache.
func NewPipelineCache() *PipelineCache {
	return &PipelineCache{
		pipelines: map[PipelineKey]*Pipeline{},
		byShader:  map[uint64]map[PipelineKey]struct{}{},
	}
}

// GetOrBuild returns the cached pipeline for key, building it via build if
// absent. build is called with the cache's lock released.
func (c *PipelineCache) GetOrBuild(key PipelineKey, build func(PipelineKey) any) *Pipeline {
	c.mu.Lock()
	if p, ok := c.pipelines[key]; ok {
		c.mu.Unlock()
		return p
	}
	c.mu.Unlock()

	handle := build(key)

	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.pipelines[key]; ok {
		return p
	}
	p := &Pipeline{Key: key, Handle: handle}
	c.pipelines[key] = p
	if c.byShader[key.ShaderHash] == nil {
		c.byShader[key.ShaderHash] = map[PipelineKey]struct{}{}
	}
	c.byShader[key.ShaderHash][key] = struct{}{}
	return p
}

// InvalidateShader evicts every pipeline built against shaderHash.
func (c *PipelineCache) InvalidateShader(shaderHash uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.byShader[shaderHash] {
		delete(c.pipelines, key)
	}
	delete(c.byShader, shaderHash)
}

// Len reports the number of cached pipelines.
func (c *PipelineCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pipelines)
}
