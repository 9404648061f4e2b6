// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

// material.go defines the polymorphic Material contract (spec §3/§6) and its
// two concrete kinds, Unlit and Lit. Grounded on the teacher's role.go
// (SetMaterial/SetKd-style surface parameters) and original_source's
// lit_material.hpp (alpha mode/cutoff naming).

import (
	"encoding/json"
	"math"
)

// DrawMode selects the rasterization primitive mode for a material.
type DrawMode int

const (
	DrawFill DrawMode = iota
	DrawLine
	DrawPoint
)

func (m DrawMode) String() string {
	switch m {
	case DrawLine:
		return "line"
	case DrawPoint:
		return "point"
	default:
		return "fill"
	}
}

// RenderMode groups the rasterization state a material requests.
type RenderMode struct {
	Mode       DrawMode
	LineWidth  float32
	DepthTest  bool
}

// AlphaMode controls how a material's alpha channel affects blending.
type AlphaMode int

const (
	AlphaOpaque AlphaMode = iota
	AlphaBlend
	AlphaMask
)

// ShaderWriter is implemented by the render device; materials write their
// descriptor-set bindings and uniform bytes through it without knowing
// anything about the concrete graphics API.
type ShaderWriter interface {
	WriteTexture(set, binding uint32, tex *Texture)
	WriteUniform(set, binding uint32, data []byte)
}

// TextureLookup resolves a texture Uri to a loaded Texture, substituting the
// shared fallback texture on a miss.
type TextureLookup interface {
	Texture(uri Uri) *Texture
}

// Material is the polymorphic capability implemented by every concrete
// material kind.
type Material interface {
	Serializable
	ShaderUri() Uri
	RenderMode() RenderMode
	WriteSets(writer ShaderWriter, textures TextureLookup)
	Clone() Material
}

// UnlitMaterial is a flat-tinted, single-texture material.
type UnlitMaterial struct {
	Tint       [4]float32
	Texture    Uri
	Mode       RenderMode
	Shader     Uri
}

func NewUnlitMaterial() *UnlitMaterial {
	return &UnlitMaterial{Tint: [4]float32{1, 1, 1, 1}, Shader: NewUri("shaders/unlit.json")}
}

func (m *UnlitMaterial) TypeName() string  { return "UnlitMaterial" }
func (m *UnlitMaterial) ShaderUri() Uri    { return m.Shader }
func (m *UnlitMaterial) RenderMode() RenderMode { return m.Mode }

func (m *UnlitMaterial) WriteSets(writer ShaderWriter, textures TextureLookup) {
	writer.WriteUniform(1, 0, f32ToBytes(m.Tint[:]))
	writer.WriteTexture(1, 1, textures.Texture(m.Texture))
}

func (m *UnlitMaterial) Clone() Material {
	c := *m
	return &c
}

func (m *UnlitMaterial) Serialize() (json.RawMessage, error) {
	return json.Marshal(struct {
		Tint    [4]float32 `json:"tint"`
		Texture string     `json:"texture"`
		Mode    string     `json:"render_mode"`
	}{m.Tint, m.Texture.Value(), m.Mode.Mode.String()})
}

func (m *UnlitMaterial) Deserialize(data json.RawMessage) error {
	var aux struct {
		Tint    [4]float32 `json:"tint"`
		Texture string     `json:"texture"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	m.Tint = aux.Tint
	m.Texture = NewUri(aux.Texture)
	return nil
}

// LitMaterial is a PBR-ish material with albedo/metallic/roughness/emissive
// textures and alpha handling.
type LitMaterial struct {
	Albedo           Uri
	Metallic         Uri
	Roughness        float32
	MetallicFactor   float32
	Emissive         Uri
	AlphaMode        AlphaMode
	AlphaCutoff      float32
	Mode             RenderMode
	Shader           Uri
}

func NewLitMaterial() *LitMaterial {
	return &LitMaterial{MetallicFactor: 1, Roughness: 1, AlphaCutoff: 0.5, Shader: NewUri("shaders/lit.json")}
}

func (m *LitMaterial) TypeName() string       { return "LitMaterial" }
func (m *LitMaterial) ShaderUri() Uri         { return m.Shader }
func (m *LitMaterial) RenderMode() RenderMode { return m.Mode }

func (m *LitMaterial) WriteSets(writer ShaderWriter, textures TextureLookup) {
	writer.WriteUniform(1, 0, f32ToBytes([]float32{m.MetallicFactor, m.Roughness, float32(m.AlphaMode), m.AlphaCutoff}))
	writer.WriteTexture(1, 1, textures.Texture(m.Albedo))
	writer.WriteTexture(1, 2, textures.Texture(m.Metallic))
	writer.WriteTexture(1, 3, textures.Texture(m.Emissive))
}

func (m *LitMaterial) Clone() Material {
	c := *m
	return &c
}

func (m *LitMaterial) Serialize() (json.RawMessage, error) {
	return json.Marshal(struct {
		Albedo      string  `json:"albedo"`
		Metallic    string  `json:"metallic"`
		Emissive    string  `json:"emissive"`
		Roughness   float32 `json:"roughness"`
		MetalFactor float32 `json:"metallic_factor"`
		AlphaMode   int     `json:"alpha_mode"`
		AlphaCutoff float32 `json:"alpha_cutoff"`
	}{m.Albedo.Value(), m.Metallic.Value(), m.Emissive.Value(), m.Roughness, m.MetallicFactor, int(m.AlphaMode), m.AlphaCutoff})
}

func (m *LitMaterial) Deserialize(data json.RawMessage) error {
	var aux struct {
		Albedo      string  `json:"albedo"`
		Metallic    string  `json:"metallic"`
		Emissive    string  `json:"emissive"`
		Roughness   float32 `json:"roughness"`
		MetalFactor float32 `json:"metallic_factor"`
		AlphaMode   int     `json:"alpha_mode"`
		AlphaCutoff float32 `json:"alpha_cutoff"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	m.Albedo = NewUri(aux.Albedo)
	m.Metallic = NewUri(aux.Metallic)
	m.Emissive = NewUri(aux.Emissive)
	m.Roughness = aux.Roughness
	m.MetallicFactor = aux.MetalFactor
	m.AlphaMode = AlphaMode(aux.AlphaMode)
	m.AlphaCutoff = aux.AlphaCutoff
	return nil
}

func f32ToBytes(v []float32) []byte {
	out := make([]byte, 0, len(v)*4)
	for _, f := range v {
		bits := math.Float32bits(f)
		out = append(out, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
	}
	return out
}
