// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

// providers.go aggregates one Provider[T] per asset kind into a single
// addressable AssetProviders, per spec §4.4: "the provider set is
// addressable as a whole via an AssetProviders aggregate that exposes typed
// accessors and a helper build_asset_list(scene_uri)".

import (
	"encoding/json"
	"fmt"
)

// AssetProviders owns one provider per asset kind sharing a common VFS and
// modification monitor.
type AssetProviders struct {
	vfs        DataSource
	monitor    *UriMonitor
	serializer *Serializer

	shader            *Provider[Shader]
	texture           *Provider[Texture]
	cubemap           *Provider[Cubemap]
	material          *Provider[Material]
	skeleton          *Provider[Skeleton]
	skeletalAnimation *Provider[SkeletalAnimation]
	staticMesh        *Provider[StaticMesh]
	skinnedMesh       *Provider[SkinnedMesh]
	font              *Provider[Font]
	audioPcm          *Provider[AudioPcm]
}

// NewAssetProviders constructs every per-kind provider over the given VFS
// and monitor, and registers Unlit/Lit material kinds on a fresh Serializer.
func NewAssetProviders(vfs DataSource, monitor *UriMonitor) *AssetProviders {
	s := NewSerializer()
	s.Bind("UnlitMaterial", func() Serializable { return NewUnlitMaterial() })
	s.Bind("LitMaterial", func() Serializable { return NewLitMaterial() })

	p := &AssetProviders{vfs: vfs, monitor: monitor, serializer: s}
	p.shader = NewShaderProvider(vfs, monitor)
	p.texture = NewTextureProvider(vfs, monitor)
	p.cubemap = NewCubemapProvider(vfs, monitor)
	p.material = newMaterialProvider(vfs, monitor, s)
	p.skeleton = NewSkeletonProvider(vfs, monitor)
	p.skeletalAnimation = NewSkeletalAnimationProvider(vfs, monitor)
	p.staticMesh = NewStaticMeshProvider(vfs, monitor)
	p.skinnedMesh = NewSkinnedMeshProvider(vfs, monitor)
	p.font = NewFontProvider(vfs, monitor)
	p.audioPcm = NewAudioPcmProvider(vfs, monitor)
	return p
}

func (p *AssetProviders) Shader() *Provider[Shader]                       { return p.shader }
func (p *AssetProviders) Texture() *Provider[Texture]                     { return p.texture }
func (p *AssetProviders) Cubemap() *Provider[Cubemap]                     { return p.cubemap }
func (p *AssetProviders) Material() *Provider[Material]                   { return p.material }
func (p *AssetProviders) Skeleton() *Provider[Skeleton]                   { return p.skeleton }
func (p *AssetProviders) SkeletalAnimation() *Provider[SkeletalAnimation] { return p.skeletalAnimation }
func (p *AssetProviders) StaticMesh() *Provider[StaticMesh]               { return p.staticMesh }
func (p *AssetProviders) SkinnedMesh() *Provider[SkinnedMesh]             { return p.skinnedMesh }
func (p *AssetProviders) Font() *Provider[Font]                           { return p.font }
func (p *AssetProviders) AudioPcm() *Provider[AudioPcm]                   { return p.audioPcm }
func (p *AssetProviders) Serializer() *Serializer                         { return p.serializer }

// ReloadOutOfDate fans out to every provider, evicting any entry whose
// dependencies have changed on disk since it was loaded.
func (p *AssetProviders) ReloadOutOfDate() {
	p.shader.ReloadOutOfDate()
	p.texture.ReloadOutOfDate()
	p.cubemap.ReloadOutOfDate()
	p.material.ReloadOutOfDate()
	p.skeleton.ReloadOutOfDate()
	p.skeletalAnimation.ReloadOutOfDate()
	p.staticMesh.ReloadOutOfDate()
	p.skinnedMesh.ReloadOutOfDate()
	p.font.ReloadOutOfDate()
	p.audioPcm.ReloadOutOfDate()
}

// newMaterialProvider decodes polymorphic Material JSON through the shared
// Serializer, then records the material's ShaderUri() as a dependency
// alongside the material's own Uri -- the shader is tracked so that re-saving a shader
// invalidates any pipeline built from this material transitively, matching
// the §9 Open Question note about shader transitivity in build_asset_list.
func newMaterialProvider(vfs DataSource, monitor *UriMonitor, s *Serializer) *Provider[Material] {
	load := func(uri Uri) (*Material, []Uri, error) {
		raw := vfs.Read(uri)
		if raw == nil {
			return nil, nil, fmt.Errorf("material: read failed: %s", uri.Value())
		}
		result, ok := s.Deserialize(json.RawMessage(raw))
		if !ok {
			return nil, nil, fmt.Errorf("material: deserialize failed: %s", uri.Value())
		}
		mat, ok := result.Value.(Material)
		if !ok {
			return nil, nil, fmt.Errorf("material: type %s is not a Material: %s", result.TypeName, uri.Value())
		}
		return &mat, []Uri{uri, mat.ShaderUri()}, nil
	}
	return NewProvider[Material]("Material", vfs, monitor, load, nil)
}

// sceneAssetDoc is the slice of a scene export document (see the root
// package's Scene.Export) that BuildAssetList needs: only the entities and
// their attachments carry asset Uris; the node tree, camera and lights
// don't. Kept local and JSON-only rather than importing the root package's
// Attachment types, since asset is a leaf package the root package imports,
// not the reverse.
type sceneAssetDoc struct {
	Entities []struct {
		Attachments []json.RawMessage `json:"attachments"`
	} `json:"entities"`
}

// attachmentEnvelope reads the one field every attachment payload carries,
// mirroring Serializer's own envelope (see serializer.go).
type attachmentEnvelope struct {
	TypeName string `json:"type_name"`
}

// BuildAssetList reads the scene document at sceneUri and transitively
// collects every entity attachment's referenced Uri into a deduplicated
// set, used by the level loader to pre-load before scene instantiation
// (spec §4.4). A ShapeAttachment's material contributes its own shader Uri
// transitively even though the scene document never names the shader
// directly, matching the original per-material dependency list.
func (p *AssetProviders) BuildAssetList(sceneUri Uri) []Uri {
	raw := p.vfs.Read(sceneUri)
	if raw == nil {
		return nil
	}
	var doc sceneAssetDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil
	}

	seen := map[uint64]Uri{}
	add := func(value string) {
		if value == "" {
			return
		}
		u := sceneUri.Parent().Append(value)
		seen[u.Hash()] = u
	}
	addMaterial := func(value string) {
		if value == "" {
			return
		}
		matUri := sceneUri.Parent().Append(value)
		seen[matUri.Hash()] = matUri
		if mat := p.material.Get(matUri); mat != nil {
			shaderUri := (*mat).ShaderUri()
			seen[shaderUri.Hash()] = shaderUri
		}
	}

	for _, entity := range doc.Entities {
		for _, raw := range entity.Attachments {
			var env attachmentEnvelope
			if err := json.Unmarshal(raw, &env); err != nil {
				continue
			}
			switch env.TypeName {
			case "MeshAttachment":
				var aux struct {
					Uri string `json:"uri"`
				}
				if json.Unmarshal(raw, &aux) == nil {
					add(aux.Uri)
				}
			case "SkeletonAttachment":
				var aux struct {
					Uri         string `json:"uri"`
					EnabledClip string `json:"enabled_clip"`
				}
				if json.Unmarshal(raw, &aux) == nil {
					add(aux.Uri)
					add(aux.EnabledClip)
				}
			case "ShapeAttachment":
				var aux struct {
					MaterialUri string `json:"material_uri"`
				}
				if json.Unmarshal(raw, &aux) == nil {
					addMaterial(aux.MaterialUri)
				}
			}
		}
	}

	out := make([]Uri, 0, len(seen))
	for _, u := range seen {
		out = append(out, u)
	}
	return out
}
