// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package levk

// scene_export.go is the scene-level counterpart to asset/serializer.go's
// per-attachment envelope: Export walks the node tree and every entity's
// attachments into one JSON document, and Import rebuilds a Scene from that
// document. Grounded on the original levk/scene/scene.hpp's to_json/from_json
// pair (node tree, camera, lights, then entities-with-attachments, in that
// order) and asset/material.go's reg.Serialize/Deserialize idiom for the
// polymorphic attachment payloads.
//
// Node and entity ids are never reused (asset.Store only ever counts up), so
// a round trip cannot recreate the exact ids a scene had before export.
// Import instead replays the tree and entity structure through the normal
// Add/spawnBoundTo paths and remaps the document's node ids to whatever ids
// that replay mints, the same way a deserializer rebuilds a linked structure
// from a flat id-referencing wire format.

import (
	"encoding/json"
	"fmt"

	"github.com/karnkaul/levk/asset"
)

type nodeDoc struct {
	Id        uint64    `json:"id"`
	Name      string    `json:"name"`
	Transform Transform `json:"transform"`
	Children  []nodeDoc `json:"children,omitempty"`
}

type nodeTreeDoc struct {
	Roots []nodeDoc `json:"roots"`
}

type entityDoc struct {
	NodeId      uint64            `json:"node_id"`
	Active      bool              `json:"active"`
	Attachments []json.RawMessage `json:"attachments,omitempty"`
}

type sceneDoc struct {
	TypeName string      `json:"type_name"`
	Name     string      `json:"name"`
	Camera   SceneCamera `json:"camera"`
	Lights   Lights      `json:"lights"`
	NodeTree nodeTreeDoc `json:"node_tree"`
	Entities []entityDoc `json:"entities"`
}

// sceneTypeName is the type_name recorded at the top of every exported
// scene document.
const sceneTypeName = "Scene"

// exportNodeTree walks t root-down into the wire shape Import expects,
// visiting children in the same order NodeTree.Children returns them.
func exportNodeTree(t *NodeTree) nodeTreeDoc {
	var walk func(ids []NodeId) []nodeDoc
	walk = func(ids []NodeId) []nodeDoc {
		docs := make([]nodeDoc, 0, len(ids))
		for _, id := range ids {
			docs = append(docs, nodeDoc{
				Id:        uint64(id),
				Name:      t.Name(id),
				Transform: *t.Transform(id),
				Children:  walk(t.Children(id)),
			})
		}
		return docs
	}
	return nodeTreeDoc{Roots: walk(t.Roots())}
}

// importNodeTree recreates doc's hierarchy in t via Add, parent before
// child, and returns a map from the document's node ids to the ids t minted
// for them.
func importNodeTree(t *NodeTree, doc nodeTreeDoc) map[uint64]NodeId {
	remap := make(map[uint64]NodeId)
	var walk func(nodes []nodeDoc, parent NodeId)
	walk = func(nodes []nodeDoc, parent NodeId) {
		for _, n := range nodes {
			id := t.Add(n.Name, parent, n.Transform)
			remap[n.Id] = id
			walk(n.Children, id)
		}
	}
	walk(doc.Roots, NodeId(0))
	return remap
}

// Export serializes the scene's camera, lights, node tree and every entity's
// attachments into a single JSON document, using reg to encode each
// attachment's polymorphic payload. Components with no registered
// Attachment counterpart (eg SkinnedMeshRenderer) are silently omitted from
// the exported entity, the same gap Attachments() itself documents.
func (s *Scene) Export(reg *asset.Serializer) (json.RawMessage, error) {
	doc := sceneDoc{
		TypeName: sceneTypeName,
		Name:     s.Name,
		Camera:   s.Camera,
		Lights:   s.Lights,
		NodeTree: exportNodeTree(s.Nodes),
	}
	for _, id := range s.entityOrder {
		e, ok := s.entities[id]
		if !ok {
			continue
		}
		entity := entityDoc{NodeId: uint64(e.node), Active: e.Active}
		for _, att := range e.Attachments() {
			raw, err := reg.Serialize(att)
			if err != nil {
				return nil, fmt.Errorf("export entity %d attachment %s: %w", id, att.TypeName(), err)
			}
			entity.Attachments = append(entity.Attachments, raw)
		}
		doc.Entities = append(doc.Entities, entity)
	}
	return json.Marshal(doc)
}

// Import replaces s's node tree, camera, lights and entities with the
// contents of data, using reg to resolve and construct each attachment's
// live component via Attachment.Attach. An entity referencing an unknown
// node id, or an attachment reg can't deserialize into an Attachment, is
// skipped rather than failing the whole import; only reg's own deserialize
// failures are logged.
func (s *Scene) Import(reg *asset.Serializer, data json.RawMessage) error {
	var doc sceneDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("scene import: %w", err)
	}

	s.Name = doc.Name
	s.Camera = doc.Camera
	s.Lights = doc.Lights
	s.Nodes = NewNodeTree()
	s.entities = map[EntityId]*Entity{}
	s.entityOrder = nil

	remap := importNodeTree(s.Nodes, doc.NodeTree)

	for _, ent := range doc.Entities {
		node, ok := remap[ent.NodeId]
		if !ok {
			continue
		}
		e := s.spawnBoundTo(node)
		e.Active = ent.Active
		for _, raw := range ent.Attachments {
			deserialized, ok := reg.Deserialize(raw)
			if !ok {
				continue
			}
			attachment, ok := deserialized.Value.(Attachment)
			if !ok {
				continue
			}
			attachment.Attach(e)
		}
	}
	return nil
}
