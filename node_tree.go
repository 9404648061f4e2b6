// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package levk

// node_tree.go is the scene graph's transform hierarchy, per spec §3/§8's
// invariant 1 ("p.children.contains(n.id) iff n.parent == p.id"). Grounded
// on the teacher's pov.go (parent/child id bookkeeping, cached world
// matrix) generalized from a single fixed hierarchy to the spec's
// resource-URI-free `Id<Node>` tree with explicit root-list tracking.

import (
	"log/slog"

	"github.com/karnkaul/levk/asset"
	"github.com/karnkaul/levk/math/lin"
)

// Node is the phantom type parameter identifying node ids.
type Node struct{}

// NodeId identifies one node in a NodeTree.
type NodeId = asset.Id[Node]

type node struct {
	id        NodeId
	name      string
	parent    NodeId // zero (invalid) if this is a root.
	children  []NodeId
	transform Transform
}

// NodeTree is an `Id<Node>`-keyed hierarchy of transforms. The zero value is
// not usable; use NewNodeTree.
type NodeTree struct {
	store roots
	ids   asset.Store[Node]
	nodes map[NodeId]*node
}

// roots preserves insertion order, matching the "monotonic insertion-ordered
// maps" design note (spec §9) applied to the node tree's root list.
type roots []NodeId

// NewNodeTree returns an empty tree.
func NewNodeTree() *NodeTree {
	return &NodeTree{nodes: map[NodeId]*node{}}
}

// Add creates a new node with the given local transform under parent. If
// parent is the zero id the node becomes a root. An unknown, non-zero
// parent is a warn-and-create-as-root per spec §7's error table.
func (t *NodeTree) Add(name string, parent NodeId, transform Transform) NodeId {
	id := t.ids.Next()
	n := &node{id: id, name: name, transform: transform}
	if parent.Valid() {
		if p, ok := t.nodes[parent]; ok {
			n.parent = parent
			p.children = append(p.children, id)
			t.nodes[id] = n
			return id
		}
		slog.Warn("node tree: add with unknown parent, creating as root", "parent", parent)
	}
	t.nodes[id] = n
	t.store = append(t.store, id)
	return id
}

// Remove deletes id and its entire subtree, unlinking it from its parent (or
// the root list).
func (t *NodeTree) Remove(id NodeId) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	for _, child := range append([]NodeId(nil), n.children...) {
		t.Remove(child)
	}
	if n.parent.Valid() {
		if p, ok := t.nodes[n.parent]; ok {
			p.children = removeId(p.children, id)
		}
	} else {
		t.store = removeId(roots(t.store), id)
	}
	delete(t.nodes, id)
}

// Reparent moves id to be a child of newParent (zero = becomes a root).
// A no-op (ignored) request is: unknown id, or newParent == id (self-parent
// rejection), or unknown non-zero newParent, per spec §7 ("bad id in
// reparent: ignore (no-op)").
func (t *NodeTree) Reparent(id, newParent NodeId) {
	if id == newParent {
		return
	}
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	if newParent.Valid() {
		if _, ok := t.nodes[newParent]; !ok {
			return
		}
	}

	// unlink from current location.
	if n.parent.Valid() {
		if p, ok := t.nodes[n.parent]; ok {
			p.children = removeId(p.children, id)
		}
	} else {
		t.store = removeId(roots(t.store), id)
	}

	n.parent = newParent
	if newParent.Valid() {
		t.nodes[newParent].children = append(t.nodes[newParent].children, id)
	} else {
		t.store = append(t.store, id)
	}
}

// Parent returns id's parent, or the zero id if id is a root or unknown.
func (t *NodeTree) Parent(id NodeId) NodeId {
	if n, ok := t.nodes[id]; ok {
		return n.parent
	}
	return NodeId(0)
}

// Children returns id's direct children.
func (t *NodeTree) Children(id NodeId) []NodeId {
	if n, ok := t.nodes[id]; ok {
		return n.children
	}
	return nil
}

// Roots returns every node with no parent, in insertion order.
func (t *NodeTree) Roots() []NodeId {
	return append([]NodeId(nil), t.store...)
}

// Len returns the total number of nodes in the tree.
func (t *NodeTree) Len() int {
	return len(t.nodes)
}

// Transform returns a pointer to id's local transform, or nil if id is unknown.
func (t *NodeTree) Transform(id NodeId) *Transform {
	if n, ok := t.nodes[id]; ok {
		return &n.transform
	}
	return nil
}

// Name returns id's display name.
func (t *NodeTree) Name(id NodeId) string {
	if n, ok := t.nodes[id]; ok {
		return n.name
	}
	return ""
}

// FindByName linearly scans for the first node named name: the one added
// earliest (lowest id) when several share the name.
func (t *NodeTree) FindByName(name string) (NodeId, bool) {
	var found NodeId
	for id, n := range t.nodes {
		if n.name == name && (!found.Valid() || id < found) {
			found = id
		}
	}
	return found, found.Valid()
}

// GlobalTransform computes id's global transform matrix as the product of
// every local transform from the root down to id, in O(depth) by walking
// parent links (no per-node caching, since a node's own dirty matrix and
// every ancestor's would all need joint invalidation tracking; the call
// pattern here is once-per-node-per-frame, matching the teacher's
// recompute-per-frame matrix strategy).
func (t *NodeTree) GlobalTransform(id NodeId) *lin.M4 {
	n, ok := t.nodes[id]
	if !ok {
		return lin.NewM4I()
	}
	local := n.transform.Matrix()
	if !n.parent.Valid() {
		return local
	}
	parentGlobal := t.GlobalTransform(n.parent)
	out := lin.NewM4()
	out.Mult(local, parentGlobal)
	return out
}

// GlobalRotation composes id's local rotation with every ancestor's, root
// down to id, mirroring GlobalTransform but for the rotation component
// alone (needed wherever a consumer wants the orientation without paying
// for a full matrix decomposition, e.g. camera-follow).
func (t *NodeTree) GlobalRotation(id NodeId) lin.Q {
	n, ok := t.nodes[id]
	if !ok {
		return lin.Q{W: 1}
	}
	local := n.transform.Rotation
	if !n.parent.Valid() {
		return local
	}
	parent := t.GlobalRotation(n.parent)
	var out lin.Q
	out.Mult(&local, &parent)
	return out
}

func removeId(ids []NodeId, id NodeId) []NodeId {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
