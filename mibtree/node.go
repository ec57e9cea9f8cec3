// Copyright 2025 Edgeo SCADA
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mibtree

import (
	"fmt"
	"slices"
)

// NodeID indexes a node in its graph (1-based). Zero means no node.
type NodeID uint32

// Enum is a labeled value of an enumerated INTEGER.
type Enum struct {
	Label string `json:"label" yaml:"label"`
	Value int64  `json:"value" yaml:"value"`
}

// String returns "label(value)".
func (e Enum) String() string {
	return fmt.Sprintf("%s(%d)", e.Label, e.Value)
}

// Module identifies the MIB module that defines a node. Modules are owned
// by their Graph and read-only; a nil *Module reads as empty.
type Module struct {
	name string
	file string
}

// Name returns the module name.
func (m *Module) Name() string {
	if m == nil {
		return ""
	}
	return m.name
}

// File returns the path the module was loaded from, "" when unknown.
func (m *Module) File() string {
	if m == nil {
		return ""
	}
	return m.file
}

// String returns the module name.
func (m *Module) String() string { return m.Name() }

// Node is one entry of the OID tree. Nodes live in their Graph and are
// never modified after Builder.Build; every relation is an index into the
// same graph.
//
// All accessors are safe on a nil *Node and return zero values, so a
// template can walk through an absent relation without failing.
type Node struct {
	graph *Graph
	id    NodeID
	oid   OID

	label       string
	typ         string
	description string
	kind        string
	access      string
	status      string
	units       string
	module      uint32 // 1-based index into graph.modules, 0 = none
	enums       []Enum

	parent   NodeID
	children []NodeID // ascending subid once built
	next     NodeID   // pre-order successor over the whole namespace
	nextPeer NodeID
}

// ID returns the node's index in its graph.
func (n *Node) ID() NodeID {
	if n == nil {
		return 0
	}
	return n.id
}

// OID returns a copy of the node's absolute OID.
func (n *Node) OID() OID {
	if n == nil {
		return nil
	}
	return n.oid.Copy()
}

// SubID returns the last arc of the OID.
func (n *Node) SubID() uint32 {
	if n == nil {
		return 0
	}
	return n.oid.SubID()
}

// Depth returns the number of arcs in the OID.
func (n *Node) Depth() int {
	if n == nil {
		return 0
	}
	return len(n.oid)
}

// Label returns the symbolic name, or "" for an unnamed arc.
func (n *Node) Label() string {
	if n == nil {
		return ""
	}
	return n.label
}

// QualifiedLabel returns "MODULE::label" when the module is known.
func (n *Node) QualifiedLabel() string {
	if n == nil {
		return ""
	}
	if m := n.Module(); m != nil && n.label != "" {
		return m.name + "::" + n.label
	}
	return n.label
}

// Type returns the SMI syntax name, or "" for a pure container.
func (n *Node) Type() string {
	if n == nil {
		return ""
	}
	return n.typ
}

// Description returns the DESCRIPTION clause text.
func (n *Node) Description() string {
	if n == nil {
		return ""
	}
	return n.description
}

// Kind returns the structural classification (table, row, column, scalar, ...).
func (n *Node) Kind() string {
	if n == nil {
		return ""
	}
	return n.kind
}

// Access returns the MAX-ACCESS value.
func (n *Node) Access() string {
	if n == nil {
		return ""
	}
	return n.access
}

// Status returns the STATUS value.
func (n *Node) Status() string {
	if n == nil {
		return ""
	}
	return n.status
}

// Units returns the UNITS clause text.
func (n *Node) Units() string {
	if n == nil {
		return ""
	}
	return n.units
}

// Module returns the defining module, or nil.
func (n *Node) Module() *Module {
	if n == nil || n.module == 0 {
		return nil
	}
	return &n.graph.modules[n.module-1]
}

// Enums returns the enumerated values in definition order.
func (n *Node) Enums() []Enum {
	if n == nil {
		return nil
	}
	return slices.Clone(n.enums)
}

// Parent returns the node one arc up, or nil at the top of the namespace.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.graph.node(n.parent)
}

// Children returns the direct children sorted by subid.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	return n.graph.nodeList(n.children)
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return n == nil || len(n.children) == 0
}

// Peers returns the nodes sharing this node's parent, ordered by subid.
// Whether the node itself is listed depends on the graph's PeerMode.
func (n *Node) Peers() []*Node {
	if n == nil {
		return nil
	}
	siblings := n.graph.roots
	if p := n.graph.node(n.parent); p != nil {
		siblings = p.children
	}
	peers := make([]*Node, 0, len(siblings))
	for _, id := range siblings {
		if id == n.id && n.graph.peerMode == PeersExcludeSelf {
			continue
		}
		peers = append(peers, n.graph.node(id))
	}
	return peers
}

// Next returns the node following this one in a pre-order walk of the
// whole namespace, or nil for the last node. It is not bounded by any
// subtree; use Subtree for that.
func (n *Node) Next() *Node {
	if n == nil {
		return nil
	}
	return n.graph.node(n.next)
}

// NextPeer returns the next sibling, or nil for the last child.
func (n *Node) NextPeer() *Node {
	if n == nil {
		return nil
	}
	return n.graph.node(n.nextPeer)
}

// Descendants returns every node below this one in pre-order.
func (n *Node) Descendants() []*Node {
	nodes := EnumerateSubtree(n)
	if len(nodes) <= 1 {
		return nil
	}
	return nodes[1:]
}

// String returns "label (oid)", "(oid)" for unnamed nodes and "" for nil.
func (n *Node) String() string {
	if n == nil {
		return ""
	}
	if n.label == "" {
		return "(" + n.oid.String() + ")"
	}
	return n.label + " (" + n.oid.String() + ")"
}

func (n *Node) yieldAll(yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for _, id := range n.children {
		if !n.graph.node(id).yieldAll(yield) {
			return false
		}
	}
	return true
}
