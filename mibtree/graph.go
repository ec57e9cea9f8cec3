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
	"iter"
	"log/slog"
	"strings"
)

// Resolver looks up a node by dotted OID or symbolic name.
type Resolver interface {
	Resolve(identifier string) (*Node, error)
}

// Graph is an immutable OID tree. It is safe for concurrent readers.
type Graph struct {
	arena   []Node
	modules []Module
	roots   []NodeID // top-level arcs (ccitt, iso, joint-iso-ccitt, ...)

	byOID       map[string]NodeID
	byLabel     map[string][]NodeID
	byQualified map[string]NodeID
	byModule    map[string]uint32

	peerMode PeerMode
	logger   *slog.Logger
}

var _ Resolver = (*Graph)(nil)

func (g *Graph) node(id NodeID) *Node {
	if id == 0 || int(id) > len(g.arena) {
		return nil
	}
	return &g.arena[id-1]
}

func (g *Graph) nodeList(ids []NodeID) []*Node {
	if len(ids) == 0 {
		return nil
	}
	out := make([]*Node, len(ids))
	for i, id := range ids {
		out[i] = g.node(id)
	}
	return out
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int { return len(g.arena) }

// PeerMode returns the peer membership convention of the graph.
func (g *Graph) PeerMode() PeerMode { return g.peerMode }

// Node returns the node with the given ID, or nil.
func (g *Graph) Node(id NodeID) *Node { return g.node(id) }

// Roots returns the top-level nodes sorted by arc.
func (g *Graph) Roots() []*Node { return g.nodeList(g.roots) }

// First returns the first node of the namespace in OID order.
func (g *Graph) First() *Node {
	if len(g.roots) == 0 {
		return nil
	}
	return g.node(g.roots[0])
}

// Nodes iterates over the whole namespace in OID order by following Next.
func (g *Graph) Nodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for n := g.First(); n != nil; n = n.Next() {
			if !yield(n) {
				return
			}
		}
	}
}

// Modules returns the modules referenced by the graph in registration order.
func (g *Graph) Modules() []*Module {
	out := make([]*Module, len(g.modules))
	for i := range g.modules {
		out[i] = &g.modules[i]
	}
	return out
}

// Module returns the module with the given name, or nil.
func (g *Graph) Module(name string) *Module {
	idx := g.byModule[name]
	if idx == 0 {
		return nil
	}
	return &g.modules[idx-1]
}

// NodeByOID returns the node at exactly oid, or nil.
func (g *Graph) NodeByOID(oid OID) *Node {
	return g.node(g.byOID[oid.String()])
}

// NodeByLabel returns the node with the given unqualified name, or nil.
// When several modules define the name, a node carrying a syntax wins,
// then the first registered one.
func (g *Graph) NodeByLabel(label string) *Node {
	ids := g.byLabel[label]
	for _, id := range ids {
		if g.arena[id-1].typ != "" {
			return g.node(id)
		}
	}
	if len(ids) > 0 {
		return g.node(ids[0])
	}
	return nil
}

// Resolve looks up identifier, which may be a dotted OID (".1.3.6.1" or
// "1.3.6.1"), a name ("sysDescr"), a qualified name ("SNMPv2-MIB::sysDescr"),
// or a name followed by numeric arcs ("ifEntry.1").
func (g *Graph) Resolve(identifier string) (*Node, error) {
	id := strings.TrimSpace(identifier)
	n := g.lookup(id)
	if n == nil {
		g.logger.Debug("identifier did not resolve", "identifier", identifier)
		return nil, &NotFoundError{Identifier: identifier}
	}
	g.logger.Debug("resolved identifier",
		"identifier", identifier,
		"oid", n.oid.String(),
		"label", n.label)
	return n, nil
}

func (g *Graph) lookup(id string) *Node {
	if id == "" {
		return nil
	}
	if IsNumericOID(id) {
		oid, err := ParseOID(id)
		if err != nil {
			return nil
		}
		return g.NodeByOID(oid)
	}

	name, suffix, _ := strings.Cut(id, ".")
	var n *Node
	if mod, label, ok := strings.Cut(name, "::"); ok {
		if mod == "" {
			n = g.NodeByLabel(label)
		} else {
			n = g.node(g.byQualified[name])
		}
	} else {
		n = g.NodeByLabel(name)
	}
	if n == nil || suffix == "" {
		return n
	}

	arcs, err := ParseOID(suffix)
	if err != nil {
		return nil
	}
	return g.NodeByOID(append(n.OID(), arcs...))
}
