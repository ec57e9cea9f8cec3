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
	"cmp"
	"slices"
)

// NodeSpec describes one node handed to a Builder.
type NodeSpec struct {
	OID         OID
	Label       string
	Type        string
	Description string
	Kind        string
	Access      string
	Status      string
	Units       string
	Module      string
	File        string
	Enums       []Enum
}

// Builder assembles a Graph. Nodes may be added in any order; arcs missing
// between a node and the top of the namespace are created unnamed.
// A Builder is not safe for concurrent use and can build only once.
type Builder struct {
	opts *Options

	arena    []Node
	roots    []NodeID
	byOID    map[string]NodeID
	modules  []Module
	byModule map[string]uint32
	built    bool
}

// NewBuilder creates an empty Builder.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{
		opts:     applyOptions(opts),
		byOID:    make(map[string]NodeID),
		byModule: make(map[string]uint32),
	}
}

// Add registers a node. Adding an OID twice merges the specs: fields already
// set are kept, empty ones are filled in.
func (b *Builder) Add(spec NodeSpec) (NodeID, error) {
	if b.built {
		return 0, ErrGraphBuilt
	}
	if len(spec.OID) == 0 {
		return 0, ErrInvalidOID
	}

	var parent NodeID
	for i := 1; i <= len(spec.OID); i++ {
		prefix := spec.OID[:i]
		key := prefix.String()
		id, ok := b.byOID[key]
		if !ok {
			id = NodeID(len(b.arena) + 1)
			b.arena = append(b.arena, Node{
				id:     id,
				oid:    prefix.Copy(),
				parent: parent,
			})
			b.byOID[key] = id
			if parent == 0 {
				b.roots = append(b.roots, id)
			} else {
				p := &b.arena[parent-1]
				p.children = append(p.children, id)
			}
		}
		parent = id
	}

	n := &b.arena[parent-1]
	fill(&n.label, spec.Label)
	fill(&n.typ, spec.Type)
	fill(&n.description, spec.Description)
	fill(&n.kind, spec.Kind)
	fill(&n.access, spec.Access)
	fill(&n.status, spec.Status)
	fill(&n.units, spec.Units)
	if n.module == 0 && spec.Module != "" {
		n.module = b.module(spec.Module, spec.File)
	}
	if len(n.enums) == 0 && len(spec.Enums) > 0 {
		n.enums = slices.Clone(spec.Enums)
	}
	return n.id, nil
}

// AddModule registers a module ahead of its nodes, typically to record the
// file it was loaded from.
func (b *Builder) AddModule(name, file string) {
	if name != "" {
		b.module(name, file)
	}
}

func (b *Builder) module(name, file string) uint32 {
	if idx, ok := b.byModule[name]; ok {
		fill(&b.modules[idx-1].file, file)
		return idx
	}
	b.modules = append(b.modules, Module{name: name, file: file})
	idx := uint32(len(b.modules))
	b.byModule[name] = idx
	return idx
}

func fill(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

// Build sorts children, links peers and the namespace-wide Next chain, and
// returns the frozen graph.
func (b *Builder) Build() (*Graph, error) {
	if b.built {
		return nil, ErrGraphBuilt
	}
	if len(b.arena) == 0 {
		return nil, ErrEmptyGraph
	}
	b.built = true

	g := &Graph{
		arena:       b.arena,
		modules:     b.modules,
		roots:       b.roots,
		byOID:       b.byOID,
		byLabel:     make(map[string][]NodeID),
		byQualified: make(map[string]NodeID),
		byModule:    b.byModule,
		peerMode:    b.opts.PeerMode,
		logger:      b.opts.Logger,
	}
	b.arena, b.roots, b.byOID, b.modules, b.byModule = nil, nil, nil, nil, nil

	bySubID := func(x, y NodeID) int {
		return cmp.Compare(g.arena[x-1].oid.SubID(), g.arena[y-1].oid.SubID())
	}
	slices.SortFunc(g.roots, bySubID)
	g.linkPeers(g.roots)

	for i := range g.arena {
		n := &g.arena[i]
		n.graph = g
		slices.SortFunc(n.children, bySubID)
		g.linkPeers(n.children)

		if n.label == "" {
			continue
		}
		g.byLabel[n.label] = append(g.byLabel[n.label], n.id)
		if n.module != 0 {
			key := g.modules[n.module-1].name + "::" + n.label
			if _, ok := g.byQualified[key]; !ok {
				g.byQualified[key] = n.id
			}
		}
	}

	g.linkNext()

	g.logger.Debug("graph built",
		"nodes", len(g.arena),
		"modules", len(g.modules),
		"roots", len(g.roots),
		"peer_mode", g.peerMode.String())
	return g, nil
}

func (g *Graph) linkPeers(ids []NodeID) {
	for i := 0; i+1 < len(ids); i++ {
		g.arena[ids[i]-1].nextPeer = ids[i+1]
	}
}

// linkNext threads a pre-order walk over the whole namespace.
func (g *Graph) linkNext() {
	stack := make([]NodeID, 0, len(g.roots))
	for i := len(g.roots) - 1; i >= 0; i-- {
		stack = append(stack, g.roots[i])
	}

	var prev *Node
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &g.arena[id-1]
		if prev != nil {
			prev.next = id
		}
		prev = n
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, n.children[i])
		}
	}
}
