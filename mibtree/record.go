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

import "strconv"

// Record is a flat, serializable view of a node. Relations are reduced to
// OIDs and "label(subid)" references; absent relations are empty.
type Record struct {
	OID         string   `json:"oid" yaml:"oid"`
	Label       string   `json:"label" yaml:"label"`
	Module      string   `json:"module,omitempty" yaml:"module,omitempty"`
	File        string   `json:"file,omitempty" yaml:"file,omitempty"`
	Type        string   `json:"type,omitempty" yaml:"type,omitempty"`
	Kind        string   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Access      string   `json:"access,omitempty" yaml:"access,omitempty"`
	Status      string   `json:"status,omitempty" yaml:"status,omitempty"`
	Units       string   `json:"units,omitempty" yaml:"units,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Enums       []Enum   `json:"enums,omitempty" yaml:"enums,omitempty"`
	Parent      string   `json:"parent,omitempty" yaml:"parent,omitempty"`
	Peers       []string `json:"peers,omitempty" yaml:"peers,omitempty"`
	Next        string   `json:"next,omitempty" yaml:"next,omitempty"`
	NextPeer    string   `json:"next_peer,omitempty" yaml:"next_peer,omitempty"`
	Children    []string `json:"children,omitempty" yaml:"children,omitempty"`
}

// NewRecord flattens n.
func NewRecord(n *Node) Record {
	r := Record{
		OID:         n.OID().String(),
		Label:       n.Label(),
		Type:        n.Type(),
		Kind:        n.Kind(),
		Access:      n.Access(),
		Status:      n.Status(),
		Units:       n.Units(),
		Description: n.Description(),
		Enums:       n.Enums(),
		Parent:      n.Parent().OID().String(),
		Peers:       refs(n.Peers()),
		Next:        n.Next().OID().String(),
		NextPeer:    n.NextPeer().OID().String(),
		Children:    refs(n.Children()),
	}
	if m := n.Module(); m != nil {
		r.Module = m.Name()
		r.File = m.File()
	}
	return r
}

// Records flattens the subtree rooted at root in pre-order.
func Records(root *Node) []Record {
	var out []Record
	for n := range Subtree(root) {
		out = append(out, NewRecord(n))
	}
	return out
}

func refs(nodes []*Node) []string {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Label() + "(" + strconv.FormatUint(uint64(n.SubID()), 10) + ")"
	}
	return out
}
