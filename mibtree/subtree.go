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
	"slices"
)

// Subtree returns a pre-order iterator over root and its descendants,
// children visited by ascending subid. Only the Children relation is
// followed, so the walk never leaves the subtree. The sequence can be
// iterated any number of times.
func Subtree(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if root == nil {
			return
		}
		root.yieldAll(yield)
	}
}

// EnumerateSubtree collects Subtree(root). A leaf yields []*Node{root};
// a nil root yields nil.
func EnumerateSubtree(root *Node) []*Node {
	return slices.Collect(Subtree(root))
}

// CountDescendants returns the number of nodes strictly below n.
func CountDescendants(n *Node) int {
	if n == nil {
		return 0
	}
	count := 0
	for _, c := range n.Children() {
		count += 1 + CountDescendants(c)
	}
	return count
}
