package mibtree

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerateChildrenInSubIDOrder(t *testing.T) {
	g := buildTree(t, map[string]string{
		"1.3.6.1.2.1.1":   "system",
		"1.3.6.1.2.1.1.9": "sysORTable",
		"1.3.6.1.2.1.1.1": "sysDescr",
		"1.3.6.1.2.1.1.3": "sysUpTime",
	})
	root := mustResolve(t, g, "system")

	nodes := EnumerateSubtree(root)
	require.Len(t, nodes, 4)
	assert.Same(t, root, nodes[0])
	assert.Equal(t, []uint32{1, 3, 9}, subIDs(nodes[1:]))
}

func TestEnumerateLeaf(t *testing.T) {
	g := loadSystem(t)
	leaf := mustResolve(t, g, "sysDescr")

	nodes := EnumerateSubtree(leaf)
	require.Len(t, nodes, 1)
	assert.Same(t, leaf, nodes[0])
	assert.Nil(t, leaf.Descendants())
	assert.True(t, leaf.IsLeaf())
}

func TestEnumerateNil(t *testing.T) {
	assert.Nil(t, EnumerateSubtree(nil))
	assert.Equal(t, 0, CountDescendants(nil))
}

func TestEnumerateCompleteness(t *testing.T) {
	g := loadSystem(t)

	for n := range g.Nodes() {
		nodes := EnumerateSubtree(n)
		assert.Len(t, nodes, 1+CountDescendants(n), "subtree of %s", n)

		seen := make(map[NodeID]bool, len(nodes))
		for _, d := range nodes {
			assert.False(t, seen[d.ID()], "%s enumerated twice under %s", d, n)
			seen[d.ID()] = true
			assert.True(t, d.OID().HasPrefix(n.OID()), "%s is outside %s", d, n)
		}
	}
}

func TestEnumeratePreOrder(t *testing.T) {
	g := loadSystem(t)

	for n := range g.Nodes() {
		want := []*Node{n}
		for _, c := range n.Children() {
			want = append(want, EnumerateSubtree(c)...)
		}
		assert.Equal(t, nodeLabels(want), nodeLabels(EnumerateSubtree(n)), "subtree of %s", n)
	}

	entry := mustResolve(t, g, "ifEntry")
	assert.Equal(t,
		[]string{"ifEntry", "ifIndex", "ifSpeed", "ifAdminStatus", "ifOperStatus"},
		nodeLabels(EnumerateSubtree(entry)))
}

func TestEnumerateOIDConsistency(t *testing.T) {
	g := loadSystem(t)
	root := mustResolve(t, g, "mib-2")

	for _, n := range EnumerateSubtree(root)[1:] {
		p := n.Parent()
		require.NotNil(t, p, "%s has no parent", n)
		assert.Equal(t, p.OID().Child(n.SubID()), n.OID())
	}
}

func TestEnumerateRestartable(t *testing.T) {
	g := loadSystem(t)
	root := mustResolve(t, g, "interfaces")

	first := EnumerateSubtree(root)
	second := EnumerateSubtree(root)
	assert.Equal(t, first, second)

	seq := Subtree(root)
	assert.Equal(t, slices.Collect(seq), slices.Collect(seq))

	// Early termination leaves the sequence reusable.
	for range seq {
		break
	}
	assert.Len(t, slices.Collect(seq), len(first))
}

func TestDescendants(t *testing.T) {
	g := loadSystem(t)
	table := mustResolve(t, g, "ifTable")

	assert.Equal(t,
		[]string{"ifEntry", "ifIndex", "ifSpeed", "ifAdminStatus", "ifOperStatus"},
		nodeLabels(table.Descendants()))
	assert.Equal(t, 5, CountDescendants(table))
}
