package mibtree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const systemFixture = "testdata/system.yaml"

func loadSystem(t *testing.T, opts ...Option) *Graph {
	t.Helper()
	g, err := LoadFixtureFile(systemFixture, opts...)
	require.NoError(t, err)
	return g
}

func mustResolve(t *testing.T, g *Graph, id string) *Node {
	t.Helper()
	n, err := g.Resolve(id)
	require.NoError(t, err)
	require.NotNil(t, n)
	return n
}

// buildTree builds a graph from label/OID pairs.
func buildTree(t *testing.T, nodes map[string]string, opts ...Option) *Graph {
	t.Helper()
	b := NewBuilder(opts...)
	for oid, label := range nodes {
		_, err := b.Add(NodeSpec{OID: MustParseOID(oid), Label: label})
		require.NoError(t, err)
	}
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func subIDs(nodes []*Node) []uint32 {
	out := make([]uint32, len(nodes))
	for i, n := range nodes {
		out[i] = n.SubID()
	}
	return out
}

func nodeLabels(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Label()
	}
	return out
}
