package gomibsrc

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/golangsnmp/gomib"
	"github.com/golangsnmp/gomib/mib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgeo-scada/mibtree/mibtree"
)

var discard = slog.New(slog.DiscardHandler)

func TestLoadRejectsUnusablePaths(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	g, err := Load(context.Background(), Config{Paths: []string{missing}})
	require.Error(t, err)
	assert.Nil(t, g)
	assert.ErrorIs(t, err, gomib.ErrNoSources)
	assert.Contains(t, err.Error(), missing)
}

func TestLoadOptionsFromConfig(t *testing.T) {
	dir := t.TempDir()

	opts, err := loadOptions(Config{Paths: []string{dir}}, discard)
	require.NoError(t, err)
	assert.Len(t, opts, 1)

	opts, err = loadOptions(Config{
		Paths:      []string{dir, t.TempDir()},
		Modules:    []string{"IF-MIB"},
		Permissive: true,
	}, discard)
	require.NoError(t, err)
	assert.Len(t, opts, 3)

	opts, err = loadOptions(Config{}, discard)
	require.NoError(t, err)
	assert.Len(t, opts, 1, "system paths only")
}

const testMIB = `TEST-MIB DEFINITIONS ::= BEGIN

IMPORTS
    MODULE-IDENTITY, OBJECT-TYPE, NOTIFICATION-TYPE, Integer32, enterprises
        FROM SNMPv2-SMI
    DisplayString
        FROM SNMPv2-TC;

testMIB MODULE-IDENTITY
    LAST-UPDATED "202601010000Z"
    ORGANIZATION "Edgeo SCADA"
    CONTACT-INFO "support@edgeo.example"
    DESCRIPTION "Objects used by the gomibsrc tests."
    ::= { enterprises 99999 }

testObjects       OBJECT IDENTIFIER ::= { testMIB 1 }
testNotifications OBJECT IDENTIFIER ::= { testMIB 2 }

testName OBJECT-TYPE
    SYNTAX      DisplayString
    MAX-ACCESS  read-only
    STATUS      current
    DESCRIPTION "Name of the device."
    ::= { testObjects 1 }

testTable OBJECT-TYPE
    SYNTAX      SEQUENCE OF TestEntry
    MAX-ACCESS  not-accessible
    STATUS      current
    DESCRIPTION "Device workers."
    ::= { testObjects 2 }

testEntry OBJECT-TYPE
    SYNTAX      TestEntry
    MAX-ACCESS  not-accessible
    STATUS      current
    DESCRIPTION "One worker."
    INDEX       { testIndex }
    ::= { testTable 1 }

TestEntry ::= SEQUENCE {
    testIndex Integer32,
    testState INTEGER
}

testIndex OBJECT-TYPE
    SYNTAX      Integer32 (1..2147483647)
    MAX-ACCESS  not-accessible
    STATUS      current
    DESCRIPTION "Worker number."
    ::= { testEntry 1 }

testState OBJECT-TYPE
    SYNTAX      INTEGER { running(1), stopped(2), failed(3) }
    MAX-ACCESS  read-only
    STATUS      current
    DESCRIPTION "Current worker state."
    ::= { testEntry 2 }

testStateChange NOTIFICATION-TYPE
    OBJECTS     { testState }
    STATUS      current
    DESCRIPTION "A worker changed state."
    ::= { testNotifications 1 }

END
`

func loadTestMIB(t *testing.T) (*mibtree.Graph, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "TEST-MIB.txt")
	require.NoError(t, os.WriteFile(path, []byte(testMIB), 0o644))

	g, err := Load(context.Background(), Config{
		Paths:   []string{dir},
		Modules: []string{"TEST-MIB"},
	})
	require.NoError(t, err)
	return g, path
}

func mustResolve(t *testing.T, g *mibtree.Graph, id string) *mibtree.Node {
	t.Helper()
	n, err := g.Resolve(id)
	require.NoError(t, err)
	return n
}

func TestLoadConvertsObjects(t *testing.T) {
	g, path := loadTestMIB(t)

	name := mustResolve(t, g, "TEST-MIB::testName")
	assert.Equal(t, "1.3.6.1.4.1.99999.1.1", name.OID().String())
	assert.Equal(t, "DisplayString", name.Type())
	assert.Equal(t, "scalar", name.Kind())
	assert.Equal(t, "read-only", name.Access())
	assert.Equal(t, "current", name.Status())
	assert.Equal(t, "Name of the device.", name.Description())
	assert.Empty(t, name.Enums())

	mod := name.Module()
	require.NotNil(t, mod)
	assert.Equal(t, "TEST-MIB", mod.Name())
	assert.Equal(t, path, mod.File())
	require.NotNil(t, g.Module("TEST-MIB"))
	assert.Equal(t, path, g.Module("TEST-MIB").File())

	state := mustResolve(t, g, "TEST-MIB::testState")
	assert.Equal(t, "INTEGER", state.Type())
	assert.Equal(t, "column", state.Kind())
	assert.Equal(t, []mibtree.Enum{
		{Label: "running", Value: 1},
		{Label: "stopped", Value: 2},
		{Label: "failed", Value: 3},
	}, state.Enums())

	index := mustResolve(t, g, "testIndex")
	assert.Equal(t, "Integer32", index.Type())
	assert.Equal(t, "not-accessible", index.Access())
}

func TestLoadConvertsNotifications(t *testing.T) {
	g, _ := loadTestMIB(t)

	n := mustResolve(t, g, "TEST-MIB::testStateChange")
	assert.Equal(t, "1.3.6.1.4.1.99999.2.1", n.OID().String())
	assert.Equal(t, "notification", n.Kind())
	assert.Equal(t, "current", n.Status())
	assert.Equal(t, "A worker changed state.", n.Description())
	assert.Equal(t, "", n.Type())
	assert.Equal(t, "TEST-MIB", n.Module().Name())
}

func TestLoadLinksTree(t *testing.T) {
	g, _ := loadTestMIB(t)

	root := mustResolve(t, g, "testMIB")
	assert.Equal(t, "1.3.6.1.4.1", root.Parent().OID().String())
	assert.Equal(t, "enterprises", root.Parent().Label())

	entry := mustResolve(t, g, "testEntry")
	assert.Equal(t, "row", entry.Kind())
	assert.Equal(t, "testTable", entry.Parent().Label())

	var children []string
	for _, c := range entry.Children() {
		children = append(children, c.Label())
	}
	assert.Equal(t, []string{"testIndex", "testState"}, children)

	assert.Equal(t, "testTable", mustResolve(t, g, "testName").NextPeer().Label())
	assert.Equal(t, "testIndex", entry.Next().Label())
	assert.Equal(t, "testNotifications", mustResolve(t, g, "testState").Next().Label())

	var labels []string
	for n := range mibtree.Subtree(root) {
		labels = append(labels, n.Label())
	}
	assert.Equal(t, []string{
		"testMIB", "testObjects", "testName", "testTable", "testEntry",
		"testIndex", "testState", "testNotifications", "testStateChange",
	}, labels)

	out, err := mibtree.Render(entry, `{{range .Nodes}}{{.Label}}:{{enumRefs .Enums | join ","}};{{end}}`)
	require.NoError(t, err)
	assert.Equal(t, "testEntry:;testIndex:;testState:running(1),stopped(2),failed(3);", out)
}

type stubType struct {
	name string
	base mib.BaseType
}

func (s stubType) Name() string       { return s.name }
func (s stubType) Base() mib.BaseType { return s.base }

func TestTypeName(t *testing.T) {
	assert.Equal(t, "DisplayString", typeName(stubType{name: "DisplayString", base: mib.BaseOctetString}))
	assert.Equal(t, "Counter64", typeName(stubType{base: mib.BaseCounter64}))
	assert.Equal(t, "OCTET STRING", typeName(stubType{base: mib.BaseOctetString}))
}
