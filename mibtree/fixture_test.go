package mibtree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFixture(t *testing.T) {
	g := loadSystem(t)
	assert.Equal(t, 21, g.Len())

	speed := mustResolve(t, g, "1.3.6.1.2.1.2.2.1.5")
	assert.Equal(t, "ifSpeed", speed.Label())
	assert.Equal(t, "Gauge32", speed.Type())
	assert.Equal(t, "column", speed.Kind())
	assert.Equal(t, "read-only", speed.Access())
	assert.Equal(t, "current", speed.Status())
	assert.Equal(t, "bits per second", speed.Units())
}

func TestLoadFixtureInline(t *testing.T) {
	g, err := LoadFixture(strings.NewReader(`
nodes:
  - oid: 1.3.6.1.4.1.8072
    label: netSnmp
    module: NET-SNMP-MIB
`))
	require.NoError(t, err)

	n := mustResolve(t, g, "NET-SNMP-MIB::netSnmp")
	assert.Equal(t, "1.3.6.1.4.1.8072", n.OID().String())
	require.NotNil(t, n.Module())
	assert.Equal(t, "", n.Module().File())
}

func TestLoadFixtureErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"empty", ``, ErrEmptyGraph},
		{"bad oid", "nodes:\n  - oid: 1.x\n    label: bad\n", ErrInvalidOID},
		{"missing oid", "nodes:\n  - label: bad\n", ErrInvalidOID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFixture(strings.NewReader(tt.yaml))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := LoadFixture(strings.NewReader("nodes:\n  - oid: 1\n    colour: red\n"))
	assert.ErrorContains(t, err, "decode fixture")

	_, err = LoadFixtureFile("testdata/does-not-exist.yaml")
	assert.ErrorContains(t, err, "open fixture")
}
