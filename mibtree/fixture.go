package mibtree

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Fixture is the YAML description of a graph, used for tests and for
// rendering without a MIB database.
//
//	modules:
//	  - name: SNMPv2-MIB
//	    file: /usr/share/snmp/mibs/SNMPv2-MIB.txt
//	nodes:
//	  - oid: 1.3.6.1.2.1.1.1
//	    label: sysDescr
//	    module: SNMPv2-MIB
//	    type: DisplayString
type Fixture struct {
	Modules []FixtureModule `yaml:"modules"`
	Nodes   []FixtureNode   `yaml:"nodes"`
}

// FixtureModule declares a module and the file it came from.
type FixtureModule struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

// FixtureNode is one node entry of a Fixture.
type FixtureNode struct {
	OID         string `yaml:"oid"`
	Label       string `yaml:"label"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	Kind        string `yaml:"kind"`
	Access      string `yaml:"access"`
	Status      string `yaml:"status"`
	Units       string `yaml:"units"`
	Module      string `yaml:"module"`
	Enums       []Enum `yaml:"enums"`
}

// LoadFixture decodes a YAML fixture and builds its graph.
func LoadFixture(r io.Reader, opts ...Option) (*Graph, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("mibtree: decode fixture: %w", err)
	}
	return f.Build(opts...)
}

// LoadFixtureFile reads a YAML fixture from path.
func LoadFixtureFile(path string, opts ...Option) (*Graph, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mibtree: open fixture: %w", err)
	}
	defer file.Close()
	return LoadFixture(file, opts...)
}

// Build turns the fixture into a Graph.
func (f *Fixture) Build(opts ...Option) (*Graph, error) {
	b := NewBuilder(opts...)
	for _, m := range f.Modules {
		b.AddModule(m.Name, m.File)
	}
	for i, fn := range f.Nodes {
		oid, err := ParseOID(fn.OID)
		if err != nil {
			return nil, fmt.Errorf("mibtree: fixture node %d (%s): %w", i, fn.Label, err)
		}
		_, err = b.Add(NodeSpec{
			OID:         oid,
			Label:       fn.Label,
			Type:        fn.Type,
			Description: fn.Description,
			Kind:        fn.Kind,
			Access:      fn.Access,
			Status:      fn.Status,
			Units:       fn.Units,
			Module:      fn.Module,
			Enums:       fn.Enums,
		})
		if err != nil {
			return nil, fmt.Errorf("mibtree: fixture node %d (%s): %w", i, fn.Label, err)
		}
	}
	return b.Build()
}
