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

// Package gomibsrc loads MIB files with gomib and converts the resolved OID
// tree into a mibtree.Graph.
package gomibsrc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golangsnmp/gomib"
	"github.com/golangsnmp/gomib/mib"

	"github.com/edgeo-scada/mibtree/mibtree"
)

// Config selects where MIB modules are read from.
type Config struct {
	// Paths are directories searched recursively. Empty means the
	// net-snmp and libsmi system locations.
	Paths []string
	// Modules restricts loading to these modules and their imports.
	Modules []string
	// Permissive tolerates vendor MIB quirks.
	Permissive bool
	// Logger receives gomib diagnostics; nil disables them.
	Logger *slog.Logger
}

// Load parses the configured MIB modules and builds the graph. It is the
// one-time initialization step: the returned graph is immutable and can
// resolve any number of identifiers.
func Load(ctx context.Context, cfg Config, opts ...mibtree.Option) (*mibtree.Graph, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	loadOpts, err := loadOptions(cfg, logger)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	m, err := gomib.Load(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("gomibsrc: load MIBs: %w", err)
	}
	logger.Debug("MIB modules loaded",
		"modules", len(m.Modules()),
		"elapsed", time.Since(start))

	return FromMib(m, opts...)
}

func loadOptions(cfg Config, logger *slog.Logger) ([]gomib.LoadOption, error) {
	var opts []gomib.LoadOption

	if len(cfg.Paths) > 0 {
		var sources []gomib.Source
		for _, p := range cfg.Paths {
			src, err := gomib.DirTree(p)
			if err != nil {
				logger.Warn("cannot access MIB path", "path", p, "error", err)
				continue
			}
			sources = append(sources, src)
		}
		switch len(sources) {
		case 0:
			return nil, fmt.Errorf("gomibsrc: no usable MIB path in %v: %w", cfg.Paths, gomib.ErrNoSources)
		case 1:
			opts = append(opts, gomib.WithSource(sources[0]))
		default:
			opts = append(opts, gomib.WithSource(gomib.Multi(sources...)))
		}
	} else {
		opts = append(opts, gomib.WithSystemPaths())
	}

	if cfg.Permissive {
		opts = append(opts, gomib.WithStrictness(mib.StrictnessPermissive))
	}
	if len(cfg.Modules) > 0 {
		opts = append(opts, gomib.WithModules(cfg.Modules...))
	}
	if cfg.Logger != nil {
		opts = append(opts, gomib.WithLogger(cfg.Logger))
	}
	return opts, nil
}

// FromMib copies the resolved gomib tree into a mibtree.Graph.
func FromMib(m *mib.Mib, opts ...mibtree.Option) (*mibtree.Graph, error) {
	b := mibtree.NewBuilder(opts...)
	for _, mod := range m.Modules() {
		b.AddModule(mod.Name(), mod.SourcePath())
	}
	for nd := range m.Nodes() {
		if _, err := b.Add(specFor(nd)); err != nil {
			return nil, fmt.Errorf("gomibsrc: add %s: %w", nd, err)
		}
	}
	return b.Build()
}

func specFor(nd *mib.Node) mibtree.NodeSpec {
	spec := mibtree.NodeSpec{
		OID:   mibtree.OID(nd.OID()),
		Label: nd.Name(),
		Kind:  nd.Kind().String(),
	}
	if mod := nd.Module(); mod != nil {
		spec.Module = mod.Name()
		spec.File = mod.SourcePath()
	}

	if obj := nd.Object(); obj != nil {
		if t := obj.Type(); t != nil {
			spec.Type = typeName(t)
		}
		spec.Description = obj.Description()
		spec.Access = obj.Access().String()
		spec.Status = obj.Status().String()
		spec.Units = obj.Units()
		for _, nv := range obj.EffectiveEnums() {
			spec.Enums = append(spec.Enums, mibtree.Enum{Label: nv.Label, Value: nv.Value})
		}
		return spec
	}
	if notif := nd.Notification(); notif != nil {
		spec.Description = notif.Description()
		spec.Status = notif.Status().String()
	}
	return spec
}

// syntaxType is the part of *mib.Type that names an object's syntax.
type syntaxType interface {
	Name() string
	Base() mib.BaseType
}

// typeName prefers the named type (textual convention) over its base.
func typeName(t syntaxType) string {
	if name := t.Name(); name != "" {
		return name
	}
	return t.Base().String()
}
