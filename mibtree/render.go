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
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
)

// Context is the value bound to a template's dot.
//
// Root and Node both name the subtree root; Nodes is the precomputed
// pre-order enumeration of the subtree (Root first).
type Context struct {
	Root  *Node
	Node  *Node
	Nodes []*Node
}

// NewContext builds the template context for root.
func NewContext(root *Node) *Context {
	return &Context{
		Root:  root,
		Node:  root,
		Nodes: EnumerateSubtree(root),
	}
}

// Renderer parses templates with the node helper functions installed.
type Renderer struct {
	opts  *Options
	funcs template.FuncMap
}

// NewRenderer creates a new Renderer.
func NewRenderer(opts ...Option) *Renderer {
	o := applyOptions(opts)

	funcs := sprig.TxtFuncMap()
	for name, fn := range nodeFuncs() {
		funcs[name] = fn
	}
	for name, fn := range o.Funcs {
		funcs[name] = fn
	}

	return &Renderer{opts: o, funcs: funcs}
}

// FuncMap returns the functions available to templates.
func (r *Renderer) FuncMap() template.FuncMap {
	out := make(template.FuncMap, len(r.funcs))
	for name, fn := range r.funcs {
		out[name] = fn
	}
	return out
}

// Parse parses template text. Syntax errors are reported as
// *MalformedTemplateError before anything is evaluated.
func (r *Renderer) Parse(name, text string) (*Template, error) {
	t, err := template.New(name).
		Delims(r.opts.LeftDelim, r.opts.RightDelim).
		Option("missingkey=" + r.opts.MissingKey).
		Funcs(r.funcs).
		Parse(text)
	if err != nil {
		if r.opts.Metrics != nil {
			r.opts.Metrics.ParseFailures.Add(1)
		}
		r.opts.Logger.Debug("template parse failed", "template", name, "error", err)
		return nil, &MalformedTemplateError{Name: name, Cause: err}
	}
	return &Template{name: name, tmpl: t, opts: r.opts}, nil
}

// ParseFile reads and parses a template file.
func (r *Renderer) ParseFile(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mibtree: read template: %w", err)
	}
	return r.Parse(filepath.Base(path), string(data))
}

// Default parses DefaultTemplate.
func (r *Renderer) Default() (*Template, error) {
	return r.Parse(DefaultTemplateName, DefaultTemplate)
}

// Template is a parsed template ready to be executed against a root node.
type Template struct {
	name string
	tmpl *template.Template
	opts *Options
}

// Name returns the template name.
func (t *Template) Name() string { return t.name }

// Execute evaluates the template for the subtree rooted at root and writes
// the result to w. Output is buffered: nothing reaches w unless evaluation
// succeeds.
func (t *Template) Execute(w io.Writer, root *Node) error {
	if root == nil {
		return ErrNilNode
	}

	start := time.Now()
	ctx := NewContext(root)

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, ctx); err != nil {
		t.opts.Metrics.ObserveRenderFailure()
		t.opts.Logger.Debug("template evaluation failed",
			"template", t.name,
			"root", root.oid.String(),
			"error", err)
		return &TemplateError{Name: t.name, Cause: err}
	}

	n, err := buf.WriteTo(w)
	if err != nil {
		return fmt.Errorf("mibtree: write output: %w", err)
	}

	elapsed := time.Since(start)
	t.opts.Metrics.ObserveRender(len(ctx.Nodes), n, elapsed)
	t.opts.Logger.Debug("template rendered",
		"template", t.name,
		"root", root.oid.String(),
		"nodes", len(ctx.Nodes),
		"bytes", n,
		"elapsed", elapsed)
	return nil
}

// ExecuteString evaluates the template and returns the output.
func (t *Template) ExecuteString(root *Node) (string, error) {
	var sb bytes.Buffer
	if err := t.Execute(&sb, root); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Render parses text and evaluates it against root in one step.
func Render(root *Node, text string, opts ...Option) (string, error) {
	t, err := NewRenderer(opts...).Parse("inline", text)
	if err != nil {
		return "", err
	}
	return t.ExecuteString(root)
}

// nodeFuncs are the helpers layered over sprig. Pipe them into sprig's
// join: {{nodeRefs .Children | join ", "}}.
func nodeFuncs() template.FuncMap {
	return template.FuncMap{
		"nodeRefs": func(nodes []*Node) []string {
			out := make([]string, 0, len(nodes))
			for _, n := range nodes {
				out = append(out, n.Label()+"("+strconv.FormatUint(uint64(n.SubID()), 10)+")")
			}
			return out
		},
		"enumRefs": func(enums []Enum) []string {
			out := make([]string, 0, len(enums))
			for _, e := range enums {
				out = append(out, e.String())
			}
			return out
		},
		"labels": func(nodes []*Node) []string {
			out := make([]string, 0, len(nodes))
			for _, n := range nodes {
				out = append(out, n.Label())
			}
			return out
		},
		"oids": func(nodes []*Node) []string {
			out := make([]string, 0, len(nodes))
			for _, n := range nodes {
				out = append(out, n.OID().String())
			}
			return out
		},
		"subtree": EnumerateSubtree,
	}
}
