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

package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/edgeo-scada/mibtree/mibtree"
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatTemplate OutputFormat = "template"
	FormatJSON     OutputFormat = "json"
	FormatYAML     OutputFormat = "yaml"
	FormatCSV      OutputFormat = "csv"
	FormatTable    OutputFormat = "table"
)

// Formatter writes a subtree in one output format. Every format is
// produced into a buffer first; nothing is written when rendering fails.
type Formatter struct {
	format  OutputFormat
	writer  io.Writer
	metrics *mibtree.Metrics
}

// NewFormatter creates a new formatter. metrics may be nil.
func NewFormatter(format string, w io.Writer, metrics *mibtree.Metrics) (*Formatter, error) {
	f := &Formatter{
		format:  OutputFormat(strings.ToLower(format)),
		writer:  w,
		metrics: metrics,
	}
	switch f.format {
	case FormatTemplate, FormatJSON, FormatYAML, FormatCSV, FormatTable:
		return f, nil
	case "":
		f.format = FormatTemplate
		return f, nil
	default:
		return nil, &usageError{msg: fmt.Sprintf("unknown output format: %s", format)}
	}
}

// Write renders the subtree rooted at root. tmpl is only used by the
// template format.
func (f *Formatter) Write(root *mibtree.Node, tmpl *mibtree.Template) error {
	if f.format == FormatTemplate {
		return tmpl.Execute(f.writer, root)
	}

	start := time.Now()
	var (
		buf bytes.Buffer
		err error
	)
	switch f.format {
	case FormatJSON:
		err = f.formatJSON(&buf, mibtree.Records(root))
	case FormatYAML:
		err = f.formatYAML(&buf, mibtree.Records(root))
	case FormatCSV:
		err = f.formatCSV(&buf, mibtree.Records(root))
	case FormatTable:
		f.formatTable(&buf, root)
	}
	if err != nil {
		f.metrics.ObserveRenderFailure()
		return err
	}

	n, err := buf.WriteTo(f.writer)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	f.metrics.ObserveRender(mibtree.CountDescendants(root)+1, n, time.Since(start))
	return nil
}

func (f *Formatter) formatJSON(w io.Writer, records []mibtree.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func (f *Formatter) formatYAML(w io.Writer, records []mibtree.Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return err
	}
	return enc.Close()
}

func (f *Formatter) formatCSV(w io.Writer, records []mibtree.Record) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"oid", "label", "module", "file", "type", "kind", "access", "status",
		"units", "description", "enums", "parent", "peers", "next", "next_peer", "children"})

	for _, r := range records {
		enums := make([]string, len(r.Enums))
		for i, e := range r.Enums {
			enums[i] = e.String()
		}
		cw.Write([]string{
			r.OID, r.Label, r.Module, r.File, r.Type, r.Kind, r.Access, r.Status,
			r.Units, r.Description, strings.Join(enums, " "), r.Parent,
			strings.Join(r.Peers, " "), r.Next, r.NextPeer,
			strings.Join(r.Children, " "),
		})
	}

	cw.Flush()
	return cw.Error()
}

func (f *Formatter) formatTable(w io.Writer, root *mibtree.Node) {
	table := NewTableWriter("OID", "NAME", "TYPE", "ACCESS", "CHILDREN")
	base := root.Depth()
	for n := range mibtree.Subtree(root) {
		table.AddRow(
			n.OID().String(),
			strings.Repeat("  ", n.Depth()-base)+n.Label(),
			n.Type(),
			n.Access(),
			strconv.Itoa(len(n.Children())),
		)
	}
	table.Render(w)
}

// Color codes for terminal output.
const (
	ColorReset = "\033[0m"
	ColorCyan  = "\033[36m"
	ColorBold  = "\033[1m"
)

// colorize wraps text with color codes.
func colorize(text, color string) string {
	if noColor {
		return text
	}
	return color + text + ColorReset
}

// TableWriter writes formatted tables.
type TableWriter struct {
	headers []string
	rows    [][]string
	widths  []int
}

// NewTableWriter creates a new table writer.
func NewTableWriter(headers ...string) *TableWriter {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	return &TableWriter{
		headers: headers,
		widths:  widths,
	}
}

// AddRow adds a row to the table.
func (t *TableWriter) AddRow(values ...string) {
	for i, v := range values {
		if i < len(t.widths) && len(v) > t.widths[i] {
			t.widths[i] = len(v)
		}
	}
	t.rows = append(t.rows, values)
}

// Render renders the table to w.
func (t *TableWriter) Render(w io.Writer) {
	// Print header
	for i, h := range t.headers {
		fmt.Fprint(w, colorize(pad(h, t.widths[i]), ColorBold)+"  ")
	}
	fmt.Fprintln(w)

	// Print separator
	for i := range t.headers {
		fmt.Fprint(w, strings.Repeat("-", t.widths[i])+"  ")
	}
	fmt.Fprintln(w)

	// Print rows
	for _, row := range t.rows {
		for i, v := range row {
			if i < len(t.widths) {
				fmt.Fprint(w, pad(v, t.widths[i])+"  ")
			}
		}
		fmt.Fprintln(w)
	}
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// printStats prints a metrics snapshot.
func printStats(w io.Writer, s mibtree.MetricsSnapshot) {
	printSection(w, "Statistics")
	printKeyValue(w, "Graph nodes", strconv.FormatInt(s.GraphNodes, 10))
	printKeyValue(w, "Graph modules", strconv.FormatInt(s.GraphModules, 10))
	printKeyValue(w, "Load time", formatDuration(microseconds(s.LoadLatency.Sum)))
	printKeyValue(w, "Renders", strconv.FormatInt(s.Renders, 10))
	printKeyValue(w, "Nodes rendered", strconv.FormatInt(s.NodesEnumerated, 10))
	printKeyValue(w, "Output size", formatBytes(s.BytesWritten))
	printKeyValue(w, "Render time", formatDuration(microseconds(s.RenderLatency.Sum)))
}

// printKeyValue prints a key-value pair formatted nicely.
func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintf(w, "  %s %s\n", colorize(pad(key+":", 20), ColorCyan), value)
}

// printSection prints a section header.
func printSection(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", colorize(title, ColorBold))
	fmt.Fprintln(w, strings.Repeat("-", len(title)))
}
