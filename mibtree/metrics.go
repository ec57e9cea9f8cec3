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
	"sync"
	"sync/atomic"
	"time"
)

// Counter is a simple atomic counter.
type Counter struct {
	value int64
}

// Add adds a value to the counter.
func (c *Counter) Add(delta int64) {
	atomic.AddInt64(&c.value, delta)
}

// Value returns the current counter value.
func (c *Counter) Value() int64 {
	return atomic.LoadInt64(&c.value)
}

// Reset resets the counter to zero.
func (c *Counter) Reset() {
	atomic.StoreInt64(&c.value, 0)
}

// Gauge is a simple atomic gauge that can go up and down.
type Gauge struct {
	value int64
}

// Set sets the gauge value.
func (g *Gauge) Set(value int64) {
	atomic.StoreInt64(&g.value, value)
}

// Value returns the current gauge value.
func (g *Gauge) Value() int64 {
	return atomic.LoadInt64(&g.value)
}

// LatencyHistogram tracks latency distribution in microseconds.
type LatencyHistogram struct {
	mu      sync.RWMutex
	count   int64
	sum     int64
	min     int64
	max     int64
	buckets []int64
	bounds  []int64
}

// NewLatencyHistogram creates a new latency histogram.
func NewLatencyHistogram() *LatencyHistogram {
	return &LatencyHistogram{
		min:     -1,
		bounds:  []int64{10, 50, 100, 500, 1000, 5000, 10000, 50000, 100000, 500000, 1000000},
		buckets: make([]int64, 12), // 11 buckets + overflow
	}
}

// Observe records a latency observation in microseconds.
func (h *LatencyHistogram) Observe(latencyUs int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.count++
	h.sum += latencyUs

	if h.min < 0 || latencyUs < h.min {
		h.min = latencyUs
	}
	if latencyUs > h.max {
		h.max = latencyUs
	}

	for i, bound := range h.bounds {
		if latencyUs <= bound {
			h.buckets[i]++
			return
		}
	}
	h.buckets[len(h.buckets)-1]++ // overflow
}

// ObserveDuration records a duration.
func (h *LatencyHistogram) ObserveDuration(d time.Duration) {
	h.Observe(d.Microseconds())
}

// Stats returns histogram statistics.
func (h *LatencyHistogram) Stats() LatencyStats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	stats := LatencyStats{
		Count: h.count,
		Sum:   h.sum,
		Min:   h.min,
		Max:   h.max,
	}

	if h.count > 0 {
		stats.Avg = float64(h.sum) / float64(h.count)
	}

	stats.Buckets = make([]Bucket, len(h.buckets))
	for i, n := range h.buckets {
		le := int64(-1)
		if i < len(h.bounds) {
			le = h.bounds[i]
		}
		stats.Buckets[i] = Bucket{LE: le, Count: n}
	}

	return stats
}

// LatencyStats contains latency statistics.
type LatencyStats struct {
	Count   int64
	Sum     int64
	Min     int64
	Max     int64
	Avg     float64
	Buckets []Bucket
}

// Bucket counts observations at or below LE microseconds. The last bucket
// has LE == -1 and counts everything above the highest bound.
type Bucket struct {
	LE    int64
	Count int64
}

// Metrics collects load and render statistics.
type Metrics struct {
	// Graph metrics
	GraphNodes   Gauge
	GraphModules Gauge
	LoadLatency  *LatencyHistogram

	// Render metrics
	Renders         Counter
	RenderFailures  Counter
	ParseFailures   Counter
	NodesEnumerated Counter
	BytesWritten    Counter
	RenderLatency   *LatencyHistogram

	// Start time
	StartTime time.Time
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{
		LoadLatency:   NewLatencyHistogram(),
		RenderLatency: NewLatencyHistogram(),
		StartTime:     time.Now(),
	}
}

// ObserveGraph records the size of a loaded graph and how long it took.
func (m *Metrics) ObserveGraph(g *Graph, d time.Duration) {
	m.GraphNodes.Set(int64(g.Len()))
	m.GraphModules.Set(int64(len(g.modules)))
	m.LoadLatency.ObserveDuration(d)
}

// ObserveRender records one successful render. A nil Metrics ignores it.
func (m *Metrics) ObserveRender(nodes int, bytes int64, d time.Duration) {
	if m == nil {
		return
	}
	m.Renders.Add(1)
	m.NodesEnumerated.Add(int64(nodes))
	m.BytesWritten.Add(bytes)
	m.RenderLatency.ObserveDuration(d)
}

// ObserveRenderFailure records a render that produced no output.
func (m *Metrics) ObserveRenderFailure() {
	if m == nil {
		return
	}
	m.RenderFailures.Add(1)
}

// Snapshot returns a copy of the current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		GraphNodes:      m.GraphNodes.Value(),
		GraphModules:    m.GraphModules.Value(),
		LoadLatency:     m.LoadLatency.Stats(),
		Renders:         m.Renders.Value(),
		RenderFailures:  m.RenderFailures.Value(),
		ParseFailures:   m.ParseFailures.Value(),
		NodesEnumerated: m.NodesEnumerated.Value(),
		BytesWritten:    m.BytesWritten.Value(),
		RenderLatency:   m.RenderLatency.Stats(),
		Uptime:          time.Since(m.StartTime),
	}
}

// MetricsSnapshot is a point-in-time snapshot of metrics.
type MetricsSnapshot struct {
	GraphNodes      int64
	GraphModules    int64
	LoadLatency     LatencyStats
	Renders         int64
	RenderFailures  int64
	ParseFailures   int64
	NodesEnumerated int64
	BytesWritten    int64
	RenderLatency   LatencyStats
	Uptime          time.Duration
}

// Reset resets all metrics.
func (m *Metrics) Reset() {
	m.GraphNodes.Set(0)
	m.GraphModules.Set(0)
	m.LoadLatency = NewLatencyHistogram()
	m.Renders.Reset()
	m.RenderFailures.Reset()
	m.ParseFailures.Reset()
	m.NodesEnumerated.Reset()
	m.BytesWritten.Reset()
	m.RenderLatency = NewLatencyHistogram()
	m.StartTime = time.Now()
}
