package mibtree

import (
	"log/slog"
	"text/template"
)

// Options contains configuration shared by the graph builder and the renderer.
type Options struct {
	// PeerMode controls whether a node appears in its own peer list.
	PeerMode PeerMode

	// Funcs are extra template functions layered over the built-in set.
	Funcs template.FuncMap
	// LeftDelim and RightDelim override the template action delimiters.
	LeftDelim  string
	RightDelim string
	// MissingKey is passed to template.Option as "missingkey=<value>".
	MissingKey string

	// Metrics receives render statistics; nil disables collection.
	Metrics *Metrics

	// Logger
	Logger *slog.Logger
}

// PeerMode selects the membership convention of Node.Peers.
type PeerMode int

const (
	// PeersExcludeSelf lists siblings only.
	PeersExcludeSelf PeerMode = iota
	// PeersIncludeSelf lists every child of the parent, the node included.
	PeersIncludeSelf
)

// String returns the string representation of the peer mode.
func (m PeerMode) String() string {
	switch m {
	case PeersExcludeSelf:
		return "exclude-self"
	case PeersIncludeSelf:
		return "include-self"
	default:
		return "unknown"
	}
}

// Default values.
const (
	DefaultMissingKey = "error"
	DefaultLeftDelim  = "{{"
	DefaultRightDelim = "}}"
)

// NewOptions creates Options with default values.
func NewOptions() *Options {
	return &Options{
		PeerMode:   PeersExcludeSelf,
		LeftDelim:  DefaultLeftDelim,
		RightDelim: DefaultRightDelim,
		MissingKey: DefaultMissingKey,
	}
}

func applyOptions(opts []Option) *Options {
	o := NewOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Option is a functional option for configuring a Builder or Renderer.
type Option func(*Options)

// WithPeerMode sets the peer membership convention.
func WithPeerMode(mode PeerMode) Option {
	return func(o *Options) {
		o.PeerMode = mode
	}
}

// WithFuncs adds template functions. Later calls override earlier names.
func WithFuncs(funcs template.FuncMap) Option {
	return func(o *Options) {
		if o.Funcs == nil {
			o.Funcs = make(template.FuncMap, len(funcs))
		}
		for name, fn := range funcs {
			o.Funcs[name] = fn
		}
	}
}

// WithDelims sets the template action delimiters.
func WithDelims(left, right string) Option {
	return func(o *Options) {
		o.LeftDelim = left
		o.RightDelim = right
	}
}

// WithMissingKey sets the template behavior for missing map keys
// ("error", "zero" or "default").
func WithMissingKey(mode string) Option {
	return func(o *Options) {
		o.MissingKey = mode
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
