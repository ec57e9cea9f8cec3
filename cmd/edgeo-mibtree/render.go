package main

import (
	"github.com/spf13/cobra"

	"github.com/edgeo-scada/mibtree/mibtree"
)

func runRender(cmd *cobra.Command, args []string) error {
	logger, err := setupLogger(logLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	metrics := mibtree.NewMetrics()
	opts := buildOptions(logger, metrics)

	formatter, err := NewFormatter(outputFormat, cmd.OutOrStdout(), metrics)
	if err != nil {
		return err
	}

	// The template is parsed before the MIBs are loaded so that syntax
	// errors are reported without waiting on the load.
	var tmpl *mibtree.Template
	switch {
	case formatter.format == FormatTemplate:
		renderer := mibtree.NewRenderer(opts...)
		if len(args) == 2 {
			tmpl, err = renderer.ParseFile(args[1])
		} else {
			tmpl, err = renderer.Default()
		}
		if err != nil {
			return err
		}
	case len(args) == 2:
		return &usageError{msg: "TEMPLATE_FILE requires --output template"}
	}

	graph, err := loadGraph(cmd.Context(), logger, metrics, opts)
	if err != nil {
		return err
	}
	if logger != nil {
		logger.Info("OID tree loaded",
			"nodes", graph.Len(),
			"modules", len(graph.Modules()))
	}

	root, err := graph.Resolve(args[0])
	if err != nil {
		return err
	}

	if err := formatter.Write(root, tmpl); err != nil {
		return err
	}

	if showStats {
		printStats(cmd.ErrOrStderr(), metrics.Snapshot())
	}
	return nil
}
