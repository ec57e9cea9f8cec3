package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/edgeo-scada/mibtree/mibtree"
)

var (
	// Global flags
	cfgFile  string
	logLevel string

	// MIB source flags
	mibPaths    []string
	mibModules  []string
	fixtureFile string
	permissive  bool

	// Output flags
	outputFormat     string
	peersIncludeSelf bool
	showStats        bool
	noColor          bool
)

var rootCmd = &cobra.Command{
	Use:   "edgeo-mibtree [flags] ROOT_NODE [TEMPLATE_FILE]",
	Short: "Print a MIB subtree according to a template",
	Args:  validateArgs,
	RunE:  runRender,

	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.Long = longHelp()

	// MIB source flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "", "", "config file (default is $HOME/.edgeo-mibtree.yaml)")
	rootCmd.PersistentFlags().StringSliceVarP(&mibPaths, "path", "p", nil, "MIB search path, searched recursively (repeatable; default: system MIB directories)")
	rootCmd.PersistentFlags().StringSliceVarP(&mibModules, "module", "m", nil, "load only these MIB modules and their imports (repeatable)")
	rootCmd.PersistentFlags().StringVar(&fixtureFile, "fixture", "", "read the OID tree from a YAML fixture instead of MIB files")
	rootCmd.PersistentFlags().BoolVar(&permissive, "permissive", false, "tolerate common vendor MIB errors")

	// Output flags
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "none", "log level: debug, info, warn, error, fatal, none (logs go to stderr)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "template", "output format: template, json, yaml, csv, table")
	rootCmd.PersistentFlags().BoolVar(&peersIncludeSelf, "peers-include-self", false, "list a node among its own peers")
	rootCmd.PersistentFlags().BoolVar(&showStats, "stats", false, "print load and render statistics to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored table output")

	// Bind flags to viper
	for _, name := range []string{
		"path", "module", "fixture", "permissive",
		"log-level", "output", "peers-include-self", "stats", "no-color",
	} {
		viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		viper.AddConfigPath(home)
		viper.AddConfigPath(filepath.Join(home, ".config"))
		viper.SetConfigName(".edgeo-mibtree")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("EDGEO_MIBTREE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	configErr := viper.ReadInConfig()

	// Apply viper values to flags
	mibPaths = viper.GetStringSlice("path")
	mibModules = viper.GetStringSlice("module")
	fixtureFile = viper.GetString("fixture")
	permissive = viper.GetBool("permissive")
	logLevel = viper.GetString("log-level")
	outputFormat = viper.GetString("output")
	peersIncludeSelf = viper.GetBool("peers-include-self")
	showStats = viper.GetBool("stats")
	noColor = viper.GetBool("no-color")

	if configErr == nil && logLevel != "" && !strings.EqualFold(logLevel, "none") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// usageError marks errors that should be followed by the usage text.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func validateArgs(cmd *cobra.Command, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return &usageError{msg: fmt.Sprintf("expected ROOT_NODE [TEMPLATE_FILE], got %d argument(s)", len(args))}
	}
	return nil
}

func longHelp() string {
	var sb strings.Builder
	sb.WriteString(`edgeo-mibtree prints a MIB subtree according to a template.

Arguments:
  ROOT_NODE      The root node of the subtree, as a numeric OID
                 (1.3.6.1.2.1.1), a name (system), a qualified name
                 (SNMPv2-MIB::system) or a name with arcs (ifEntry.1).

  TEMPLATE_FILE  Optional Go text/template file. Its dot exposes .Root
                 (the root node, also available as .Node) and .Nodes (the
                 root followed by all descendants in OID order). Nodes offer
                 OID, SubID, Label, QualifiedLabel, Type, Description,
                 Module, Enums, Parent, Children, Peers, Next, NextPeer and
                 Descendants. Absent relations are nil; test them with
                 {{with}} or {{if}}. The sprig function library is
                 available, plus nodeRefs, enumRefs, labels, oids and
                 subtree.

Built-in template:

`)
	for _, line := range strings.Split(strings.TrimRight(mibtree.DefaultTemplate, "\n"), "\n") {
		sb.WriteString("  ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString(`
Examples:
  # Human readable dump of the system group
  edgeo-mibtree system

  # Only IF-MIB, rendered with a custom template
  edgeo-mibtree -m IF-MIB ifTable ./table.tmpl

  # Machine readable output from a YAML fixture
  edgeo-mibtree --fixture tree.yaml -o json 1.3.6.1.2.1.2`)
	return sb.String()
}
