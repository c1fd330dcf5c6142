// Package main provides the thriftkit CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thriftkit/idl"
	"github.com/thriftkit/idl/ast"
)

var rootCmd = &cobra.Command{
	Use:   "thriftkit",
	Short: "Thriftkit - IDL compiler front-end",
	Long:  `Thriftkit parses and cross-compiles Thrift-style IDL files, resolving every include, type, constant, and service reference.`,
}

var (
	flagStrict bool
	flagConfig string
)

var checkCmd = &cobra.Command{
	Use:   "check [patterns...]",
	Short: "Compile IDL files and report diagnostics",
	Long: `Compile every file matching the given glob patterns (doublestar
syntax, e.g. "idl/**/*.thrift") together with its transitive includes,
and report errors and warnings.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

var printCmd = &cobra.Command{
	Use:   "print <file>",
	Short: "Parse a single IDL file and dump its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrint,
}

// fileConfig mirrors the optional YAML config file accepted by check.
type fileConfig struct {
	Strict  *bool `yaml:"strict"`
	Verbose bool  `yaml:"verbose"`
}

func loadConfig(path string) (*fileConfig, error) {
	if path == "" {
		return &fileConfig{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return err
	}
	strict := flagStrict
	if cfg.Strict != nil && !cmd.Flags().Changed("strict") {
		strict = *cfg.Strict
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var paths []string
	for _, pattern := range args {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			logger.Warn("pattern matched no files", "pattern", pattern)
		}
		paths = append(paths, matches...)
	}

	failed := 0
	for _, path := range paths {
		m, err := idl.Compile(path,
			idl.Strict(strict),
			idl.OnWarning(func(msg string) {
				logger.Warn(msg)
			}),
		)
		if err != nil {
			logger.Error(err.Error())
			failed++
			continue
		}
		logger.Debug("compiled",
			"module", m.Name,
			"types", len(m.Types),
			"services", len(m.Services),
			"constants", len(m.Constants),
		)
		fmt.Printf("%s  %s\n", m.Digest[:16], m.SourcePath)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(paths))
	}
	return nil
}

func runPrint(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	prog, err := idl.Parse(args[0], data)
	if err != nil {
		return err
	}
	fmt.Print(ast.Dump(args[0], prog))
	return nil
}

func main() {
	checkCmd.Flags().BoolVar(&flagStrict, "strict", true, "fail on duplicate names and invalid field IDs")
	checkCmd.Flags().StringVar(&flagConfig, "config", "", "path to a YAML config file")
	rootCmd.AddCommand(checkCmd, printCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
