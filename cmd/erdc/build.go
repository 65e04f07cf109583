package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/erdlang/erdc"
	compilererrors "github.com/erdlang/erdc/compiler/errors"
	"github.com/erdlang/erdc/compiler/lexer"
	"github.com/erdlang/erdc/compiler/parser"
	"github.com/erdlang/erdc/internal/cliui"
	"github.com/erdlang/erdc/internal/config"
)

var (
	buildOutput     string
	buildView       string
	buildDetail     string
	buildVerbose    bool
	buildConfigPath string
)

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "write SVG to this path instead of stdout")
	buildCmd.Flags().StringVarP(&buildView, "view", "v", "", "select a named view")
	buildCmd.Flags().StringVarP(&buildDetail, "detail", "d", "", "detail level: tables, pk, pk_fk, all")
	buildCmd.Flags().BoolVar(&buildVerbose, "verbose", false, "log compile timings and the schema's entities")
	buildCmd.Flags().StringVar(&buildConfigPath, "config", "", "path to an .erdc.yaml config file")
}

var buildCmd = &cobra.Command{
	Use:   "build <path>",
	Short: "Compile an ERD file into an SVG diagram",
	Long:  "Compile a single .erd source file into a deterministic SVG diagram.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(args[0])
	},
}

func runBuild(path string) error {
	start := time.Now()

	cfg, err := config.LoadFrom(buildConfigPath)
	if err != nil {
		msg := cliui.ConfigError(err.Error(), nil, !isTTY())
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(2)
	}

	logger := newLogger(buildVerbose || cfg.Verbose)
	defer logger.Sync()

	detail := buildDetail
	if detail == "" {
		detail = cfg.Build.Detail
	}
	level, err := erdc.ParseDetailLevel(detail)
	if err != nil {
		msg := cliui.CompileError(err.Error(), !isTTY())
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(1)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		msg := cliui.ConfigError(fmt.Sprintf("cannot read %s: %v", path, err), nil, !isTTY())
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(2)
	}
	logger.Debug("read source", zap.String("path", path), zap.Int("bytes", len(source)))
	if buildVerbose || cfg.Verbose {
		names := candidateEntityNames(string(source))
		logger.Debug("entities", zap.Int("count", len(names)), zap.Strings("names", names))
	}

	var view *string
	if buildView != "" {
		view = &buildView
	}

	renderCfg := cfg.Render.ToRenderConfig()

	lexStart := time.Now()
	out, compileErr := erdc.CompileWithConfig(string(source), view, level, renderCfg)
	logger.Debug("compile finished", zap.Duration("elapsed", time.Since(lexStart)))

	if compileErr != nil {
		printCompileError(path, string(source), compileErr)
		os.Exit(1)
	}

	outPath := buildOutput
	if outPath == "" {
		outPath = cfg.Build.Output
	}
	if outPath == "" || outPath == "-" {
		fmt.Print(out)
	} else {
		if err := os.WriteFile(outPath, []byte(out), 0644); err != nil {
			msg := cliui.ConfigError(fmt.Sprintf("cannot write %s: %v", outPath, err), nil, !isTTY())
			fmt.Fprintln(os.Stderr, msg)
			os.Exit(2)
		}
		fmt.Println(cliui.FormatSuccess(fmt.Sprintf("Compiled %s", outPath), !isTTY()))
	}

	logger.Info("build complete",
		zap.String("path", path),
		zap.Duration("elapsed", time.Since(start)),
	)

	return nil
}

// printCompileError renders a compile-time error for the CLI, adding
// fuzzy "did you mean" suggestions for unknown entity/view references
// by independently re-lexing and re-parsing the source (best effort;
// a second parse failure here just means no suggestions are offered).
func printCompileError(path, source string, err error) {
	noColor := !isTTY()

	switch e := err.(type) {
	case erdc.UnknownEntity:
		names := candidateEntityNames(source)
		suggestions := cliui.FindSimilar(e.Name, names, nil)
		fmt.Fprintln(os.Stderr, cliui.EntityNotFoundError(e.Name, e.Context, suggestions, noColor))
	case erdc.UnknownView:
		names := candidateViewNames(source)
		suggestions := cliui.FindSimilar(e.Name, names, nil)
		fmt.Fprintln(os.Stderr, cliui.ViewNotFoundError(e.Name, suggestions, noColor))
	default:
		snippet := compilererrors.FormatSnippet(err, source, isTTY())
		fmt.Fprintln(os.Stderr, cliui.CompileError(fmt.Sprintf("%s\n%s", path, snippet), noColor))
	}
}

func candidateEntityNames(source string) []string {
	tokens, lexErrs := lexer.New(source).ScanTokens()
	if len(lexErrs) > 0 {
		return nil
	}
	s, err := parser.New(tokens).Parse()
	if err != nil {
		return nil
	}
	return s.EntityNames()
}

func candidateViewNames(source string) []string {
	tokens, lexErrs := lexer.New(source).ScanTokens()
	if len(lexErrs) > 0 {
		return nil
	}
	s, err := parser.New(tokens).Parse()
	if err != nil {
		return nil
	}
	names := make([]string, len(s.Views))
	for i, v := range s.Views {
		names[i] = v.Name
	}
	return names
}

func newLogger(verbose bool) *zap.Logger {
	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return zap.NewNop()
		}
		return logger
	}
	return zap.NewNop()
}

func isTTY() bool {
	fi, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
