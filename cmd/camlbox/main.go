package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/camlbox/camlbox/pkg/caml"
	"github.com/camlbox/camlbox/pkg/ioctx"
)

// Config holds the application configuration
type Config struct {
	Debug      bool
	JSON       bool
	Memory     bool
	ConfigFile string
}

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	typeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1)
)

func main() {
	var cfg Config

	rootCmd := &cobra.Command{
		Use:   "camlbox [flags] [file...]",
		Short: "OCaml-subset interpreter",
		Long: `Camlbox runs a small OCaml subset: let bindings, algebraic data
types, pattern matching, refs and arrays, exceptions, and a List/String/
Array/Printf standard library. Each run reports its printed output,
top-level bindings, and a snapshot of the evaluator's memory.`,
		Example: `  # Run a script
  camlbox fib.ml

  # Run several scripts, reporting each in order
  camlbox a.ml b.ml

  # Start the interactive REPL
  camlbox

  # Emit the full structured result as JSON
  camlbox --json fib.ml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runREPL(cmd.Context(), cfg)
			}
			return runFiles(cmd.Context(), cfg, args)
		},
	}

	rootCmd.Flags().BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging and AST dumps")
	rootCmd.Flags().BoolVar(&cfg.JSON, "json", false, "Emit the structured result as JSON")
	rootCmd.Flags().BoolVarP(&cfg.Memory, "memory", "m", false, "Show the memory snapshot after each run")
	rootCmd.Flags().StringVarP(&cfg.ConfigFile, "config", "c", "", "TOML file overriding resource limits")

	ctx := context.Background()
	ctx = ioctx.StdoutToContext(ctx, os.Stdout)
	ctx = ioctx.StderrToContext(ctx, os.Stderr)
	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func setupLogging(cfg Config) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func loadLimits(cfg Config) (caml.Limits, error) {
	if cfg.ConfigFile == "" {
		return caml.DefaultLimits(), nil
	}
	limits, err := caml.LoadLimits(cfg.ConfigFile)
	if err != nil {
		return caml.Limits{}, err
	}
	slog.Debug("loaded limits", "path", cfg.ConfigFile,
		"maxSteps", limits.MaxSteps, "maxCallDepth", limits.MaxCallDepth,
		"timeoutMs", limits.TimeoutMs)
	return limits, nil
}

// runFiles evaluates each file in its own goroutine. Runs share
// nothing, so only the reporting is serialized: results print in
// argument order regardless of completion order.
func runFiles(ctx context.Context, cfg Config, paths []string) error {
	setupLogging(cfg)

	limits, err := loadLimits(cfg)
	if err != nil {
		return err
	}

	type fileRun struct {
		source string
		result *caml.Result
	}
	runs := make([]fileRun, len(paths))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, path := range paths {
		eg.Go(func() error {
			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			source := string(src)
			if cfg.Debug {
				dumpAST(path, source)
			}
			// Run never sees the process stdout: output is printed
			// from the result, in order.
			runCtx := ioctx.StdoutToContext(egCtx, io.Discard)
			runs[i] = fileRun{
				source: source,
				result: caml.Run(runCtx, source, caml.WithLimits(limits)),
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	stdout := ioctx.StdoutFromContext(ctx)
	failed := false
	for i, path := range paths {
		if len(paths) > 1 {
			fmt.Fprintln(stdout, promptStyle.Render("== "+path))
		}
		if printResult(stdout, cfg, runs[i].source, runs[i].result) {
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("evaluation failed")
	}
	return nil
}

// printResult reports one run and returns whether it failed.
func printResult(w io.Writer, cfg Config, source string, res *caml.Result) bool {
	if cfg.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			fmt.Fprintln(w, errorStyle.Render(err.Error()))
			return true
		}
		return len(res.Errors) > 0
	}

	if res.Output != "" {
		fmt.Fprint(w, res.Output)
		if !strings.HasSuffix(res.Output, "\n") {
			fmt.Fprintln(w)
		}
	}
	for _, v := range res.Values {
		fmt.Fprintf(w, "%s %s : %s = %s\n",
			dimStyle.Render("val"),
			nameStyle.Render(v.Name),
			typeStyle.Render(v.Type),
			resultStyle.Render(v.Value))
	}
	for _, e := range res.Errors {
		fmt.Fprintln(w, errorStyle.Render(caml.HighlightError(e, source)))
	}
	if cfg.Memory {
		fmt.Fprintln(w, memoryPanel(res.Memory))
	}
	slog.Debug("run finished", "ms", res.ExecutionTimeMs,
		"values", len(res.Values), "errors", len(res.Errors))
	return len(res.Errors) > 0
}

// memoryPanel renders the snapshot as a bordered summary: environment
// bindings, heap objects, retained stack frames, and declared types.
func memoryPanel(ms caml.MemoryState) string {
	var sb strings.Builder

	sb.WriteString(nameStyle.Render("environment") + "\n")
	if len(ms.Environment) == 0 {
		sb.WriteString(dimStyle.Render("  (empty)") + "\n")
	}
	for _, b := range ms.Environment {
		fmt.Fprintf(&sb, "  %s : %s = %s\n", b.Name, typeStyle.Render(b.Type), b.Value)
	}

	sb.WriteString(nameStyle.Render("heap") + "\n")
	if len(ms.Heap) == 0 {
		sb.WriteString(dimStyle.Render("  (empty)") + "\n")
	}
	for _, h := range ms.Heap {
		fmt.Fprintf(&sb, "  #%d %s : %s = %s\n", h.ID, h.Kind, typeStyle.Render(h.Type), h.Value)
	}

	if len(ms.Stack) > 0 {
		sb.WriteString(nameStyle.Render("stack") + "\n")
		for _, f := range ms.Stack {
			fmt.Fprintf(&sb, "  %s (line %d)\n", f.Name, f.Line)
			for _, b := range f.Bindings {
				fmt.Fprintf(&sb, "    %s : %s = %s\n", b.Name, typeStyle.Render(b.Type), b.Value)
			}
		}
	}

	if len(ms.TypeDefinitions) > 0 {
		sb.WriteString(nameStyle.Render("types") + "\n")
		for _, sig := range ms.TypeDefinitions {
			fmt.Fprintf(&sb, "  %s\n", sig)
		}
	}

	return panelStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

// dumpAST lexes and parses source for inspection without running it.
func dumpAST(path, source string) {
	tokens, err := caml.Lex(source)
	if err != nil {
		slog.Debug("lex failed", "path", path, "err", err)
		return
	}
	phrases, err := caml.Parse(tokens)
	if err != nil {
		slog.Debug("parse failed", "path", path, "err", err)
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", dimStyle.Render("ast:"), path)
	for _, phrase := range phrases {
		fmt.Fprintf(os.Stderr, "%# v\n", pretty.Formatter(phrase))
	}
}
