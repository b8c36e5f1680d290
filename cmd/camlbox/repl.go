package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/camlbox/camlbox/pkg/caml"
	"github.com/camlbox/camlbox/pkg/ioctx"
)

const (
	promptMain = "# "
	promptCont = "  "
)

// session is an interactive run. The evaluator has no incremental
// mode, so each entry re-runs the accumulated source and the REPL
// prints only what the latest entry added.
type session struct {
	cfg    Config
	limits caml.Limits

	phrases []string
	// counts from the previous run, for delta reporting
	seenOutput int
	seenValues int

	lastMemory caml.MemoryState
}

func runREPL(ctx context.Context, cfg Config) error {
	setupLogging(cfg)

	limits, err := loadLimits(cfg)
	if err != nil {
		return err
	}

	stdout := ioctx.StdoutFromContext(ctx)
	fmt.Fprintln(stdout, promptStyle.Render("camlbox")+dimStyle.Render("  end phrases with ;;  ·  :help for commands"))

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := historyPath()
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	sess := &session{cfg: cfg, limits: limits}

	for {
		code, ok := readPhrase(ln)
		if !ok {
			fmt.Fprintln(stdout)
			break
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ":") {
			if done := sess.command(ctx, stdout, trimmed); done {
				break
			}
			ln.AppendHistory(trimmed)
			continue
		}

		sess.eval(ctx, stdout, code)
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}
	return nil
}

func historyPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "camlbox")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}

// readPhrase accumulates lines until one ends with ";;" (or the input
// is a :command). Returns false on EOF or Ctrl-C at the prompt.
func readPhrase(ln *liner.State) (string, bool) {
	var parts []string
	prompt := promptMain
	for {
		line, err := ln.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			return "", true
		}
		if err != nil {
			return "", false
		}
		parts = append(parts, line)
		joined := strings.Join(parts, "\n")
		trimmed := strings.TrimSpace(joined)
		if trimmed == "" || strings.HasPrefix(trimmed, ":") || strings.HasSuffix(trimmed, ";;") {
			return joined, true
		}
		prompt = promptCont
	}
}

// eval appends one phrase to the session and reports what it added.
// A failing phrase is dropped from the session so later entries do not
// replay the failure.
func (s *session) eval(ctx context.Context, w io.Writer, code string) {
	s.phrases = append(s.phrases, code)
	source := strings.Join(s.phrases, "\n")

	// The whole session is re-run each time, so the run must not stream
	// to the terminal: only the delta below is printed.
	runCtx := ioctx.StdoutToContext(ctx, io.Discard)
	res := caml.Run(runCtx, source, caml.WithLimits(s.limits))
	s.lastMemory = res.Memory

	if len(res.Output) >= s.seenOutput {
		if delta := res.Output[s.seenOutput:]; delta != "" {
			fmt.Fprint(w, delta)
			if !strings.HasSuffix(delta, "\n") {
				fmt.Fprintln(w)
			}
		}
	}
	for _, v := range res.Values[min(s.seenValues, len(res.Values)):] {
		fmt.Fprintf(w, "%s %s : %s = %s\n",
			dimStyle.Render("val"),
			nameStyle.Render(v.Name),
			typeStyle.Render(v.Type),
			resultStyle.Render(v.Value))
	}

	if len(res.Errors) > 0 {
		e := res.Errors[0]
		fmt.Fprintln(w, errorStyle.Render(caml.HighlightError(e, source)))
		s.phrases = s.phrases[:len(s.phrases)-1]
		return
	}

	s.seenOutput = len(res.Output)
	s.seenValues = len(res.Values)
}

func (s *session) command(ctx context.Context, w io.Writer, line string) (exit bool) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":exit", ":q":
		return true
	case ":help", ":h":
		fmt.Fprintln(w, dimStyle.Render(`  :quit     exit the REPL
  :memory   show the current memory snapshot
  :reset    discard the session
  :help     this message`))
	case ":memory", ":mem":
		fmt.Fprintln(w, memoryPanel(s.lastMemory))
	case ":reset":
		s.phrases = nil
		s.seenOutput = 0
		s.seenValues = 0
		s.lastMemory = caml.MemoryState{}
		fmt.Fprintln(w, dimStyle.Render("session cleared"))
	default:
		fmt.Fprintln(w, errorStyle.Render("unknown command "+fields[0]))
	}
	return false
}
