package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	lamb "go.lamb.dev/pkg"
)

const (
	historyFile = ".lamb_history"
	promptMain  = "λ> "
	promptCont  = ".. "
)

func (d *driver) repl(_ *cli.Context) error {
	fmt.Fprintln(d.stdout, "lamb parser REPL. Ctrl+C cancels input, Ctrl+D exits.")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		src, ok := d.readEntry(ln)
		if !ok {
			fmt.Fprintln(d.stdout)
			return nil
		}

		if strings.TrimSpace(src) == "" {
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		expr, err := d.frontend.ParseReader("<repl>", strings.NewReader(src))
		if err != nil {
			d.printErrors(err)
			continue
		}

		fmt.Fprintln(d.stdout, expr)
	}
}

// readEntry keeps prompting while the text read so far is an incomplete
// expression, like an unclosed let or if.
func (d *driver) readEntry(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}

		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}

		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, err := lamb.ParseString(src, d.frontend.Options()...); lamb.IsIncomplete(err) {
			continue
		}

		return src, true
	}
}
