package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/earlysvahn/aiwriter/internal/action"
	"github.com/earlysvahn/aiwriter/internal/azure"
	"github.com/earlysvahn/aiwriter/internal/cli"
	"github.com/earlysvahn/aiwriter/internal/config"
	"github.com/earlysvahn/aiwriter/internal/editor"
	"github.com/earlysvahn/aiwriter/internal/tui"
	"github.com/earlysvahn/aiwriter/internal/writer"
)

type actionOptions struct {
	selection      string
	print          bool
	dryRun         bool
	plain          bool
	quiet          bool
	noHistory      bool
	storageBackend string
}

// RunActionCommand handles the continue, rewrite, summarize and prompt subcommands
func RunActionCommand(name string, args []string) error {
	act := action.Get(name)
	if act == nil {
		return fmt.Errorf("unknown action: %s", name)
	}

	fs := flag.NewFlagSet(name, flag.ExitOnError)
	var opts actionOptions
	fs.StringVar(&opts.selection, "select", "", "select|s: N to insert at character N, N:M to replace characters N..M")
	fs.StringVar(&opts.selection, "s", "", "")
	fs.BoolVar(&opts.print, "print", false, "write the result to stdout instead of the file")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "print the request body and exit")
	fs.BoolVar(&opts.plain, "plain", false, "ask for the custom prompt on one line")
	fs.BoolVar(&opts.quiet, "quiet", false, "suppress non-error logs")
	fs.BoolVar(&opts.noHistory, "no-history", false, "do not record the answer")
	fs.StringVar(&opts.storageBackend, "storage", "file", "history backend (file|sqlite|postgres)")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("expected one document, got %d", len(positional))
	}
	path := ""
	if len(positional) == 1 {
		path = positional[0]
	}

	return runAction(context.Background(), *act, path, opts, os.Stdin, os.Stdout)
}

func runAction(ctx context.Context, act action.Action, path string, opts actionOptions, stdin io.Reader, stdout io.Writer) error {
	logf := newLogf(opts.quiet)

	sel, err := editor.ParseSelection(opts.selection)
	if err != nil {
		return err
	}
	// the line prompt reads stdin, which already carries the document
	if act.Interactive && opts.plain && path == "-" {
		return fmt.Errorf("--plain reads the prompt from stdin and cannot be combined with a stdin document; use the full editor or pass a file")
	}

	doc, buf, err := openDocument(path, sel, opts.print, stdin)
	if err != nil {
		return err
	}

	w := &writer.Writer{
		Settings: func() (config.Settings, error) {
			return config.Resolve(config.NewKeyring())
		},
		Completer: azure.NewClient(logf),
		Prompter:  newPrompter(opts.plain),
		Status:    cli.Status[string],
		Log:       logf,
		DryRun:    opts.dryRun,
	}
	if opts.quiet {
		w.Status = nil
	}

	if !opts.noHistory && !opts.dryRun {
		hist, err := CreateHistoryStore(opts.storageBackend)
		if err != nil {
			return fmt.Errorf("storage error: %w", err)
		}
		defer hist.Close()
		w.History = hist
	}

	res, err := w.Run(ctx, doc, act)
	if errors.Is(err, writer.ErrPromptCancelled) {
		logf("prompt cancelled, nothing sent")
		return nil
	}
	if err != nil {
		return err
	}

	if opts.dryRun {
		b, err := res.Request.Encode()
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(b))
		return nil
	}

	if buf != nil {
		_, err := io.WriteString(stdout, buf.Content())
		return err
	}
	if res.EntryID != "" {
		logf(fmt.Sprintf("updated %s (history %s)", doc.Name(), shortID(res.EntryID)))
	} else {
		logf(fmt.Sprintf("updated %s", doc.Name()))
	}
	return nil
}

// openDocument returns the document to edit. The Buffer is non-nil when the
// result goes to stdout instead of a file.
func openDocument(path string, sel *editor.Selection, print bool, stdin io.Reader) (editor.Document, *editor.Buffer, error) {
	switch {
	case path == "":
		return nil, nil, writer.ErrNoActiveDocument
	case path == "-":
		buf, err := editor.ReadBuffer("stdin", stdin, sel)
		if err != nil {
			return nil, nil, err
		}
		return buf, buf, nil
	}

	doc, err := editor.OpenFile(path, sel)
	if err != nil {
		return nil, nil, err
	}
	if !print {
		return doc, nil, nil
	}
	b, err := os.ReadFile(doc.Path)
	if err != nil {
		return nil, nil, err
	}
	buf := editor.NewBuffer(doc.Path, string(b), sel)
	return buf, buf, nil
}

func newPrompter(plain bool) writer.Prompter {
	if plain {
		return &tui.LinePrompter{}
	}
	return tui.NewPromptModal()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
