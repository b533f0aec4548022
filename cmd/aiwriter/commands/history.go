package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/earlysvahn/aiwriter/internal/render"
	"github.com/earlysvahn/aiwriter/internal/store"
	"github.com/earlysvahn/aiwriter/internal/utils"
)

// RunHistoryCommand handles the 'history' subcommand
func RunHistoryCommand(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	var limit int
	var storageBackend string
	fs.IntVar(&limit, "limit", 20, "number of entries to list (0 for all)")
	fs.IntVar(&limit, "n", 20, "")
	fs.StringVar(&storageBackend, "storage", "file", "history backend (file|sqlite|postgres)")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}

	historyStore, err := CreateHistoryStore(storageBackend)
	if err != nil {
		return fmt.Errorf("storage error: %w", err)
	}
	defer historyStore.Close()

	if len(positional) == 0 {
		return listHistory(os.Stdout, historyStore, limit)
	}
	if positional[0] != "show" || len(positional) != 2 {
		return fmt.Errorf("usage: aiwriter history [--limit N] | aiwriter history show ID")
	}

	e, err := historyStore.Get(positional[1])
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("history entry '%s' does not exist", positional[1])
	}
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	fmt.Printf("[%s] %s on %s (%s) at %s\n", shortID(e.ID), e.Action, e.Document, e.Language, e.Time.Local().Format("2006-01-02 15:04"))
	fmt.Printf("[instruction] %s\n\n", e.Instruction)
	fmt.Print(render.Markdown(e.Answer))
	fmt.Println()
	return nil
}

func listHistory(w io.Writer, historyStore store.HistoryStore, limit int) error {
	entries, err := historyStore.List(limit)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	fmt.Fprintf(w, "%-8s  %-16s  %-10s  %-24s  %s\n", "ID", "TIME", "ACTION", "DOCUMENT", "ANSWER")
	for _, e := range entries {
		fmt.Fprintf(w, "%-8s  %-16s  %-10s  %-24s  %s\n",
			shortID(e.ID),
			e.Time.Local().Format("2006-01-02 15:04"),
			e.Action,
			utils.Truncate(e.Document, 24),
			utils.Truncate(utils.FirstLine(e.Answer), 50),
		)
	}
	return nil
}
