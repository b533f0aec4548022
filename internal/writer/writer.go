package writer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/earlysvahn/aiwriter/internal/action"
	"github.com/earlysvahn/aiwriter/internal/azure"
	"github.com/earlysvahn/aiwriter/internal/chat"
	"github.com/earlysvahn/aiwriter/internal/config"
	"github.com/earlysvahn/aiwriter/internal/editor"
	"github.com/earlysvahn/aiwriter/internal/store"
)

// StatusText is shown while a request is outstanding.
const StatusText = "Connecting to Azure OpenAI..."

var (
	ErrNoActiveDocument = editor.ErrNoActiveDocument
	// ErrPromptCancelled is returned when the prompt editor is dismissed.
	ErrPromptCancelled = errors.New("prompt cancelled")
)

type Completer interface {
	Complete(ctx context.Context, creds azure.Credentials, req chat.Request) (string, error)
}

// Prompter asks the user for a free-form instruction. ok is false when the
// user dismissed the prompt without confirming. A confirmed blank instruction
// is treated like a dismissal.
type Prompter interface {
	Capture(ctx context.Context, initial string) (instruction string, ok bool, err error)
}

// StatusFunc runs fn while showing msg to the user.
type StatusFunc func(msg string, fn func() (string, error)) (string, error)

type Writer struct {
	// Settings is called once per invocation.
	Settings  func() (config.Settings, error)
	Completer Completer
	Prompter  Prompter
	// History is optional. Failures to record are logged, never returned.
	History store.HistoryStore
	Status  StatusFunc
	Log     func(string)
	// DryRun stops after composing the request.
	DryRun bool
}

// Result describes a completed invocation.
type Result struct {
	Request chat.Request
	Answer  string
	EntryID string
	Sent    bool
}

func (w *Writer) logf(format string, args ...any) {
	if w.Log != nil {
		w.Log(fmt.Sprintf(format, args...))
	}
}

// Run performs act on doc. The document is only modified after an answer was
// extracted successfully. A nil doc yields ErrNoActiveDocument without
// contacting the endpoint.
func (w *Writer) Run(ctx context.Context, doc editor.Document, act action.Action) (Result, error) {
	if doc == nil {
		return Result{}, ErrNoActiveDocument
	}

	instruction := act.Prompt
	if act.Interactive {
		if w.Prompter == nil {
			return Result{}, fmt.Errorf("action %s needs a prompt editor", act.Name)
		}
		text, ok, err := w.Prompter.Capture(ctx, act.Prompt)
		if err != nil {
			return Result{}, fmt.Errorf("capture prompt: %w", err)
		}
		if !ok || strings.TrimSpace(text) == "" {
			return Result{}, ErrPromptCancelled
		}
		instruction = text
	}

	text, err := doc.Text()
	if err != nil {
		return Result{}, err
	}

	settings, err := w.Settings()
	if err != nil {
		return Result{}, fmt.Errorf("load settings: %w", err)
	}

	req := chat.BuildRequest(settings.Language, instruction, text)
	res := Result{Request: req}
	if w.DryRun {
		return res, nil
	}

	creds := azure.Credentials{Endpoint: settings.Endpoint, APIKey: settings.APIKey}
	w.logf("%s on %s (%d chars, language %s)", act.Name, doc.Name(), len([]rune(text)), settings.Language)
	send := func() (string, error) { return w.Completer.Complete(ctx, creds, req) }
	var answer string
	if w.Status != nil {
		answer, err = w.Status(StatusText, send)
	} else {
		answer, err = send()
	}
	res.Sent = true
	if err != nil {
		return res, err
	}
	res.Answer = answer

	if err := doc.ReplaceSelection(answer); err != nil {
		return res, fmt.Errorf("replace selection: %w", err)
	}

	if w.History != nil {
		entry := store.NewEntry(act.Name, doc.Name(), settings.Language, instruction, answer)
		if err := w.History.Append(entry); err != nil {
			w.logf("warning: failed to save history: %v", err)
		} else {
			res.EntryID = entry.ID
		}
	}
	return res, nil
}

// Notice formats err for display to the user.
func Notice(err error) string {
	return "Error: " + err.Error()
}
