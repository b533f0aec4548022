package editor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/earlysvahn/aiwriter/internal/utils"
)

// ErrNoActiveDocument is returned when an action runs without a document.
var ErrNoActiveDocument = errors.New("no active document")

// Document is the editor surface an action works on.
type Document interface {
	Name() string
	// Text returns the full text. It fails if the selection does not fit.
	Text() (string, error)
	// ReplaceSelection substitutes the selection with text, or inserts at
	// the caret when the selection is empty.
	ReplaceSelection(text string) error
}

// FileDocument is a document backed by a file on disk.
type FileDocument struct {
	Path      string
	Selection *Selection
}

// OpenFile returns ErrNoActiveDocument when path is empty or missing.
func OpenFile(path string, sel *Selection) (*FileDocument, error) {
	if path == "" {
		return nil, ErrNoActiveDocument
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s does not exist", ErrNoActiveDocument, path)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNoActiveDocument, path)
	}
	return &FileDocument{Path: path, Selection: sel}, nil
}

func (d *FileDocument) Name() string { return d.Path }

func (d *FileDocument) Text() (string, error) {
	b, err := os.ReadFile(d.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s does not exist", ErrNoActiveDocument, d.Path)
		}
		return "", err
	}
	text := string(b)
	if _, err := Resolve(d.Selection, text); err != nil {
		return "", err
	}
	return text, nil
}

// ReplaceSelection re-reads the file so edits made while a request was
// outstanding are kept; the selection offsets are applied to the current
// contents.
func (d *FileDocument) ReplaceSelection(text string) error {
	info, err := os.Stat(d.Path)
	if err != nil {
		return err
	}
	b, err := os.ReadFile(d.Path)
	if err != nil {
		return err
	}
	out, err := Splice(string(b), d.Selection, text)
	if err != nil {
		return err
	}
	return utils.WriteFileAtomic(d.Path, []byte(out), info.Mode().Perm())
}

// Buffer is an in-memory document, used for stdin input and tests.
type Buffer struct {
	Label     string
	Selection *Selection

	mu      sync.Mutex
	content string
	edits   int
}

func NewBuffer(label, content string, sel *Selection) *Buffer {
	return &Buffer{Label: label, Selection: sel, content: content}
}

// ReadBuffer reads all of r into a Buffer.
func ReadBuffer(label string, r io.Reader, sel *Selection) (*Buffer, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", label, err)
	}
	return NewBuffer(label, string(b), sel), nil
}

func (b *Buffer) Name() string { return b.Label }

func (b *Buffer) Text() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := Resolve(b.Selection, b.content); err != nil {
		return "", err
	}
	return b.content, nil
}

func (b *Buffer) ReplaceSelection(text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	out, err := Splice(b.content, b.Selection, text)
	if err != nil {
		return err
	}
	b.content = out
	b.edits++
	return nil
}

// Content returns the current text.
func (b *Buffer) Content() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.content
}

// Edits counts successful ReplaceSelection calls.
func (b *Buffer) Edits() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.edits
}
