package editor

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Selection is a half-open range of rune offsets [Start, End).
// Start == End is a caret.
type Selection struct {
	Start int
	End   int
}

func (s Selection) IsCaret() bool { return s.Start == s.End }

func (s Selection) String() string {
	if s.IsCaret() {
		return strconv.Itoa(s.Start)
	}
	return fmt.Sprintf("%d:%d", s.Start, s.End)
}

// ParseSelection parses "N" (caret) or "N:M" (range). An empty string
// returns nil, meaning a caret at the end of the document.
func ParseSelection(s string) (*Selection, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	startStr, endStr, isRange := strings.Cut(s, ":")
	start, err := strconv.Atoi(strings.TrimSpace(startStr))
	if err != nil {
		return nil, fmt.Errorf("invalid selection %q: %w", s, err)
	}
	end := start
	if isRange {
		end, err = strconv.Atoi(strings.TrimSpace(endStr))
		if err != nil {
			return nil, fmt.Errorf("invalid selection %q: %w", s, err)
		}
	}
	if start < 0 || end < start {
		return nil, fmt.Errorf("invalid selection %q: need 0 <= start <= end", s)
	}
	return &Selection{Start: start, End: end}, nil
}

// Resolve returns the concrete selection for text; nil resolves to a caret
// at the end. Offsets count runes; each invalid UTF-8 byte counts as one.
func Resolve(sel *Selection, text string) (Selection, error) {
	n := utf8.RuneCountInString(text)
	if sel == nil {
		return Selection{Start: n, End: n}, nil
	}
	if sel.End > n {
		return Selection{}, fmt.Errorf("selection %s is outside the document (%d characters)", sel, n)
	}
	return *sel, nil
}

// Splice replaces the selected runes of text with insert. Bytes outside the
// selection are copied unchanged, including invalid UTF-8.
func Splice(text string, sel *Selection, insert string) (string, error) {
	r, err := Resolve(sel, text)
	if err != nil {
		return "", err
	}
	start := byteOffset(text, r.Start)
	end := start + byteOffset(text[start:], r.End-r.Start)
	var b strings.Builder
	b.Grow(len(text) - (end - start) + len(insert))
	b.WriteString(text[:start])
	b.WriteString(insert)
	b.WriteString(text[end:])
	return b.String(), nil
}

// byteOffset returns the byte index of the n-th rune of s.
func byteOffset(s string, n int) int {
	off := 0
	for i := 0; i < n && off < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[off:])
		off += size
	}
	return off
}
