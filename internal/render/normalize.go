package render

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	codeBlockRe  = regexp.MustCompile("(?s)```.*?```")
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
	hyphenWrapRe = regexp.MustCompile(`(\pL)-\n(\pL)`)
	blockStartRe = regexp.MustCompile(`^\s*([-*+>#|]|\d+[.)])`)
)

// unwrapProse joins hard-wrapped paragraphs so glamour can reflow them.
// Fenced code blocks, lists, quotes, headings and tables keep their line
// breaks. Only used for display; stored answers are never rewritten.
func unwrapProse(text string) string {
	blocks := codeBlockRe.FindAllString(text, -1)
	const placeholder = "\x00CODE_BLOCK_%d\x00"
	for i, block := range blocks {
		text = strings.Replace(text, block, fmt.Sprintf(placeholder, i), 1)
	}

	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	text = strings.Join(lines, "\n")

	text = blankRunRe.ReplaceAllString(text, "\n\n")
	text = hyphenWrapRe.ReplaceAllString(text, "$1$2")
	text = joinSoftWraps(text)

	for i, block := range blocks {
		text = strings.Replace(text, fmt.Sprintf(placeholder, i), block, 1)
	}
	return text
}

func joinSoftWraps(text string) string {
	lines := strings.Split(text, "\n")
	var sb strings.Builder
	sb.Grow(len(text))
	for i, line := range lines {
		if i > 0 {
			if softWrapped(lines[i-1], line) {
				sb.WriteByte(' ')
			} else {
				sb.WriteByte('\n')
			}
		}
		sb.WriteString(line)
	}
	return sb.String()
}

func softWrapped(prev, next string) bool {
	if prev == "" || next == "" {
		return false
	}
	if strings.Contains(prev, "\x00") || strings.Contains(next, "\x00") {
		return false
	}
	if strings.HasPrefix(strings.TrimSpace(prev), "#") || strings.HasPrefix(strings.TrimSpace(prev), "|") {
		return false
	}
	return !blockStartRe.MatchString(next)
}
