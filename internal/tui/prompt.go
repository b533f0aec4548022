package tui

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

const promptTitle = "Custom AI Writer prompt:"

type promptModel struct {
	textarea  textarea.Model
	confirmed bool
	done      bool
	width     int
}

func newPromptModel(initial string) promptModel {
	ta := textarea.New()
	ta.Placeholder = "Describe what the assistant should do with the note..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(70)
	ta.SetHeight(6)
	ta.SetValue(initial)
	ta.Focus()
	return promptModel{textarea: ta, width: 70}
}

func (m promptModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlS:
			m.confirmed = true
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlL:
			m.textarea.Reset()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 4 {
			m.textarea.SetWidth(msg.Width - 2)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done {
		return ""
	}
	rule := strings.Repeat("─", m.width)
	return promptTitle + "\n" + rule + "\n" + m.textarea.View() + "\n" + rule + "\n" +
		"ctrl+s run prompt • ctrl+l clear • esc cancel\n"
}

// Value returns the instruction and whether it was confirmed.
func (m promptModel) Value() (string, bool) {
	return m.textarea.Value(), m.confirmed
}

// PromptModal asks for an instruction in a full terminal editor. It blocks
// until the user confirms or dismisses it. A nil Input reads from the
// controlling terminal, so stdin stays free for the document.
type PromptModal struct {
	Input  io.Reader
	Output io.Writer
}

func NewPromptModal() *PromptModal {
	return &PromptModal{Output: os.Stderr}
}

func (p *PromptModal) Capture(ctx context.Context, initial string) (string, bool, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(p.Output)}
	if p.Input != nil {
		opts = append(opts, tea.WithInput(p.Input))
	} else {
		opts = append(opts, tea.WithInputTTY())
	}
	final, err := tea.NewProgram(newPromptModel(initial), opts...).Run()
	if err != nil {
		return "", false, err
	}
	m, ok := final.(promptModel)
	if !ok {
		return "", false, nil
	}
	text, confirmed := m.Value()
	return text, confirmed, nil
}
