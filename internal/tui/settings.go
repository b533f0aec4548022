package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/earlysvahn/aiwriter/internal/config"
)

const (
	fieldKey = iota
	fieldEndpoint
	fieldLanguage
	fieldCount
)

type settingsModel struct {
	settings config.Settings
	key      textinput.Model
	endpoint textinput.Model
	langIdx  int
	langs    []config.LanguageOption
	focus    int
	onChange func(config.Settings) error
	err      error
	done     bool
}

func newSettingsModel(cfg config.Settings, onChange func(config.Settings) error) settingsModel {
	key := textinput.New()
	key.Placeholder = "Enter your secret"
	key.EchoMode = textinput.EchoPassword
	key.EchoCharacter = '•'
	key.SetValue(cfg.APIKey)
	key.Focus()

	endpoint := textinput.New()
	endpoint.Placeholder = "Enter your endpoint"
	endpoint.SetValue(cfg.Endpoint)

	langs := config.LanguageOptions
	idx := -1
	for i, o := range langs {
		if o.Value == cfg.Language {
			idx = i
		}
	}
	if idx < 0 {
		// keep a custom language selectable
		langs = append(append([]config.LanguageOption{}, langs...), config.LanguageOption{Value: cfg.Language, Label: cfg.Language})
		idx = len(langs) - 1
	}

	return settingsModel{
		settings: cfg,
		key:      key,
		endpoint: endpoint,
		langIdx:  idx,
		langs:    langs,
		onChange: onChange,
	}
}

func (m settingsModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m settingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.done = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.focus == fieldCount-1 {
				m.done = true
				return m, tea.Quit
			}
			m.setFocus(m.focus + 1)
			return m, nil
		case tea.KeyTab, tea.KeyDown:
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil
		case tea.KeyShiftTab, tea.KeyUp:
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, nil
		}
		if m.focus == fieldLanguage {
			switch keyMsg.Type {
			case tea.KeyLeft:
				m.langIdx = (m.langIdx + len(m.langs) - 1) % len(m.langs)
				return m.changed(), nil
			case tea.KeyRight, tea.KeySpace:
				m.langIdx = (m.langIdx + 1) % len(m.langs)
				return m.changed(), nil
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldKey:
		before := m.key.Value()
		m.key, cmd = m.key.Update(msg)
		if m.key.Value() != before {
			m = m.changed()
		}
	case fieldEndpoint:
		before := m.endpoint.Value()
		m.endpoint, cmd = m.endpoint.Update(msg)
		if m.endpoint.Value() != before {
			m = m.changed()
		}
	}
	return m, cmd
}

func (m *settingsModel) setFocus(i int) {
	m.focus = i
	m.key.Blur()
	m.endpoint.Blur()
	switch i {
	case fieldKey:
		m.key.Focus()
	case fieldEndpoint:
		m.endpoint.Focus()
	}
}

// changed copies the form into settings and persists them.
func (m settingsModel) changed() settingsModel {
	m.settings.APIKey = m.key.Value()
	m.settings.Endpoint = strings.TrimSpace(m.endpoint.Value())
	m.settings.Language = m.langs[m.langIdx].Value
	if m.onChange != nil {
		m.err = m.onChange(m.settings)
	}
	return m
}

func (m settingsModel) View() string {
	if m.done {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("AI Writer settings\n\n")
	m.row(&sb, fieldKey, "Azure OpenAI key", "Authentication key", m.key.View())
	m.row(&sb, fieldEndpoint, "Azure OpenAI Endpoint", "Endpoint", m.endpoint.View())

	var opts []string
	for i, o := range m.langs {
		if i == m.langIdx {
			opts = append(opts, "["+o.Label+"]")
		} else {
			opts = append(opts, " "+o.Label+" ")
		}
	}
	m.row(&sb, fieldLanguage, "Language", "Choose your language", strings.Join(opts, " "))

	if m.err != nil {
		sb.WriteString(fmt.Sprintf("[error] %v\n", m.err))
	} else {
		sb.WriteString("Changes are saved as you type.\n")
	}
	sb.WriteString("tab next • ←/→ language • enter done • esc close\n")
	return sb.String()
}

func (m settingsModel) row(sb *strings.Builder, field int, name, desc, input string) {
	marker := "  "
	if m.focus == field {
		marker = "> "
	}
	sb.WriteString(marker + name + " (" + desc + ")\n")
	sb.WriteString("  " + input + "\n\n")
}

// RunSettings opens the settings form. onChange is called after every edit.
// It returns the settings as last edited.
func RunSettings(cfg config.Settings, onChange func(config.Settings) error, in io.Reader, out io.Writer) (config.Settings, error) {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}
	final, err := tea.NewProgram(newSettingsModel(cfg, onChange), tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return cfg, err
	}
	if m, ok := final.(settingsModel); ok {
		return m.settings, m.err
	}
	return cfg, nil
}
