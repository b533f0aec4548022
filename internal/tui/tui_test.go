package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earlysvahn/aiwriter/internal/config"
)

func typeText(m tea.Model, s string) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func press(m tea.Model, k tea.KeyType) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: k})
}

func TestPromptModel_ConfirmReturnsContents(t *testing.T) {
	var m tea.Model = newPromptModel("Start.")
	m = typeText(m, " More.")
	m, cmd := press(m, tea.KeyCtrlS)
	require.NotNil(t, cmd)

	text, ok := m.(promptModel).Value()
	assert.True(t, ok)
	assert.Equal(t, "Start. More.", text)
	assert.Equal(t, "", m.View())
}

func TestPromptModel_DismissReturnsNothing(t *testing.T) {
	var m tea.Model = newPromptModel("Start.")
	m, cmd := press(m, tea.KeyEsc)
	require.NotNil(t, cmd)

	_, ok := m.(promptModel).Value()
	assert.False(t, ok)
}

func TestPromptModel_Clear(t *testing.T) {
	var m tea.Model = newPromptModel("Start.")
	assert.Contains(t, m.View(), promptTitle)

	m, _ = press(m, tea.KeyCtrlL)
	m = typeText(m, "New")
	m, _ = press(m, tea.KeyCtrlS)

	text, ok := m.(promptModel).Value()
	assert.True(t, ok)
	assert.Equal(t, "New", text)
}

func TestSettingsModel_SavesOnEveryEdit(t *testing.T) {
	var saved []config.Settings
	onChange := func(s config.Settings) error {
		saved = append(saved, s)
		return nil
	}
	var m tea.Model = newSettingsModel(config.Defaults(), onChange)

	m = typeText(m, "X")
	require.Len(t, saved, 1)
	assert.Equal(t, config.DefaultAPIKey+"X", saved[0].APIKey)

	m, _ = press(m, tea.KeyTab)
	m, _ = press(m, tea.KeyTab)
	m, _ = press(m, tea.KeyRight)
	require.Len(t, saved, 2)
	assert.Equal(t, "German", saved[1].Language)

	m, _ = press(m, tea.KeyRight)
	assert.Equal(t, "auto", saved[2].Language)
	m, _ = press(m, tea.KeyLeft)
	assert.Equal(t, "German", saved[3].Language)

	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.Equal(t, "German", m.(settingsModel).settings.Language)
	assert.Equal(t, config.DefaultEndpoint, m.(settingsModel).settings.Endpoint)
}

func TestSettingsModel_MasksKey(t *testing.T) {
	m := newSettingsModel(config.Settings{APIKey: "supersecret", Endpoint: "https://x.example.com", Language: "English"}, nil)
	view := m.View()
	assert.NotContains(t, view, "supersecret")
	assert.Contains(t, view, "https://x.example.com")
	assert.Contains(t, view, "[English]")
}

func TestSettingsModel_KeepsCustomLanguage(t *testing.T) {
	m := newSettingsModel(config.Settings{Language: "French"}, nil)
	assert.Contains(t, m.View(), "[French]")
	assert.Len(t, m.langs, len(config.LanguageOptions)+1)
	assert.Len(t, config.LanguageOptions, 3)
}

func TestSettingsModel_ShowsSaveError(t *testing.T) {
	var m tea.Model = newSettingsModel(config.Defaults(), func(config.Settings) error {
		return assert.AnError
	})
	m = typeText(m, "x")
	assert.True(t, strings.Contains(m.View(), "[error]"))
}
