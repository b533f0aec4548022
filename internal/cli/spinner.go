package cli

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// spinnerModel shows status text while a request is outstanding
type spinnerModel struct {
	spinner  spinner.Model
	message  string
	quitting bool
	done     bool
}

func newSpinnerModel(message string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return spinnerModel{
		spinner: s,
		message: message,
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(doneMsg); ok {
		m.done = true
		m.quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m spinnerModel) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.message)
}

type doneMsg struct{}

// Status shows message on stderr while executeFn runs: a spinner on a
// terminal, a plain line otherwise. Stdout is left untouched.
func Status[T any](message string, executeFn func() (T, error)) (T, error) {
	return status(message, os.Stderr, IsTerminal(os.Stderr), executeFn)
}

func status[T any](message string, out io.Writer, tty bool, executeFn func() (T, error)) (T, error) {
	if !tty {
		fmt.Fprintf(out, "%s\n", message)
		return executeFn()
	}

	var result T
	var execErr error
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		result, execErr = executeFn()
	}()

	// no input: stdin may carry the document
	p := tea.NewProgram(newSpinnerModel(message), tea.WithInput(nil), tea.WithOutput(out))
	go func() {
		wg.Wait()
		p.Send(doneMsg{})
	}()

	// an interrupted spinner only hides the status line; the request has no
	// cancellation and is still awaited
	_, _ = p.Run()
	wg.Wait()
	return result, execErr
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
