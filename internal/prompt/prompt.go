// Package prompt implements interactive questions on a terminal.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ErrAborted is returned by Ask when the user leaves the prompt with
// ctrl+c, ctrl+d or esc.
var ErrAborted = errors.New("prompt aborted")

// --- answerModel: bubbletea model for a single-line answer ---

// inputClosedMsg reports that the input reached end of file.
type inputClosedMsg struct{}

type answerModel struct {
	input    textinput.Model
	question string
	style    lipgloss.Style
	done     bool
	aborted  bool
	closed   bool
}

func (m answerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m answerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done || m.aborted || m.closed {
		return m, nil
	}

	switch msg := msg.(type) {
	case inputClosedMsg:
		m.closed = true
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+d", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter", "ctrl+j":
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m answerModel) View() string {
	prefix := m.style.Render(m.question) + " "
	switch {
	case m.done:
		return prefix + m.input.Value() + "\n"
	case m.aborted, m.closed:
		return prefix + "\n"
	}
	return prefix + m.input.View()
}

// --- TextPrompter ---

// TextPrompter asks questions on out and reads each answer as an edited
// line from in.
type TextPrompter struct {
	in       io.Reader
	out      io.Writer
	question lipgloss.Style
	rejected lipgloss.Style
}

// New creates a TextPrompter. Styling is applied only when out is a terminal.
func New(in io.Reader, out io.Writer) *TextPrompter {
	r := lipgloss.NewRenderer(out)
	return &TextPrompter{
		in:       in,
		out:      out,
		question: r.NewStyle().Bold(true),
		rejected: r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return isTerminal(f)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Ask shows question and returns the submitted answer. It returns
// ErrAborted when the user leaves the prompt, io.EOF when non-terminal
// input ends before an answer, and ctx.Err() when ctx is done first.
func (p *TextPrompter) Ask(ctx context.Context, question string) (string, error) {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Focus()

	m := answerModel{
		input:    ti,
		question: question,
		style:    p.question,
	}

	var program *tea.Program
	in := p.in
	if !isTerminal(in) {
		in = &eofReader{r: in, onEOF: func() { program.Send(inputClosedMsg{}) }}
	}
	program = tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(p.out),
		tea.WithoutSignalHandler(),
	)

	result, err := program.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err != nil {
		return "", fmt.Errorf("running prompt: %w", err)
	}

	rm := result.(answerModel)
	switch {
	case rm.aborted:
		return "", ErrAborted
	case !rm.done:
		return "", io.EOF
	}
	return rm.input.Value(), nil
}

// Reject writes message as an error line.
func (p *TextPrompter) Reject(message string) {
	fmt.Fprintln(p.out, p.rejected.Render(message))
}

// eofReader calls onEOF when r is exhausted. bubbletea stops reading at end
// of input without telling the model, which would leave a piped prompt
// waiting forever.
type eofReader struct {
	r     io.Reader
	onEOF func()
}

func (e *eofReader) Read(b []byte) (int, error) {
	n, err := e.r.Read(b)
	if n > 0 && errors.Is(err, io.EOF) {
		return n, nil
	}
	if errors.Is(err, io.EOF) {
		e.onEOF()
	}
	return n, err
}
