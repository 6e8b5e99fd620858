package prompt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("211"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	checkMark     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).SetString("✓")
	errorMark     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).SetString("✗")
)

// ConfirmModel is a bubbletea model asking a yes/no question.
type ConfirmModel struct {
	question  string
	input     textinput.Model
	width     int
	answered  bool
	confirmed bool
}

func NewConfirmModel(question string) *ConfirmModel {
	ti := textinput.New()
	ti.Placeholder = "yes/no"
	ti.Prompt = "> "
	ti.CharLimit = 16
	ti.Focus()

	return &ConfirmModel{
		question: question,
		input:    ti,
	}
}

func (m *ConfirmModel) Init() tea.Cmd {
	return textinput.Blink
}

//nolint:ireturn // Third-party.
func (m *ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			m.answered = true
			m.confirmed = IsYes(m.input.Value())

			return m, tea.Quit

		case tea.KeyCtrlC, tea.KeyEsc:
			m.answered = true
			m.confirmed = false

			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *ConfirmModel) View() string {
	question := questionStyle.Width(max(0, m.width-2)).Render(m.question)
	if m.width == 0 {
		question = questionStyle.Render(m.question)
	}

	if m.answered {
		mark := errorMark.String()
		if m.confirmed {
			mark = checkMark.String()
		}

		return question + "\n" + mark + " " + strings.TrimSpace(m.input.Value()) + "\n"
	}

	return question + "\n" + m.input.View() + "\n" + hintStyle.Render("enter to submit, esc to cancel") + "\n"
}

// Answered reports whether the prompt was submitted or cancelled.
func (m *ConfirmModel) Answered() bool {
	return m.answered
}

// Confirmed reports whether the answer was affirmative.
func (m *ConfirmModel) Confirmed() bool {
	return m.confirmed
}

// ConfirmTTY asks question with an interactive prompt on in and out.
func ConfirmTTY(in io.Reader, out io.Writer, question string) (bool, error) {
	p := tea.NewProgram(NewConfirmModel(question), tea.WithInput(in), tea.WithOutput(out))

	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("run prompt: %w", err)
	}

	m, ok := final.(*ConfirmModel)
	if !ok {
		return false, fmt.Errorf("unexpected model %T", final)
	}

	return m.Confirmed(), nil
}
