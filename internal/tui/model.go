package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rag/internal/watch"
)

const (
	title         = "Ask Anything About The BIG 3 of Tennis"
	emptyWarning  = "Please enter a question."
	readyStatus   = "Type a question and press Enter."
	searchingLine = "Searching..."
)

// Asker is the form-facing subset of the answering pipeline.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// Options configures the form.
type Options struct {
	// Context bounds every question. Defaults to context.Background.
	Context context.Context
	// Events, when set, reports corpus changes on the status line.
	Events <-chan watch.Event
}

type answerMsg struct {
	answer string
	err    error
}

type corpusChangedMsg watch.Event

// Model is the Bubble Tea model for the question form.
type Model struct {
	asker    Asker
	ctx      context.Context
	events   <-chan watch.Event
	input    textinput.Model
	viewport viewport.Model
	log      []string
	status   string
	warning  bool
	busy     bool
	ready    bool
}

// New creates the form model.
func New(asker Asker, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return Model{
		asker:    asker,
		ctx:      ctx,
		events:   opts.Events,
		input:    ti,
		viewport: viewport.New(0, 0),
		status:   readyStatus,
	}
}

// Init starts the cursor blink and, if configured, the corpus listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForChange())
}

// Update handles key, window, answer and corpus events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, lh := logBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // title + blank, status, input box, spacer
		m.viewport.Width = max(20, msg.Width-4)
		m.viewport.Height = max(3, msg.Height-reserved-lh)
		m.refreshLog()
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	case answerMsg:
		m.busy = false
		if msg.err != nil {
			m.appendLog("Error: " + msg.err.Error())
		} else {
			m.appendLog("Answer: " + msg.answer)
		}
		m.setStatus(readyStatus, false)
		return m, nil
	case corpusChangedMsg:
		m.setStatus(fmt.Sprintf("%s was %s; the index is rebuilt on the next question.", filepath.Base(msg.Path), msg.Op), false)
		return m, m.waitForChange()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	q := strings.TrimSpace(m.input.Value())
	if q == "" {
		m.setStatus(emptyWarning, true)
		return m, nil
	}
	m.busy = true
	m.input.Reset()
	m.appendLog("Question: " + q)
	m.appendLog(searchingLine)
	m.setStatus("Searching the documents...", false)
	asker, ctx := m.asker, m.ctx
	return m, func() tea.Msg {
		ans, err := asker.Ask(ctx, q)
		return answerMsg{answer: ans, err: err}
	}
}

func (m Model) waitForChange() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return corpusChangedMsg(ev)
	}
}

func (m *Model) appendLog(line string) {
	m.log = append(m.log, line)
	m.refreshLog()
}

func (m *Model) refreshLog() {
	if len(m.log) == 0 {
		m.viewport.SetContent("No questions yet.")
		return
	}
	body := strings.Join(m.log, "\n")
	if m.viewport.Width > 0 {
		body = lipgloss.NewStyle().Width(m.viewport.Width).Render(body)
	}
	m.viewport.SetContent(body)
	m.viewport.GotoBottom()
}

func (m *Model) setStatus(s string, warning bool) {
	m.status = s
	m.warning = warning
}

// View renders the title, the output log, the input and the status line.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := titleStyle.Render(title)
	output := logBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	st := statusStyle
	if m.warning {
		st = warningStyle
	}
	status := st.Render(m.status) + helpStyle.Render("  enter: ask • esc: quit")
	return header + "\n\n" + output + "\n" + input + "\n" + status
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	logBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
