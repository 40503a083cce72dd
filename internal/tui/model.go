// Package tui is the interactive analysis page: a text input, a language
// selector, a trigger, a loading indicator and an output pane.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/valpere/nyaya/internal/controller"
	"github.com/valpere/nyaya/internal/lang"
)

const (
	defaultWidth = 80
	inputHeight  = 8
)

// Submitter is satisfied by *controller.Controller.
type Submitter interface {
	Submit(ctx context.Context, rawText, targetLang string) (controller.Outcome, error)
}

type Model struct {
	ctx       context.Context
	submitter Submitter

	input   textarea.Model
	spinner spinner.Model
	langs   []lang.Option
	langIdx int

	busy   bool
	label  string
	loader bool
	output string
	notice string

	lastOutcome controller.Outcome
	width       int
	styles      styles
}

// New builds the page with selected preselected. A selected value outside
// the known options is added as the first entry.
func New(ctx context.Context, submitter Submitter, selected string) Model {
	ta := textarea.New()
	ta.Placeholder = "Paste the legal document to analyse..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(defaultWidth - 4)
	ta.SetHeight(inputHeight)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accent)

	langs := lang.Options()
	idx := lang.Index(selected)
	if idx < 0 {
		if selected == "" {
			idx = lang.Index(lang.Default)
		} else {
			langs = append([]lang.Option{{Code: selected, Name: lang.Label(selected)}}, langs...)
			idx = 0
		}
	}

	return Model{
		ctx:       ctx,
		submitter: submitter,
		input:     ta,
		spinner:   sp,
		langs:     langs,
		langIdx:   idx,
		label:     controller.IdleLabel,
		width:     defaultWidth,
		styles:    defaultStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// SelectedLang returns the code currently chosen in the selector.
func (m Model) SelectedLang() string {
	return m.langs[m.langIdx].Code
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.SetWidth(max(msg.Width-4, 20))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case busyMsg:
		m.busy = true
		m.label = controller.BusyLabel
		m.loader = true
		m.output = ""
		m.input.Blur()
		return m, m.spinner.Tick

	case idleMsg:
		m.busy = false
		m.label = controller.IdleLabel
		m.loader = false
		return m, m.input.Focus()

	case outputMsg:
		m.output = msg.text
		return m, nil

	case noticeMsg:
		m.notice = msg.text
		return m, nil

	case settledMsg:
		m.lastOutcome = msg.outcome
		return m, nil

	case spinner.TickMsg:
		if !m.loader {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// A notice blocks the page until acknowledged.
	if m.notice != "" {
		m.notice = ""
		return m, nil
	}

	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "ctrl+s":
		if m.busy {
			return m, nil
		}
		return m, m.submit()
	case "tab":
		m.langIdx = (m.langIdx + 1) % len(m.langs)
		return m, nil
	case "shift+tab":
		m.langIdx = (m.langIdx - 1 + len(m.langs)) % len(m.langs)
		return m, nil
	}

	if m.busy {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() tea.Cmd {
	ctx, s := m.ctx, m.submitter
	text, code := m.input.Value(), m.SelectedLang()

	return func() tea.Msg {
		outcome, err := s.Submit(ctx, text, code)
		return settledMsg{outcome: outcome, err: err}
	}
}

func (m Model) View() string {
	st := m.styles
	inner := max(m.width-4, 20)

	title := st.title.Render("Nyaya-Setu") + st.label.Render("  legal document analysis")

	input := st.input.Render(m.input.View())

	opt := m.langs[m.langIdx]
	selector := st.label.Render("Language: ") + fmt.Sprintf("‹ %s (%s) ›", opt.Name, opt.Code)

	trigger := st.trigger.Render(m.label)
	if m.busy {
		trigger = st.inactive.Render(m.label)
	}
	if m.loader {
		trigger = lipgloss.JoinHorizontal(lipgloss.Center, trigger, "  ", m.spinner.View())
	}

	output := st.output.Width(inner).Render(m.output)

	help := st.help.Render("ctrl+s run • tab/shift+tab language • esc quit")

	page := lipgloss.JoinVertical(lipgloss.Left,
		title,
		input,
		selector,
		"",
		trigger,
		output,
		help,
	)

	if m.notice != "" {
		notice := st.notice.Render(m.notice + "\n\n" + st.help.Render("press any key"))
		return lipgloss.JoinVertical(lipgloss.Left, page, "", notice)
	}
	return page
}
