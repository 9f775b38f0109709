// Package preview shows a one-off summary of the watched page in the
// terminal. Nothing is stored or sent.
package preview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/roomwatch/internal/model"
)

// Timeout bounds the whole fetch/extract/summarize step.
const Timeout = 2 * time.Minute

// ErrCancelled is returned when the user quits while the report is loading.
var ErrCancelled = errors.New("cancelled")

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			MarginBottom(1)

	vacancyBadge = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("28")) // green

	noVacancyBadge = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	roomStyle = lipgloss.NewStyle().
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

type reportMsg struct {
	report model.Report
	err    error
}

type previewModel struct {
	url      string
	loadFn   func(ctx context.Context) (model.Report, error)
	spinner  spinner.Model
	viewport viewport.Model

	report  model.Report
	err     error
	loading bool
	ready   bool
	width   int
	height  int
}

func newModel(url string, loadFn func(ctx context.Context) (model.Report, error)) previewModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("33"))),
	)
	return previewModel{url: url, loadFn: loadFn, spinner: s, loading: true}
}

func (m previewModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m previewModel) load() tea.Cmd {
	loadFn := m.loadFn
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), Timeout)
		defer cancel()
		report, err := loadFn(ctx)
		return reportMsg{report: report, err: err}
	}
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportMsg:
		m.loading = false
		m.report = msg.report
		m.err = msg.err
		if m.err != nil {
			return m, tea.Quit
		}
		m.refresh()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if m.loading {
				m.err = ErrCancelled
			}
			return m, tea.Quit
		}
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// refresh sizes the viewport once both the report and the window are known.
func (m *previewModel) refresh() {
	if m.loading || m.width == 0 {
		return
	}
	w, h := m.width-2, m.height-2
	if !m.ready {
		m.viewport = viewport.New(w, h)
		m.ready = true
	} else {
		m.viewport.Width = w
		m.viewport.Height = h
	}
	m.viewport.SetContent(Render(m.report, m.url, w))
}

func (m previewModel) View() string {
	if m.loading {
		return fmt.Sprintf("%s Checking %s...\n", m.spinner.View(), m.url)
	}
	if m.err != nil {
		return errorStyle.Render("preview failed: "+m.err.Error()) + "\n"
	}
	if !m.ready {
		return ""
	}
	return m.viewport.View() + "\n" + hintStyle.Render("↑/↓ scroll • q quit")
}

// Render formats report for the terminal, wrapping text at width columns.
func Render(report model.Report, url string, width int) string {
	if width <= 0 {
		width = 80
	}
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Room Watch Preview"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(url))
	b.WriteString("\n\n")

	if report.Mode == model.ModeFreeText || report.Vacancy == nil {
		b.WriteString(wrap.Render(report.Text))
		b.WriteString("\n")
		return b.String()
	}

	v := report.Vacancy
	if v.HasVacancies {
		b.WriteString(vacancyBadge.Render(fmt.Sprintf("%d VACANCIES", v.VacancyCount)))
	} else {
		b.WriteString(noVacancyBadge.Render("NO VACANCIES"))
	}
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(wrap.Render(v.Summary))
	b.WriteString("\n")

	if len(v.Rooms) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Rooms"))
		b.WriteString("\n")
		for _, r := range v.Rooms {
			b.WriteString("  ")
			b.WriteString(roomStyle.Render(r.Room))
			if r.Details != "" {
				b.WriteString("  ")
				b.WriteString(mutedStyle.Render(r.Details))
			}
			b.WriteString("\n")
		}
	}

	if v.Notes != "" {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Notes"))
		b.WriteString("\n")
		b.WriteString(wrap.Render(v.Notes))
		b.WriteString("\n")
	}
	return b.String()
}

// Run shows a spinner while loadFn runs, then the rendered report in a
// scrollable view until the user quits.
func Run(url string, loadFn func(ctx context.Context) (model.Report, error)) (model.Report, error) {
	p := tea.NewProgram(newModel(url, loadFn), tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return model.Report{}, err
	}
	final := result.(previewModel)
	return final.report, final.err
}
