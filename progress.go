package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/metcalfc/mdtoc/internal/batch"
)

var (
	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)
)

const maxBarWidth = 40

type resultMsg batch.FileResult

type doneMsg struct{}

type model struct {
	label    string
	total    int
	done     int
	failed   int
	last     string
	spinner  spinner.Model
	bar      progress.Model
	quitting bool
}

func newModel(label string, total int) model {
	return model{
		label:   label,
		total:   total,
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(spinnerStyle)),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(maxBarWidth)),
	}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		m.done++
		m.last = msg.Path
		if msg.Action == batch.ActionFailed {
			m.failed++
		}
		return m, nil

	case doneMsg:
		m.quitting = true
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.bar.Width = min(maxBarWidth, max(10, msg.Width/3))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) percent() float64 {
	if m.total == 0 {
		return 1
	}
	return float64(m.done) / float64(m.total)
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.spinner.View())
	sb.WriteString(" ")
	sb.WriteString(m.label)
	sb.WriteString(" ")
	sb.WriteString(m.bar.ViewAs(m.percent()))

	status := fmt.Sprintf("%d/%d", m.done, m.total)
	if m.failed > 0 {
		status += failStyle.Render(fmt.Sprintf(" %d failed", m.failed))
	}
	if m.last != "" {
		status += " " + filepath.Base(m.last)
	}
	sb.WriteString(statusStyle.Render(status))
	sb.WriteString("\n")
	return sb.String()
}

// progressUI drives the model from batch callbacks on another goroutine.
type progressUI struct {
	program *tea.Program
	done    chan struct{}
}

func newProgress(label string, total int, w io.Writer) *progressUI {
	return &progressUI{
		program: tea.NewProgram(newModel(label, total),
			tea.WithOutput(w),
			tea.WithInput(nil),
			tea.WithoutSignalHandler()),
		done: make(chan struct{}),
	}
}

func (p *progressUI) Start() {
	go func() {
		defer close(p.done)
		_, _ = p.program.Run()
	}()
}

// Send reports one finished file. It is safe to call from any goroutine.
func (p *progressUI) Send(r batch.FileResult) {
	p.program.Send(resultMsg(r))
}

// Finish stops the display and waits for the terminal to be restored.
func (p *progressUI) Finish() {
	p.program.Send(doneMsg{})
	<-p.done
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
