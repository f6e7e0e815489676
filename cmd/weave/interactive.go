package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ilweave/hashcache/metadata"
	"github.com/ilweave/hashcache/weaver"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	wovenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	skippedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	failedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateList modelState = iota
	stateDetail
)

type interactiveModel struct {
	err      error
	module   *metadata.Module
	report   *weaver.Report
	filename string
	cfg      weaver.Config
	filter   textinput.Model
	visible  []int // indices into report.Outcomes matching the filter
	selected int
	state    modelState
}

type wovenMsg struct {
	err    error
	module *metadata.Module
	report *weaver.Report
}

func newInteractiveModel(filename string, cfg weaver.Config) *interactiveModel {
	filter := textinput.New()
	filter.Placeholder = "filter types"
	filter.Prompt = "/ "
	filter.Width = 30
	return &interactiveModel{
		filename: filename,
		cfg:      cfg,
		filter:   filter,
		state:    stateList,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.weaveModule
}

func (m *interactiveModel) weaveModule() tea.Msg {
	data, err := os.ReadFile(m.filename)
	if err != nil {
		return wovenMsg{err: err}
	}
	mod, err := metadata.DecodeModule(data)
	if err != nil {
		return wovenMsg{err: err}
	}
	report := weaver.Weave(mod, m.cfg)
	return wovenMsg{module: mod, report: report}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			// The filter owns printable keys in the list view.
			if m.state == stateDetail {
				m.state = stateList
				return m, nil
			}

		case "up":
			if m.state == stateList && m.selected > 0 {
				m.selected--
			}

		case "down":
			if m.state == stateList && m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "enter":
			if m.state == stateList && len(m.visible) > 0 {
				m.state = stateDetail
			}

		case "esc":
			switch m.state {
			case stateDetail:
				m.state = stateList
			case stateList:
				if m.filter.Value() != "" {
					m.filter.SetValue("")
					m.refilter()
				}
			}
		}

	case wovenMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.module = msg.module
		m.report = msg.report
		m.filter.Focus()
		m.refilter()
	}

	if m.state == stateList {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.refilter()
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) refilter() {
	if m.report == nil {
		return
	}
	needle := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for i, out := range m.report.Outcomes {
		if needle == "" || strings.Contains(strings.ToLower(out.Type), needle) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = len(m.visible) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return failedStyle.Render("Error: "+m.err.Error()) + "\n" +
			helpStyle.Render("ctrl+c: quit") + "\n"
	}
	if m.report == nil {
		return "Weaving " + m.filename + "...\n"
	}
	if m.state == stateDetail {
		return m.detailView()
	}
	return m.listView()
}

func (m *interactiveModel) listView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s — woven %d, skipped %d, failed %d",
		m.report.Module, m.report.Woven(), m.report.Skipped(), m.report.Failed())))
	b.WriteString("\n\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	for i, idx := range m.visible {
		out := m.report.Outcomes[idx]
		line := fmt.Sprintf("%-8s %s", out.Status, out.Type)
		switch {
		case i == m.selected:
			line = selectedStyle.Render(line)
		case out.Status == weaver.StatusWoven:
			line = wovenStyle.Render(line)
		case out.Status == weaver.StatusSkipped:
			line = skippedStyle.Render(line)
		default:
			line = failedStyle.Render(line)
		}
		b.WriteString("  " + line + "\n")
	}
	if len(m.visible) == 0 {
		b.WriteString(helpStyle.Render("  no matching types") + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("↑/↓: select  enter: details  esc: clear filter  ctrl+c: quit") + "\n")
	return b.String()
}

func (m *interactiveModel) detailView() string {
	out := m.report.Outcomes[m.visible[m.selected]]
	var b strings.Builder
	b.WriteString(titleStyle.Render(out.Type))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  Status:       %s\n", out.Status))
	if out.Status == weaver.StatusWoven {
		b.WriteString(fmt.Sprintf("  Constructors: %d\n", out.Constructors))
		b.WriteString(fmt.Sprintf("  Injections:   %d\n", out.Injections))
	}
	if out.Err != nil {
		b.WriteString("  Reason:       " + failedStyle.Render(out.Err.Error()) + "\n")
	}

	if t := m.module.TypeNamed(out.Type); t != nil {
		b.WriteString(fmt.Sprintf("\n  %s %s, %d field(s), %d method(s)\n",
			t.Kind, t.Name, len(t.Fields), len(t.Methods)))
		for _, f := range t.Fields {
			b.WriteString(fmt.Sprintf("    field  %-20s %s\n", f.Name, f.Type.Name))
		}
		for _, meth := range t.Methods {
			size := 0
			if meth.Body != nil {
				size = len(meth.Body.Instrs)
			}
			b.WriteString(fmt.Sprintf("    method %-20s %d instruction(s)\n", meth.Name, size))
		}
	}

	b.WriteString("\n" + helpStyle.Render("esc/q: back") + "\n")
	return b.String()
}

func runInteractive(filename string, cfg weaver.Config) error {
	p := tea.NewProgram(newInteractiveModel(filename, cfg))
	_, err := p.Run()
	return err
}
