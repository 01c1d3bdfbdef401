package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/reedlang/irgen"
	"github.com/reedlang/irgen/layout"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	offsetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	toggleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	target   irgen.Target
	report   *report
	inputs   []textinput.Model
	focusIdx int
	strategy layout.Strategy
	kind     layout.Kind
}

const (
	inputFields = iota
	inputDynSize
	inputDynAlign
	numInputs
)

func newInteractiveModel(target irgen.Target) *interactiveModel {
	m := &interactiveModel{
		target:   target,
		strategy: layout.Optimal,
		kind:     layout.NonHeapObject,
	}

	m.inputs = make([]textinput.Model, numInputs)

	fields := textinput.New()
	fields.Placeholder = "u8,u64,u32,dyn"
	fields.Prompt = "fields: "
	fields.Width = 48
	fields.Focus()
	m.inputs[inputFields] = fields

	dynSize := textinput.New()
	dynSize.Placeholder = "8"
	dynSize.Prompt = "dyn size: "
	dynSize.Width = 12
	m.inputs[inputDynSize] = dynSize

	dynAlign := textinput.New()
	dynAlign.Placeholder = "4"
	dynAlign.Prompt = "dyn align: "
	dynAlign.Width = 12
	m.inputs[inputDynAlign] = dynAlign

	return m
}

type reportMsg struct {
	err    error
	report *report
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab":
			m.inputs[m.focusIdx].Blur()
			m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
			m.inputs[m.focusIdx].Focus()
			return m, nil

		case "ctrl+s":
			if m.strategy == layout.Optimal {
				m.strategy = layout.Universal
			} else {
				m.strategy = layout.Optimal
			}
			return m, m.compute

		case "ctrl+h":
			if m.kind == layout.NonHeapObject {
				m.kind = layout.HeapObject
			} else {
				m.kind = layout.NonHeapObject
			}
			return m, m.compute

		case "enter":
			return m, m.compute
		}

	case reportMsg:
		m.err = msg.err
		m.report = msg.report
		return m, nil
	}

	var cmds []tea.Cmd
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *interactiveModel) compute() tea.Msg {
	spec := strings.TrimSpace(m.inputs[inputFields].Value())
	if spec == "" {
		return reportMsg{}
	}

	fields, err := parseFields(spec, m.target)
	if err != nil {
		return reportMsg{err: err}
	}

	dynSize, err := parseDynValue(m.inputs[inputDynSize].Value(), 8)
	if err != nil {
		return reportMsg{err: err}
	}
	dynAlign, err := parseDynValue(m.inputs[inputDynAlign].Value(), 4)
	if err != nil {
		return reportMsg{err: err}
	}

	r, err := inspect(m.target, m.kind, m.strategy, fields, dynSize, dynAlign)
	if err != nil {
		return reportMsg{err: err}
	}
	return reportMsg{report: r}
}

func parseDynValue(s string, fallback uint32) (uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad value %q: %v", s, err)
	}
	return uint32(v), nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Layout Inspector"))
	b.WriteString(fmt.Sprintf("  ptr %d/%d\n\n", m.target.PointerSize, m.target.PointerAlign))

	b.WriteString(toggleStyle.Render(" "+m.strategy.String()+" ") + " " +
		toggleStyle.Render(" "+m.kind.String()+" ") + "\n\n")

	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	} else if m.report != nil {
		b.WriteString(m.renderReport())
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter compute • tab next field • ctrl+s strategy • ctrl+h heap • esc quit"))
	b.WriteString("\n")

	return b.String()
}

func (m *interactiveModel) renderReport() string {
	r := m.report
	var b strings.Builder

	if r.kind == layout.HeapObject {
		b.WriteString(fmt.Sprintf("  %s %s slot 0\n",
			fieldStyle.Render(fmt.Sprintf("%-10s", "header")),
			offsetStyle.Render(fmt.Sprintf("%-10s", "@0"))))
	}
	for i := range r.elements {
		e := &r.elements[i]
		offsetStr := "runtime"
		if off, ok := e.Offset(); ok {
			offsetStr = fmt.Sprintf("@%d", off)
		}
		slotStr := "no slot"
		if idx, ok := e.StorageIndex(); ok {
			slotStr = fmt.Sprintf("slot %d", idx)
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			fieldStyle.Render(fmt.Sprintf("%-10s", r.fields[i].token)),
			offsetStyle.Render(fmt.Sprintf("%-10s", offsetStr)),
			slotStr))
	}

	b.WriteString("\n")
	if r.known {
		b.WriteString(resultStyle.Render(fmt.Sprintf("size %d, alignment %d", r.size, r.align)))
	} else if r.evaluated {
		b.WriteString(fmt.Sprintf("static prefix %d, alignment %d (static)\n", r.size, r.align))
		b.WriteString(resultStyle.Render(fmt.Sprintf("evaluated size %d, alignment %d", r.runSize, r.runAlign)))
	}
	b.WriteString("\n")

	return b.String()
}

func runInteractive(target irgen.Target) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("interactive mode requires a terminal")
	}
	p := tea.NewProgram(newInteractiveModel(target), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
