package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/neri/toyscript-wasm/compiler"
)

var explainModes = []compiler.ExplainMode{
	compiler.ExplainAST,
	compiler.ExplainTypes,
	compiler.ExplainTIR,
	compiler.ExplainWasm,
}

// runExplain prints a single explain dump, or pages through all four
// in an interactive terminal UI when --interactive is set and stdout
// is a real terminal.
func runExplain(fileName string, r *compiler.Result, mode compiler.ExplainMode, interactive bool) {
	if !interactive {
		if mode == "" {
			mode = compiler.ExplainTIR
		}
		fmt.Println(r.Explain(mode))
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		for _, m := range explainModes {
			fmt.Printf("=== %s ===\n%s\n", m, r.Explain(m))
		}
		return
	}

	p := tea.NewProgram(newExplainModel(fileName, r), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "toycompile: %v\n", err)
		os.Exit(1)
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#98FB98"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type explainModel struct {
	fileName string
	result   *compiler.Result
	tab      int
	vp       viewport.Model
	ready    bool
}

func newExplainModel(fileName string, r *compiler.Result) *explainModel {
	return &explainModel{fileName: fileName, result: r}
}

func (m *explainModel) Init() tea.Cmd { return nil }

func (m *explainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 3
		footerHeight := 2
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.vp.SetContent(m.result.Explain(explainModes[m.tab]))
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - headerHeight - footerHeight
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % len(explainModes)
			m.vp.SetContent(m.result.Explain(explainModes[m.tab]))
			m.vp.GotoTop()
		case "shift+tab", "left", "h":
			m.tab = (m.tab - 1 + len(explainModes)) % len(explainModes)
			m.vp.SetContent(m.result.Explain(explainModes[m.tab]))
			m.vp.GotoTop()
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *explainModel) View() string {
	if !m.ready {
		return "loading..."
	}

	var tabs string
	for i, mode := range explainModes {
		style := tabStyle
		if i == m.tab {
			style = activeTabStyle
		}
		tabs += style.Render(string(mode)) + "  "
	}

	header := titleStyle.Render(m.fileName) + "  " + tabs
	footer := helpStyle.Render("tab/shift+tab switch • ↑/↓ scroll • q quit")
	return header + "\n\n" + m.vp.View() + "\n" + footer
}
