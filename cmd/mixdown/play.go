package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mixdown/mixin"
)

var (
	accentColor = lipgloss.Color("#8B5CF6")
	okColor     = lipgloss.Color("#10B981")
	errColor    = lipgloss.Color("#EF4444")
	mutedColor  = lipgloss.Color("#6B7280")
	keyColor    = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	resultStyle = lipgloss.NewStyle().Foreground(okColor)
	errorStyle  = lipgloss.NewStyle().Foreground(errColor)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	headerStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true).Padding(0, 1)
	hintStyle   = lipgloss.NewStyle().Foreground(keyColor)
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type playModel struct {
	textInput   textinput.Model
	composer    *mixin.Composer
	target      *mixin.Target
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	width       int
	height      int
	showHelp    bool
	showVars    bool
	quitting    bool
	initialized bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	CtrlC key.Binding
	CtrlD key.Binding
	CtrlL key.Binding
	CtrlV key.Binding
	CtrlK key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous command"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next command"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "execute"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	CtrlD: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "quit"),
	),
	CtrlL: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	CtrlV: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("ctrl+v", "toggle props"),
	),
	CtrlK: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "toggle help"),
	),
}

func newPlayModel() playModel {
	ti := textinput.New()
	ti.Placeholder = "set a property or mix a plan..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = "mix> "

	return playModel{
		textInput:  ti,
		composer:   mixin.NewComposer(mixin.Config{}),
		target:     mixin.NewTarget(),
		history:    make([]historyEntry, 0),
		cmdHistory: make([]string, 0),
		historyIdx: -1,
	}
}

func (m playModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.CtrlC), key.Matches(msg, keys.CtrlD):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.CtrlL):
			m.history = make([]historyEntry, 0)
			return m, nil

		case key.Matches(msg, keys.CtrlV):
			m.showVars = !m.showVars
			return m, nil

		case key.Matches(msg, keys.CtrlK):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, keys.Up):
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Enter):
			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}

			if strings.HasPrefix(input, ":") {
				var cmd tea.Cmd
				m, cmd = m.handleCommand(input)
				m.textInput.SetValue("")
				m.historyIdx = -1
				return m, cmd
			}

			output, isErr := m.evaluate(input)
			m.history = append(m.history, historyEntry{
				input:  input,
				output: output,
				isErr:  isErr,
			})
			m.cmdHistory = append(m.cmdHistory, input)
			m.textInput.SetValue("")
			m.historyIdx = -1
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m playModel) handleCommand(input string) (playModel, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = make([]historyEntry, 0)
	case ":props", ":p", ":vars", ":v":
		m.showVars = !m.showVars
	case ":reset", ":r":
		m.target = mixin.NewTarget()
		m.history = append(m.history, historyEntry{
			input:  input,
			output: "Target reset",
		})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{
			input:  input,
			output: fmt.Sprintf("Unknown command: %s", cmd),
			isErr:  true,
		})
	}
	return m, nil
}

// evaluate handles one playground input: `name = value` sets a property,
// `get name` reads one, `mix <plan.toml>` composes a plan onto the target,
// `merge <json>` composes a JSON object as a static mixin.
func (m *playModel) evaluate(input string) (string, bool) {
	switch {
	case strings.HasPrefix(input, "mix "):
		path := strings.TrimSpace(strings.TrimPrefix(input, "mix "))
		if path == "" {
			return "mix: plan path required", true
		}
		plan, err := mixin.LoadPlan(path)
		if err != nil {
			return err.Error(), true
		}
		if err := m.composer.Compose(context.Background(), m.target, plan.Source(), mixin.Args{}); err != nil {
			return err.Error(), true
		}
		return "applied " + strings.Join(plan.Names(), ", "), false

	case strings.HasPrefix(input, "merge "):
		raw := strings.TrimSpace(strings.TrimPrefix(input, "merge "))
		props, err := mixin.ParseProps([]byte(raw))
		if err != nil {
			return err.Error(), true
		}
		src := mixin.Providers(mixin.Static(props))
		if err := m.composer.Compose(context.Background(), m.target, src, mixin.Args{}); err != nil {
			return err.Error(), true
		}
		return fmt.Sprintf("merged %d properties", len(props)), false

	case strings.HasPrefix(input, "get "):
		name := strings.TrimSpace(strings.TrimPrefix(input, "get "))
		val, ok := m.target.Get(name)
		if !ok {
			return fmt.Sprintf("no property %q", name), true
		}
		return val.String(), false

	default:
		name, raw, found := strings.Cut(input, "=")
		name = strings.TrimSpace(name)
		raw = strings.TrimSpace(raw)
		if !found || strings.HasPrefix(raw, "=") {
			return "expected `name = value`, `get name`, `mix <plan.toml>`, or `merge <json>`", true
		}
		if !isValidIdentifier(name) {
			return fmt.Sprintf("invalid property name %q", name), true
		}
		val := parseLiteral(raw)
		m.target.Set(name, val)
		return fmt.Sprintf("%s = %s", name, val.String()), false
	}
}

func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_') {
				return false
			}
		} else {
			if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_') {
				return false
			}
		}
	}
	return true
}

func (m playModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	header := headerStyle.Render("mixdown playground")
	b.WriteString(header + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", min(m.width-2, 60))) + "\n\n")

	reservedLines := 8
	if m.showHelp {
		reservedLines += 10
	}
	if m.showVars {
		reservedLines += m.target.Len() + 3
	}
	availableHeight := m.height - reservedLines

	historyStart := 0
	if len(m.history) > availableHeight {
		historyStart = len(m.history) - availableHeight
	}

	for i := historyStart; i < len(m.history); i++ {
		entry := m.history[i]
		if entry.input != "" {
			b.WriteString(mutedStyle.Render("  › ") + entry.input + "\n")
		}
		if entry.isErr {
			b.WriteString("  " + errorStyle.Render("✗ "+entry.output) + "\n")
		} else {
			b.WriteString("  " + resultStyle.Render("→ "+entry.output) + "\n")
		}
		b.WriteString("\n")
	}

	if m.showVars {
		b.WriteString(renderPropsPanel(m.target))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(renderHelpPanel())
		b.WriteString("\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")

	footer := hintStyle.Render("ctrl+k") + mutedStyle.Render(" help  ") +
		hintStyle.Render("ctrl+v") + mutedStyle.Render(" props  ") +
		hintStyle.Render("ctrl+l") + mutedStyle.Render(" clear  ") +
		hintStyle.Render("ctrl+c") + mutedStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func renderPropsPanel(target *mixin.Target) string {
	if target.Len() == 0 {
		return panelStyle.Render(mutedStyle.Render("Empty property table"))
	}

	nameStyle := lipgloss.NewStyle().Foreground(keyColor)
	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Properties"))
	for _, name := range target.Keys() {
		val, _ := target.Get(name)
		lines = append(lines, fmt.Sprintf("  %s = %s", nameStyle.Render(name), val.String()))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"name = v", "Set a target property"},
		{"get name", "Read a target property"},
		{"mix path", "Compose a TOML plan onto the target"},
		{"merge {}", "Compose a JSON object onto the target"},
		{"↑/↓", "Navigate command history"},
		{":props", "Toggle property panel"},
		{":clear", "Clear history"},
		{":reset", "Reset the target"},
		{":quit", "Exit"},
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Help"))
	for _, h := range help {
		lines = append(lines, fmt.Sprintf("  %s  %s",
			hintStyle.Render(fmt.Sprintf("%-9s", h.key)),
			mutedStyle.Render(h.desc)))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func playCommand(args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	planPath := fs.String("plan", "", "compose a plan file before starting")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m := newPlayModel()
	if *planPath != "" {
		plan, err := mixin.LoadPlan(*planPath)
		if err != nil {
			return err
		}
		if err := m.composer.Compose(context.Background(), m.target, plan.Source(), mixin.Args{}); err != nil {
			return fmt.Errorf("compose failed: %w", err)
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
