package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/matzehuels/efxvdb/pkg/errors"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorText)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorFaint)
)

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// =============================================================================
// TopListModel - interactive top module selection
// =============================================================================

// TopListModel is the bubbletea model for choosing a top module. Typing
// narrows the list to module names containing the typed text.
type TopListModel struct {
	Modules  []string
	Filter   string
	Cursor   int // index into Visible()
	Offset   int
	Height   int
	Selected string
}

// NewTopListModel creates a picker over modules in design order.
func NewTopListModel(modules []string) TopListModel {
	return TopListModel{Modules: modules, Height: 15}
}

// Visible returns the modules matching Filter, in design order.
func (m TopListModel) Visible() []string {
	if m.Filter == "" {
		return m.Modules
	}
	var out []string
	for _, name := range m.Modules {
		if strings.Contains(name, m.Filter) {
			out = append(out, name)
		}
	}
	return out
}

func (m TopListModel) Init() tea.Cmd { return nil }

func (m TopListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if v := m.Visible(); len(v) > 0 {
				m.Selected = v[m.Cursor]
			}
			return m, tea.Quit
		case tea.KeyUp:
			m.move(-1)
		case tea.KeyDown:
			m.move(1)
		case tea.KeyBackspace:
			if n := len(m.Filter); n > 0 {
				m.Filter = m.Filter[:n-1]
				m.Cursor, m.Offset = 0, 0
			}
		case tea.KeyRunes:
			m.Filter += string(msg.Runes)
			m.Cursor, m.Offset = 0, 0
		}
	}
	return m, nil
}

func (m *TopListModel) move(delta int) {
	n := len(m.Visible())
	if n == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), n-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m TopListModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Select Top Module"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("no module is marked top  type to filter  ↑/↓ move  ⏎ select  esc quit"))
	b.WriteString("\n")
	if m.Filter != "" {
		b.WriteString(listNormalStyle.Render("filter: " + m.Filter))
	}
	b.WriteString("\n")

	visible := m.Visible()
	end := min(m.Offset+m.Height, len(visible))
	for i := m.Offset; i < end; i++ {
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + visible[i]))
		} else {
			b.WriteString(listNormalStyle.Render("  " + visible[i]))
		}
		b.WriteString("\n")
	}
	if len(visible) == 0 {
		b.WriteString(listDimStyle.Render("  no match"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(visible)), len(visible))))
	return b.String()
}

// pickTop runs TopListModel on the terminal. It is a pipeline.TopPicker.
func pickTop(ctx context.Context, modules []string) (string, error) {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return "", errors.New(errors.ErrCodeTopModuleUnresolved, "--pick-top needs a terminal; use --top instead")
	}
	final, err := tea.NewProgram(NewTopListModel(modules), tea.WithContext(ctx)).Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(TopListModel)
	if !ok || m.Selected == "" {
		return "", errors.New(errors.ErrCodeTopModuleUnresolved, "no top module selected")
	}
	return m.Selected, nil
}
