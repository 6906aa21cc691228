package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// stdout receives human-facing status lines. Machine-readable output
// (hex dumps, TOML, paths) goes to the command's own writer instead.
var stdout io.Writer = os.Stdout

// =============================================================================
// Palette and styles
// =============================================================================

var (
	colorAccent = lipgloss.Color("36")  // teal
	colorOK     = lipgloss.Color("35")  // green
	colorWarn   = lipgloss.Color("220") // amber
	colorFail   = lipgloss.Color("167") // soft red
	colorLink   = lipgloss.Color("75")  // light blue
	colorText   = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleDim     = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue   = lipgloss.NewStyle().Foreground(colorText)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorAccent) // counts and hex dumps
	StyleSuccess = lipgloss.NewStyle().Foreground(colorOK)
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleLabel       = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorLink)
)

// =============================================================================
// Status lines
// =============================================================================

type statusKind struct {
	icon  string
	style lipgloss.Style
}

var (
	statusOK   = statusKind{"✓", lipgloss.NewStyle().Foreground(colorOK)}
	statusFail = statusKind{"✗", lipgloss.NewStyle().Foreground(colorFail)}
	statusWarn = statusKind{"!", lipgloss.NewStyle().Foreground(colorWarn)}
	statusInfo = statusKind{"›", lipgloss.NewStyle().Foreground(colorMuted)}
)

func status(k statusKind, msg string) {
	fmt.Fprintln(stdout, k.style.Render(k.icon)+" "+msg)
}

func printSuccess(format string, args ...any) { status(statusOK, fmt.Sprintf(format, args...)) }
func printError(format string, args ...any)   { status(statusFail, fmt.Sprintf(format, args...)) }
func printInfo(format string, args ...any)    { status(statusInfo, fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	status(statusWarn, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints "  → path".
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleLabel.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep prints a suggested follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Export summary
// =============================================================================

// exportStats is the one-line summary printed under each exported file.
type exportStats struct {
	modules, wires, cells, bytes int
	fileID                       string
	cached                       bool
}

// formatStats renders s as "2 modules · 5 wires · 2 cells · 450 bytes · id … · fresh".
// Zero counts are omitted; the byte count and status never are.
func formatStats(s exportStats) string {
	var parts []string
	for _, c := range []struct {
		n    int
		noun string
	}{{s.modules, "module"}, {s.wires, "wire"}, {s.cells, "cell"}} {
		if c.n > 0 {
			parts = append(parts, StyleDim.Render(plural(c.n, c.noun)))
		}
	}
	parts = append(parts, StyleDim.Render(fmt.Sprintf("%d bytes", s.bytes)))
	if s.fileID != "" {
		parts = append(parts, StyleDim.Render("id "+s.fileID))
	}
	if s.cached {
		parts = append(parts, StyleSuccess.Render("cached"))
	} else {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorMuted).Render("fresh"))
	}
	return "  " + strings.Join(parts, StyleDim.Render(" · "))
}

func printStats(s exportStats) {
	fmt.Fprintln(stdout, formatStats(s))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
