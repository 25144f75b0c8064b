// Package ui renders devices, targets, and resolved runners for the terminal.
package ui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/tami5/xbase/internal/device"
	"github.com/tami5/xbase/internal/runner"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Bright cyan
			Bold(true)

	EntryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")). // Soft green
			Bold(true)

	RunnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	UDIDStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // Dim gray

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // Coral red
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")). // Warm yellow
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

type Formatter struct {
	colored bool
}

func NewFormatter(colored bool) *Formatter {
	return &Formatter{colored: colored}
}

// FormatHeader renders a section heading.
func (f *Formatter) FormatHeader(text string) string {
	if f.colored {
		return HeaderStyle.Render(text)
	}
	return text
}

// FormatEntries renders resolved entries as an indented table, one block per
// entry with its runners underneath.
func (f *Formatter) FormatEntries(entries []runner.TargetRunnerEntry) string {
	var sb strings.Builder

	for _, entry := range entries {
		if f.colored {
			sb.WriteString(EntryStyle.Render(entry.Name))
			sb.WriteString(DimStyle.Render(fmt.Sprintf("  (%s / %s)", entry.Target, entry.Platform)))
		} else {
			sb.WriteString(fmt.Sprintf("%s  (%s / %s)", entry.Name, entry.Target, entry.Platform))
		}
		sb.WriteString("\n")

		if len(entry.Runners) == 0 {
			line := "  no compatible device"
			if f.colored {
				line = "  " + WarningStyle.Render("no compatible device")
			}
			sb.WriteString(line + "\n")
		}

		for _, r := range entry.Runners {
			if f.colored {
				sb.WriteString("  " + RunnerStyle.Render(r.Name) + "  " + UDIDStyle.Render(r.UDID))
			} else {
				sb.WriteString(fmt.Sprintf("  %s  %s", r.Name, r.UDID))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// FormatDevices renders the device inventory.
func (f *Formatter) FormatDevices(devices []device.Device) string {
	var sb strings.Builder

	for _, d := range devices {
		state := d.State
		if !d.IsAvailable {
			state = "unavailable"
		}
		if f.colored {
			sb.WriteString(RunnerStyle.Render(d.Name))
			sb.WriteString("  " + UDIDStyle.Render(d.UDID))
			sb.WriteString("  " + DimStyle.Render(d.RuntimeName+" "+state))
		} else {
			sb.WriteString(fmt.Sprintf("%s  %s  %s %s", d.Name, d.UDID, d.RuntimeName, state))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatError renders an error line.
func (f *Formatter) FormatError(err error) string {
	if f.colored {
		return ErrorStyle.Render("error: ") + err.Error()
	}
	return "error: " + err.Error()
}

// FormatJSON renders any value as indented JSON for scripting consumers.
func FormatJSON(v interface{}) (string, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format output: %w", err)
	}
	return string(out), nil
}

// EntriesMarkdown builds a markdown document for resolved entries.
func EntriesMarkdown(projectName string, entries []runner.TargetRunnerEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s runners\n\n", projectName)

	for _, entry := range entries {
		fmt.Fprintf(&sb, "## %s\n\n", entry.Name)
		if len(entry.Runners) == 0 {
			sb.WriteString("_no compatible device_\n\n")
			continue
		}
		sb.WriteString("| Device | UDID |\n|---|---|\n")
		for _, r := range entry.Runners {
			fmt.Fprintf(&sb, "| %s | `%s` |\n", r.Name, r.UDID)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderMarkdown renders a markdown document for the terminal. Falls back to
// the raw document when the renderer cannot be built.
func RenderMarkdown(doc string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return doc
	}

	rendered, err := renderer.Render(doc)
	if err != nil {
		return doc
	}

	return strings.TrimSpace(rendered) + "\n"
}
