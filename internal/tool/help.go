// SPDX-License-Identifier: MPL-2.0

package tool

import (
	"fmt"
	"io"
	"strings"

	"gotopts-cli/pkg/declaration"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	badgeRequired = "*"
	badgeSingle   = "§"
	badgeMulti    = "+"
)

type (
	helpStyles struct {
		colors   bool
		title    lipgloss.Style
		version  lipgloss.Style
		required lipgloss.Style
		arity    lipgloss.Style
		bottom   lipgloss.Style
	}

	helpRow struct {
		label       string
		description string
	}
)

func (t *Tool) styles(w io.Writer) helpStyles {
	r := lipgloss.NewRenderer(w)
	if t.settings.Colors {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return helpStyles{
		colors:   t.settings.Colors,
		title:    r.NewStyle().Bold(true),
		version:  r.NewStyle().Foreground(lipgloss.Color("8")),
		required: r.NewStyle().Foreground(lipgloss.Color("1")),
		arity:    r.NewStyle().Foreground(lipgloss.Color("6")),
		bottom:   r.NewStyle().Faint(true),
	}
}

// paint renders s line by line so lipgloss does not pad multi-line text.
func (s helpStyles) paint(style lipgloss.Style, text string) string {
	if !s.colors || text == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func (t *Tool) titleLine() string {
	return t.settings.Name + " - " + t.settings.Title
}

func (t *Tool) writeVersion(w io.Writer) {
	fmt.Fprintln(w, t.titleLine())
	fmt.Fprintln(w, t.settings.Version)
}

// writeHelp renders the tool's help: title and version, usage, the argument and
// option tables, then the bottom help text.
func (t *Tool) writeHelp(w io.Writer) {
	st := t.styles(w)

	header := st.paint(st.title, t.titleLine())
	if t.settings.Version != "" {
		header += " " + st.paint(st.version, t.settings.Version)
	}
	fmt.Fprintln(w, header)
	fmt.Fprintln(w)

	args := t.argumentRows(st)
	opts := t.optionRows(st)

	usage := "Usage: " + t.settings.Name
	if len(args) > 0 {
		usage += " [arguments]"
	}
	if len(opts) > 0 {
		usage += " [options]"
	}
	fmt.Fprintln(w, usage)

	writeSection(w, "Arguments:", args)
	writeSection(w, "Options:", opts)

	if t.settings.BottomHelpText != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, st.paint(st.bottom, strings.TrimRight(t.settings.BottomHelpText, "\n")))
	}
}

func (t *Tool) argumentRows(st helpStyles) []helpRow {
	rows := make([]helpRow, 0, len(t.settings.Arguments))
	for _, d := range t.settings.Arguments {
		desc := d.Description
		if t.settings.Badges && d.Required {
			desc += st.paint(st.required, badgeRequired)
		}
		rows = append(rows, helpRow{label: d.Label(), description: desc})
	}
	return rows
}

func (t *Tool) optionRows(st helpStyles) []helpRow {
	rows := make([]helpRow, 0, len(t.settings.Options)+3)
	for _, d := range t.settings.Options {
		desc := d.Description
		if t.settings.Badges {
			switch d.Arity {
			case declaration.AritySingleValue:
				desc += st.paint(st.arity, badgeSingle)
			case declaration.ArityMultiValue:
				desc += st.paint(st.arity, badgeMulti)
			}
		}
		rows = append(rows, helpRow{label: d.Label(), description: desc})
	}
	if t.settings.HelpOption != "" {
		rows = append(rows, helpRow{label: t.settings.HelpOption, description: "Show help information"})
	}
	if t.settings.Version != "" {
		rows = append(rows, helpRow{label: "--" + versionFlagName, description: "Show version information"})
	}
	if t.settings.OptionsAndArgumentsOption {
		rows = append(rows, helpRow{label: "--" + optsArgsFlagName, description: "Show options and arguments and exit."})
	}
	return rows
}

func writeSection(w io.Writer, heading string, rows []helpRow) {
	if len(rows) == 0 {
		return
	}
	width := 0
	for _, r := range rows {
		width = max(width, len(r.label))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, heading)
	for _, r := range rows {
		fmt.Fprintf(w, "  %-*s  %s\n", width, r.label, r.description)
	}
}

// usageLine builds the cobra Use string including argument placeholders.
func usageLine(name string, args []*declaration.Declaration) string {
	parts := []string{name}
	for _, arg := range args {
		if arg.Required {
			parts = append(parts, fmt.Sprintf("<%s>", arg.Name))
		} else {
			parts = append(parts, fmt.Sprintf("[%s]", arg.Name))
		}
	}
	return strings.Join(parts, " ")
}

// writeOptionsAndArguments dumps every bound input with its values.
func writeOptionsAndArguments(w io.Writer, inv *Invocation) {
	fmt.Fprintln(w, "Options:")
	for _, in := range inv.Options {
		fmt.Fprintln(w, "  "+describeInput(in))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	for _, in := range inv.Arguments {
		fmt.Fprintln(w, "  "+describeInput(in))
	}
}

func describeInput(in *declaration.Input) string {
	d := in.Declaration()
	value := "(null)"
	if resolved := in.Resolved(); len(resolved) > 0 {
		value = fmt.Sprintf("%q", resolved[0])
	}
	var given string
	if raw := in.Raw(); len(raw) > 0 {
		given = " [" + strings.Join(raw, ", ") + "]"
	}
	return fmt.Sprintf("%s: %s%s, HasValue: %t, ValueType: %s, Kind: %s",
		d.Label(), value, given, len(in.Raw()) > 0, d.ValueType, d.InputKind())
}
