// Package report prints operator-facing results and next steps.
package report

import (
	"fmt"
	"io"

	"osuisetup/internal/types"

	"github.com/charmbracelet/lipgloss/v2"
)

// Options controls what the next steps mention
type Options struct {
	Color      bool
	Service    string
	TUICommand string
}

// Printer writes reports to out and failures to errOut
type Printer struct {
	w    io.Writer
	errW io.Writer
	opts Options

	title lipgloss.Style
	label lipgloss.Style
	value lipgloss.Style
	hint  lipgloss.Style
	warn  lipgloss.Style
}

// NewPrinter creates a printer. Failures go to errOut so out only carries
// operator output.
func NewPrinter(out, errOut io.Writer, opts Options) *Printer {
	p := &Printer{
		w:     out,
		errW:  errOut,
		opts:  opts,
		title: lipgloss.NewStyle(),
		label: lipgloss.NewStyle(),
		value: lipgloss.NewStyle(),
		hint:  lipgloss.NewStyle(),
		warn:  lipgloss.NewStyle(),
	}

	if opts.Color {
		p.title = p.title.Bold(true).Foreground(lipgloss.Color("42"))
		p.label = p.label.Foreground(lipgloss.Color("244"))
		p.value = p.value.Bold(true)
		p.hint = p.hint.Foreground(lipgloss.Color("39"))
		p.warn = p.warn.Foreground(lipgloss.Color("214"))
	}
	return p
}

// Success prints a completed patch run and what to do next
func (p *Printer) Success(res *types.PatchResult) {
	if res.Changed {
		p.line(p.title.Render("Daemon configured to use the TUI socket"))
	} else {
		p.line(p.title.Render("Daemon already configured for the TUI socket"))
	}
	p.line("")
	p.field("Config", res.ConfigPath)
	p.field("Backup", res.BackupPath)
	p.field("Previous", res.PreviousOrUnknown())
	p.field(res.Field, res.Current)
	p.field("Editor", res.Editor)
	if res.Editor == "lexical" {
		p.line(p.warn.Render("  Edited by text substitution; check the file is still valid JSON."))
	}
	p.line("")
	p.line(p.title.Render("Next steps"))
	p.line("  1. Start the TUI so it listens on " + p.value.Render(res.Current) + ":")
	p.line("       " + p.hint.Render("sudo "+p.opts.TUICommand))
	p.line("  2. Restart the daemon so it connects to the TUI:")
	p.line("       " + p.hint.Render("sudo systemctl restart "+p.opts.Service))
	p.line("")
	p.line(p.label.Render("To undo: ") + p.hint.Render("sudo cp "+res.BackupPath+" "+res.ConfigPath))
}

// Restored prints the outcome of a restore
func (p *Printer) Restored(path, from, safety string) {
	p.line(p.title.Render("Config restored"))
	p.line("")
	p.field("Config", path)
	p.field("From", from)
	if safety != "" {
		p.field("Saved", safety)
	}
	p.line("")
	p.line("  Restart the daemon to apply: " + p.hint.Render("sudo systemctl restart "+p.opts.Service))
}

// Backups prints the backups of path, newest first
func (p *Printer) Backups(path string, backups []string) {
	if len(backups) == 0 {
		p.line(p.warn.Render("No backups of " + path))
		return
	}
	p.line(p.title.Render(fmt.Sprintf("Backups of %s (%d)", path, len(backups))))
	for _, b := range backups {
		p.line("  " + b)
	}
}

// Failure prints a fatal error
func (p *Printer) Failure(err error) {
	_, _ = fmt.Fprintln(p.errW, p.warn.Render("Error: "+err.Error()))
}

func (p *Printer) field(name, value string) {
	p.line(fmt.Sprintf("  %s %s", p.label.Render(fmt.Sprintf("%-15s", name+":")), p.value.Render(value)))
}

func (p *Printer) line(s string) {
	_, _ = fmt.Fprintln(p.w, s)
}
