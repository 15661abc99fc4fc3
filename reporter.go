package main

import (
	"fmt"
	"io"

	lipgloss "github.com/charmbracelet/lipgloss"
)

// Reporter receives the per-run console lines.
type Reporter interface {
	Total(n int)
	Converted(relPath, from, to string)
	Skipped(path string)
	Failed(path string, err error)
}

var (
	colorGreen  lipgloss.TerminalColor = lipgloss.Color("#3fb950")
	colorYellow lipgloss.TerminalColor = lipgloss.Color("#d29922")
	colorRed    lipgloss.TerminalColor = lipgloss.Color("#f85149")
	colorAccent lipgloss.TerminalColor = lipgloss.Color("#58a6ff")

	styleOk     = lipgloss.NewStyle().Foreground(colorGreen)
	styleSkip   = lipgloss.NewStyle().Foreground(colorYellow)
	styleFail   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	styleHeader = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
)

// ConsoleReporter writes one line per event to w.
type ConsoleReporter struct {
	w     io.Writer
	color bool
}

func NewConsoleReporter(w io.Writer, color bool) *ConsoleReporter {
	return &ConsoleReporter{w: w, color: color}
}

func (r *ConsoleReporter) render(style lipgloss.Style, s string) string {
	if !r.color {
		return s
	}
	return style.Render(s)
}

func (r *ConsoleReporter) Total(n int) {
	fmt.Fprintln(r.w, r.render(styleHeader, fmt.Sprintf("Converting %d files to UTF-8...", n)))
}

func (r *ConsoleReporter) Converted(relPath, from, to string) {
	fmt.Fprintf(r.w, "%s %s (%s → %s)\n", r.render(styleOk, "[ok]"), relPath, from, to)
}

func (r *ConsoleReporter) Skipped(path string) {
	fmt.Fprintf(r.w, "%s undecodable: %s\n", r.render(styleSkip, "[skip]"), path)
}

func (r *ConsoleReporter) Failed(path string, err error) {
	fmt.Fprintf(r.w, "%s %s: %v\n", r.render(styleFail, "[fail]"), path, err)
}
