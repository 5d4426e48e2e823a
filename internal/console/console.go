// Package console formats the progress and status lines roleci prints.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"})
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#58A6FF"})
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#D29922"})
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"})
	headerStyle   = lipgloss.NewStyle().Bold(true)
)

// FormatProgressMessage formats a step that is about to run
func FormatProgressMessage(message string) string {
	return progressStyle.Render("□ " + message)
}

// FormatSuccessMessage formats a completed step
func FormatSuccessMessage(message string) string {
	return successStyle.Render("✓ " + message)
}

// FormatInfoMessage formats neutral information
func FormatInfoMessage(message string) string {
	return infoStyle.Render(message)
}

// FormatWarningMessage formats a non-fatal problem
func FormatWarningMessage(message string) string {
	return warningStyle.Render("! " + message)
}

// FormatErrorMessage formats a fatal problem
func FormatErrorMessage(message string) string {
	return errorStyle.Render("✗ " + message)
}

// FormatHeader formats a section title followed by a rule of the same width
func FormatHeader(title string) string {
	return headerStyle.Render(title) + "\n" + strings.Repeat("━", lipgloss.Width(title))
}

// Printer writes formatted lines to an output stream
type Printer struct {
	out io.Writer
}

// NewPrinter creates a printer writing to out
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Progress prints a progress line
func (p *Printer) Progress(format string, args ...interface{}) {
	fmt.Fprintln(p.out, FormatProgressMessage(fmt.Sprintf(format, args...)))
}

// Success prints a success line
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintln(p.out, FormatSuccessMessage(fmt.Sprintf(format, args...)))
}

// Info prints an informational line
func (p *Printer) Info(format string, args ...interface{}) {
	fmt.Fprintln(p.out, FormatInfoMessage(fmt.Sprintf(format, args...)))
}

// Warning prints a warning line
func (p *Printer) Warning(format string, args ...interface{}) {
	fmt.Fprintln(p.out, FormatWarningMessage(fmt.Sprintf(format, args...)))
}

// Println prints an unstyled line
func (p *Printer) Println(args ...interface{}) {
	fmt.Fprintln(p.out, args...)
}
