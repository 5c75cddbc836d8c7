// Package output provides formatted terminal output utilities.
// It includes colors, headers and other CLI display helpers.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	// Colors and styles
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan)
	gray   = color.New(color.FgHiBlack)
	bold   = color.New(color.Bold)

	// Stdout is the output writer for normal output (can be overridden for testing).
	Stdout io.Writer = os.Stdout
	// Stderr is the output writer for error output (can be overridden for testing).
	Stderr io.Writer = os.Stderr

	// Disable colors if not TTY or NO_COLOR is set
	_ = func() bool {
		disable := os.Getenv("NO_COLOR") != "" || !isTerminal(os.Stdout)
		if disable {
			color.NoColor = true
		}
		return disable
	}()
)

// Successf prints a success message with a checkmark (to stderr)
// Example: ✓ Key imported into 17 regions
func Successf(format string, a ...any) {
	_, _ = fmt.Fprintf(Stderr, green.Sprint("✓")+" "+format+"\n", a...)
}

// Infof prints an informational message with an arrow (to stderr)
// Example: → Using profile default
func Infof(format string, a ...any) {
	_, _ = fmt.Fprintf(Stderr, cyan.Sprint("→")+" "+format+"\n", a...)
}

// Warningf prints a warning message with a warning symbol (to stderr)
// Example: ⚠ Could not resolve caller identity
func Warningf(format string, a ...any) {
	_, _ = fmt.Fprintf(Stderr, yellow.Sprint("⚠")+" "+format+"\n", a...)
}

// Errorf prints an error message with an X symbol (to stderr)
// Example: ✗ Action 'nuke' not recognized.
func Errorf(format string, a ...any) {
	_, _ = fmt.Fprintf(Stderr, red.Sprint("✗")+" "+format+"\n", a...)
}

// Header opens a verbose section on stderr: a blank line, the bold title and a rule
// as wide as the title.
func Header(title string) {
	_, _ = fmt.Fprintf(Stderr, "\n%s\n%s\n", bold.Sprint(title), gray.Sprint(strings.Repeat("─", len([]rune(title)))))
}

// KeyValue prints one indented "key: value" detail under a Header.
func KeyValue(key, value string) {
	_, _ = fmt.Fprintf(Stderr, "  %s: %s\n", gray.Sprint(key), value)
}

// List prints items one per line, indented under the preceding KeyValue.
func List(items []string) {
	for _, item := range items {
		_, _ = fmt.Fprintf(Stderr, "    %s %s\n", cyan.Sprint("-"), item)
	}
}

// Bold renders text in bold when colors are enabled.
func Bold(text string) string {
	return bold.Sprint(text)
}

// Green renders text in green when colors are enabled.
func Green(text string) string {
	return green.Sprint(text)
}

// Red renders text in red when colors are enabled.
func Red(text string) string {
	return red.Sprint(text)
}

// isTerminal checks if the writer is a terminal
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}
