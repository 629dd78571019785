package cmdlog

import (
	"fmt"
	"os"
	"strings"

	"github.com/jwalton/gchalk"
)

// Logger loggs pretty stuff to the console
type Logger struct {
	indention int
}

// New creates a new Logger
func New() *Logger {
	return &Logger{}
}

// helper for indention
func (l *Logger) println(a string) {
	fmt.Println(strings.Repeat(" ", l.indention) + a)
}

// Headline prints a bold cyan line
func (l *Logger) Headline(s string) {
	fmt.Println(gchalk.WithCyan().Bold(s))
}

// Info prints a "normal" line
func (l *Logger) Info(s string) {
	l.println(s)
}

// Log prints a dimmed line
func (l *Logger) Log(s string) {
	l.println(gchalk.Gray(s))
}

// Warn will print a warning
func (l *Logger) Warn(s string) {
	l.println(gchalk.WithYellow().Bold("! " + s))
}

// Fail will print the given message and then exit 1
func (l *Logger) Fail(s string) {
	l.println(gchalk.WithRed().Bold("✗ " + s))
	os.Exit(1)
}

// Indent changes the indention level of following lines
func (l *Logger) Indent(by int) {
	l.indention += by
	if l.indention < 0 {
		l.indention = 0
	}
}
