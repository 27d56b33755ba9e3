// Package console prints user-facing messages with optional ANSI colors.
//
// Format strings may carry colorstring tags such as "[red]" or
// "[underline]". Tags are expanded before arguments are substituted, so
// brackets inside file names are printed as-is.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/colorstring"
	"golang.org/x/term"
)

const clearScreen = "\033[H\033[2J"

// Console writes colored messages to a single writer.
type Console struct {
	out   io.Writer
	tty   bool
	color colorstring.Colorize
}

// New returns a Console writing to out. Colors are enabled only when out is
// a terminal and noColor is false.
func New(out io.Writer, noColor bool) *Console {
	tty := IsTerminal(out)
	return &Console{
		out: out,
		tty: tty,
		color: colorstring.Colorize{
			Colors:  colorstring.DefaultColors,
			Disable: noColor || !tty,
			Reset:   true,
		},
	}
}

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Writer returns the underlying writer.
func (c *Console) Writer() io.Writer {
	return c.out
}

// Printf expands color tags in format and prints it.
func (c *Console) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, c.color.Color(format), args...)
}

// Println prints a colored line.
func (c *Console) Println(format string, args ...interface{}) {
	c.Printf(format+"\n", args...)
}

func (c *Console) Errorf(format string, args ...interface{}) {
	c.Println("[red]"+format, args...)
}

func (c *Console) Warnf(format string, args ...interface{}) {
	c.Println("[yellow]"+format, args...)
}

func (c *Console) Infof(format string, args ...interface{}) {
	c.Println("[blue]"+format, args...)
}

func (c *Console) Successf(format string, args ...interface{}) {
	c.Println("[green]"+format, args...)
}

// Clear clears the screen. It does nothing when not attached to a terminal.
func (c *Console) Clear() {
	if !c.tty {
		return
	}
	fmt.Fprint(c.out, clearScreen)
}
