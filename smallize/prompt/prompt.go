// Package prompt implements the interactive split loop: list the working
// directory, ask for a file and a segment size, split, repeat.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"

	"github.com/flaneur2020/smallize/smallize/console"
	"github.com/flaneur2020/smallize/smallize/logger"
)

const (
	Banner     = "Welcome to Smallize: Segment large files into smaller ones"
	exitWord   = "exit"
	filePrompt = `Enter a file to split (or type "exit" to stop): `
	sizePrompt = "Enter segment size for file %s (in MB): "
)

// SplitFunc splits path using the raw segment size typed by the user and
// reports the outcome itself. The returned error is only logged; the loop
// keeps going.
type SplitFunc func(ctx context.Context, path string, sizeInput string) error

// Session owns the input reader and console for one interactive run.
type Session struct {
	in      *bufio.Reader
	console *console.Console
	dir     string
	split   SplitFunc
}

// NewSession creates a session reading lines from in and listing dir.
func NewSession(in io.Reader, c *console.Console, dir string, split SplitFunc) *Session {
	return &Session{
		in:      bufio.NewReader(in),
		console: c,
		dir:     dir,
		split:   split,
	}
}

// Run loops until the user types "exit", the input is exhausted or ctx is
// cancelled. Split failures do not stop the loop.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.console.Clear()
		s.console.Successf("[bold]%s", Banner)
		s.console.Println("")
		s.listFiles()

		name, err := s.ask(filePrompt)
		if err != nil {
			return endOfInput(err)
		}
		if strings.EqualFold(name, exitWord) {
			return nil
		}
		if name == "" {
			continue
		}

		sizeInput, err := s.ask(fmt.Sprintf(sizePrompt, name))
		if err != nil {
			return endOfInput(err)
		}

		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.dir, path)
		}
		if err := s.split(ctx, path, sizeInput); err != nil {
			logger.Debug("interactive split of %s failed: %v", path, err)
		}
		s.console.Println("")
	}
}

// ask prints the question and returns the trimmed answer.
func (s *Session) ask(question string) (string, error) {
	fmt.Fprint(s.console.Writer(), question)
	line, err := s.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// endOfInput turns EOF into a clean exit.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Session) listFiles() {
	s.console.Successf("[bold]Files:")

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		logger.Warn("cannot list %s: %v", s.dir, err)
		s.console.Errorf("Cannot list %s", s.dir)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			s.console.Infof("  %s%c", entry.Name(), filepath.Separator)
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.Mode().IsRegular() {
			s.console.Infof("  %s", entry.Name())
			continue
		}
		s.console.Infof("  %-40s %10s  %s", entry.Name(), humanize.IBytes(uint64(info.Size())), detectType(filepath.Join(s.dir, entry.Name())))
	}
	s.console.Println("")
}

func detectType(path string) string {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "unknown"
	}
	return mtype.String()
}
