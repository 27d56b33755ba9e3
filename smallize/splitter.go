package smallize

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/flaneur2020/smallize/smallize/logger"
)

// ProgressCallback is called while parts are written to report progress
// current: bytes written so far across all parts
// total: source file size
type ProgressCallback func(current int64, total int64)

// SplitOptions carries optional hooks for a split.
type SplitOptions struct {
	// OnPlan is called once the plan is known, before anything is written.
	OnPlan func(plan *OutputPlan)
	// OnPart is called after each part file is fully written.
	OnPart func(part Part)
	// Progress reports cumulative bytes written.
	Progress ProgressCallback
}

// SplitResult describes a completed split.
type SplitResult struct {
	Plan         *OutputPlan
	Paths        []string
	WrittenBytes int64
}

// Splitter cuts a file into fixed-size part files.
type Splitter interface {
	// Split cuts the file at path into parts of spec.Bytes each and writes
	// them under "<stem>_parts" next to the file. A file that already fits
	// in one segment yields an ErrNoSplitNeeded error and no output.
	Split(ctx context.Context, path string, spec SegmentSpec, opts *SplitOptions) (*SplitResult, error)
}

type splitter struct{}

// NewSplitter creates a Splitter that writes parts next to their source file.
func NewSplitter() Splitter {
	return &splitter{}
}

func (s *splitter) Split(ctx context.Context, path string, spec SegmentSpec, opts *SplitOptions) (*SplitResult, error) {
	if opts == nil {
		opts = &SplitOptions{}
	}

	src, err := OpenSource(path)
	if err != nil {
		return nil, err
	}

	plan, err := NewPlan(src, spec)
	if err != nil {
		return nil, err
	}
	logger.Info("splitting %s (%d bytes) into %d parts of %d bytes", src.Path, src.Size, plan.NumParts(), plan.SegmentSize)

	if opts.OnPlan != nil {
		opts.OnPlan(plan)
	}

	// The whole source is held in memory for the duration of the split.
	data, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, NewReadError(src.Path, err)
	}
	if int64(len(data)) != src.Size {
		return nil, NewReadError(src.Path, fmt.Errorf("size changed while reading: stat %d, read %d", src.Size, len(data)))
	}

	if err := os.MkdirAll(plan.Dir, 0755); err != nil {
		return nil, NewWriteError(plan.Dir, err)
	}

	result := &SplitResult{Plan: plan}
	reader := bytes.NewReader(data)

	for _, part := range plan.Parts {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		var progress ProgressCallback
		if opts.Progress != nil {
			written := result.WrittenBytes
			progress = func(current, total int64) {
				opts.Progress(written+current, src.Size)
			}
		}

		section := io.NewSectionReader(reader, part.Offset, part.Length)
		if err := writePart(part, section, progress); err != nil {
			return result, err
		}
		logger.Debug("wrote part %d: %s [%d, %d)", part.Index+1, part.Path, part.Offset, part.Offset+part.Length)

		result.Paths = append(result.Paths, part.Path)
		result.WrittenBytes += part.Length

		if opts.OnPart != nil {
			opts.OnPart(part)
		}
	}

	return result, nil
}

// writePart truncates or creates the part file and copies its range into it.
func writePart(part Part, section *io.SectionReader, progress ProgressCallback) error {
	outFile, err := os.Create(part.Path)
	if err != nil {
		return NewWriteError(part.Path, err)
	}

	var readerToUse io.Reader = section
	if progress != nil {
		readerToUse = &progressReader{
			reader:   section,
			total:    part.Length,
			callback: progress,
		}
	}

	n, err := io.Copy(outFile, readerToUse)
	if err != nil {
		outFile.Close()
		return NewWriteError(part.Path, err)
	}
	if n != part.Length {
		outFile.Close()
		return NewWriteError(part.Path, fmt.Errorf("short write: %d of %d bytes", n, part.Length))
	}

	if err := outFile.Close(); err != nil {
		return NewWriteError(part.Path, err)
	}
	return nil
}

// progressReader wraps an io.Reader to report write progress
type progressReader struct {
	reader   io.Reader
	total    int64
	current  int64
	callback ProgressCallback
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	pr.current += int64(n)
	if pr.callback != nil {
		pr.callback(pr.current, pr.total)
	}
	return n, err
}
