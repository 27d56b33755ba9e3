package smallize

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SourceFile is a validated regular file that can be split.
type SourceFile struct {
	Path string
	Size int64
}

// OpenSource stats path and checks that it names a regular file.
func OpenSource(path string) (*SourceFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewNotFoundError(path, err)
		}
		return nil, NewReadError(path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, NewNotAFileError(path)
	}

	return &SourceFile{
		Path: path,
		Size: info.Size(),
	}, nil
}

// Dir returns the directory containing the source file.
func (s *SourceFile) Dir() string {
	return filepath.Dir(s.Path)
}

// Stem returns the base name without its final extension.
func (s *SourceFile) Stem() string {
	base := filepath.Base(s.Path)
	return strings.TrimSuffix(base, s.Ext())
}

// Ext returns the final extension of the base name, including the dot.
// Dotfiles such as ".bashrc" have no extension.
func (s *SourceFile) Ext() string {
	base := filepath.Base(s.Path)
	ext := filepath.Ext(base)
	if ext == base {
		return ""
	}
	return ext
}
