package smallize

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenSource(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(file, []byte("hello world"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	src, err := OpenSource(file)
	if err != nil {
		t.Fatalf("OpenSource() unexpected error: %v", err)
	}
	if src.Size != 11 {
		t.Errorf("Size = %d, want 11", src.Size)
	}
	if src.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", src.Dir(), dir)
	}

	if _, err := OpenSource(filepath.Join(dir, "missing.bin")); !errors.Is(err, ErrNotFound) {
		t.Errorf("OpenSource(missing) error = %v, want ErrNotFound", err)
	}

	if _, err := OpenSource(dir); !errors.Is(err, ErrNotAFile) {
		t.Errorf("OpenSource(dir) error = %v, want ErrNotAFile", err)
	}
}

func TestSourceFile_StemAndExt(t *testing.T) {
	tests := []struct {
		path     string
		wantStem string
		wantExt  string
	}{
		{"movie.mp4", "movie", ".mp4"},
		{filepath.Join("a", "b", "archive.tar.gz"), "archive.tar", ".gz"},
		{"Makefile", "Makefile", ""},
		{".bashrc", ".bashrc", ""},
		{"trailing.", "trailing", "."},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			src := &SourceFile{Path: tt.path}
			if got := src.Stem(); got != tt.wantStem {
				t.Errorf("Stem() = %q, want %q", got, tt.wantStem)
			}
			if got := src.Ext(); got != tt.wantExt {
				t.Errorf("Ext() = %q, want %q", got, tt.wantExt)
			}
		})
	}
}
