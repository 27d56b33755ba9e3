package smallize

import (
	"path/filepath"
	"testing"
)

// bytesSpec builds a SegmentSpec of exactly n bytes.
func bytesSpec(t *testing.T, n int64) SegmentSpec {
	t.Helper()
	spec, err := NewSegmentSpec(float64(n) / bytesPerMB)
	if err != nil {
		t.Fatalf("NewSegmentSpec(%d bytes) failed: %v", n, err)
	}
	if spec.Bytes != n {
		t.Fatalf("NewSegmentSpec(%d bytes).Bytes = %d", n, spec.Bytes)
	}
	return spec
}

func TestNumParts(t *testing.T) {
	tests := []struct {
		size, seg int64
		want      int
	}{
		{150, 50, 3},
		{120, 50, 3},
		{101, 50, 3},
		{100, 50, 2},
		{51, 50, 2},
		{1, 50, 1},
		{0, 50, 0},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := NumParts(tt.size, tt.seg); got != tt.want {
			t.Errorf("NumParts(%d, %d) = %d, want %d", tt.size, tt.seg, got, tt.want)
		}
	}
}

func TestPartName(t *testing.T) {
	if got := PartName("movie", ".mp4", 0); got != "movie_part1.mp4" {
		t.Errorf("PartName() = %q, want movie_part1.mp4", got)
	}
	if got := PartName("README", "", 11); got != "README_part12" {
		t.Errorf("PartName() = %q, want README_part12", got)
	}
}

func TestNewPlan(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		size        int64
		seg         int64
		wantDir     string
		wantLengths []int64
		wantFirst   string
	}{
		{
			name:        "exact multiple",
			path:        filepath.Join("data", "video.mp4"),
			size:        150,
			seg:         50,
			wantDir:     filepath.Join("data", "video_parts"),
			wantLengths: []int64{50, 50, 50},
			wantFirst:   filepath.Join("data", "video_parts", "video_part1.mp4"),
		},
		{
			name:        "short last part",
			path:        "archive.tar.gz",
			size:        120,
			seg:         50,
			wantDir:     "archive.tar_parts",
			wantLengths: []int64{50, 50, 20},
			wantFirst:   filepath.Join("archive.tar_parts", "archive.tar_part1.gz"),
		},
		{
			name:        "no extension",
			path:        filepath.Join("/srv", "dump"),
			size:        51,
			seg:         50,
			wantDir:     filepath.Join("/srv", "dump_parts"),
			wantLengths: []int64{50, 1},
			wantFirst:   filepath.Join("/srv", "dump_parts", "dump_part1"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &SourceFile{Path: tt.path, Size: tt.size}
			plan, err := NewPlan(src, bytesSpec(t, tt.seg))
			if err != nil {
				t.Fatalf("NewPlan() unexpected error: %v", err)
			}

			if plan.Dir != tt.wantDir {
				t.Errorf("Dir = %q, want %q", plan.Dir, tt.wantDir)
			}
			if plan.NumParts() != len(tt.wantLengths) {
				t.Fatalf("NumParts() = %d, want %d", plan.NumParts(), len(tt.wantLengths))
			}
			if plan.Parts[0].Path != tt.wantFirst {
				t.Errorf("Parts[0].Path = %q, want %q", plan.Parts[0].Path, tt.wantFirst)
			}

			// Ranges must tile [0, size) in order.
			var next int64
			for i, part := range plan.Parts {
				if part.Index != i {
					t.Errorf("Parts[%d].Index = %d", i, part.Index)
				}
				if part.Offset != next {
					t.Errorf("Parts[%d].Offset = %d, want %d", i, part.Offset, next)
				}
				if part.Length != tt.wantLengths[i] {
					t.Errorf("Parts[%d].Length = %d, want %d", i, part.Length, tt.wantLengths[i])
				}
				if part.Length < 1 || part.Length > tt.seg {
					t.Errorf("Parts[%d].Length = %d out of range", i, part.Length)
				}
				next += part.Length
			}
			if next != tt.size {
				t.Errorf("parts cover %d bytes, want %d", next, tt.size)
			}
		})
	}
}

func TestNewPlan_NoSplitNeeded(t *testing.T) {
	for _, size := range []int64{0, 49, 50} {
		src := &SourceFile{Path: "small.txt", Size: size}
		plan, err := NewPlan(src, bytesSpec(t, 50))
		if !IsNoSplitNeeded(err) {
			t.Errorf("NewPlan(size=%d) error = %v, want ErrNoSplitNeeded", size, err)
		}
		if plan != nil {
			t.Errorf("NewPlan(size=%d) plan = %+v, want nil", size, plan)
		}
	}
}
