package smallize

import (
	"fmt"
	"path/filepath"
)

// Part is one contiguous byte range of the source and the file it goes to.
type Part struct {
	Index  int // 0-based
	Offset int64
	Length int64
	Path   string
}

// OutputPlan lays out every part of a split.
type OutputPlan struct {
	Source      *SourceFile
	SegmentSize int64
	Dir         string
	Parts       []Part
}

// NumParts returns ceil(size / segmentSize).
func NumParts(size, segmentSize int64) int {
	if size <= 0 || segmentSize <= 0 {
		return 0
	}
	return int((size + segmentSize - 1) / segmentSize)
}

// PartName returns "<stem>_part<n><ext>" for the 0-based index.
func PartName(stem, ext string, index int) string {
	return fmt.Sprintf("%s_part%d%s", stem, index+1, ext)
}

// PartsDir returns "<stem>_parts" next to the source file.
func PartsDir(src *SourceFile) string {
	return filepath.Join(src.Dir(), src.Stem()+"_parts")
}

// NewPlan computes the output plan. It returns a NoSplitNeeded error when
// the source already fits in one segment.
func NewPlan(src *SourceFile, spec SegmentSpec) (*OutputPlan, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if src.Size <= spec.Bytes {
		return nil, NewNoSplitNeededError(src.Path, src.Size, spec.Bytes)
	}

	plan := &OutputPlan{
		Source:      src,
		SegmentSize: spec.Bytes,
		Dir:         PartsDir(src),
	}

	stem, ext := src.Stem(), src.Ext()
	n := NumParts(src.Size, spec.Bytes)
	plan.Parts = make([]Part, 0, n)
	for i := 0; i < n; i++ {
		offset := int64(i) * spec.Bytes
		length := spec.Bytes
		if offset+length > src.Size {
			length = src.Size - offset
		}
		plan.Parts = append(plan.Parts, Part{
			Index:  i,
			Offset: offset,
			Length: length,
			Path:   filepath.Join(plan.Dir, PartName(stem, ext, i)),
		})
	}

	return plan, nil
}

// NumParts returns the number of parts in the plan.
func (p *OutputPlan) NumParts() int {
	return len(p.Parts)
}
