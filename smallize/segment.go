package smallize

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultSegmentSizeMB is used when only a file name is given.
	DefaultSegmentSizeMB = 50

	bytesPerMB = 1024 * 1024
)

var validate = validator.New()

// SegmentSpec is the requested size of each part.
type SegmentSpec struct {
	SizeMB float64 `validate:"gt=0"`
	Bytes  int64   `validate:"gt=0"`
}

// NewSegmentSpec converts a size in MB to bytes, rounding down to the
// nearest byte. Sizes beyond the int64 range are clamped, no file can be
// that large anyway.
func NewSegmentSpec(sizeMB float64) (SegmentSpec, error) {
	if math.IsNaN(sizeMB) || math.IsInf(sizeMB, 0) {
		return SegmentSpec{}, NewInvalidSizeError(strconv.FormatFloat(sizeMB, 'g', -1, 64))
	}

	spec := SegmentSpec{SizeMB: sizeMB}
	bytes := math.Floor(sizeMB * bytesPerMB)
	if bytes >= math.MaxInt64 {
		spec.Bytes = math.MaxInt64
	} else {
		spec.Bytes = int64(bytes)
	}

	if sizeMB > 0 && spec.Bytes < 1 {
		return SegmentSpec{}, ErrInvalidSize.
			WithMessage("segment size is smaller than one byte").
			WithDetail("sizeMB", sizeMB)
	}
	if err := spec.Validate(); err != nil {
		return SegmentSpec{}, err
	}
	return spec, nil
}

// ParseSegmentSize parses user input such as "50" or "0.5" as a size in MB.
func ParseSegmentSize(input string) (SegmentSpec, error) {
	trimmed := strings.TrimSpace(input)
	sizeMB, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return SegmentSpec{}, ErrInvalidSize.
			WithDetail("input", input).
			WithCause(err)
	}
	spec, err := NewSegmentSpec(sizeMB)
	if err != nil {
		var sizeErr *SmallizeError
		if errors.As(err, &sizeErr) {
			return SegmentSpec{}, sizeErr.WithDetail("input", input)
		}
		return SegmentSpec{}, NewInvalidSizeError(input)
	}
	return spec, nil
}

// Validate checks that both the MB and byte sizes are positive.
func (s SegmentSpec) Validate() error {
	if err := validate.Struct(s); err != nil {
		return ErrInvalidSize.
			WithDetail("sizeMB", s.SizeMB).
			WithCause(err)
	}
	return nil
}
