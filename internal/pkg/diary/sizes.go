package diary

import (
	"errors"
	"fmt"
)

// SizeOption pairs a label shown on the page with the pixel size sent upstream.
type SizeOption struct {
	Label string
	Size  string
}

var ScreenSizes = []SizeOption{
	{Label: "스마트폰 (세로)", Size: "1024x1792"},
	{Label: "컴퓨터 (가로)", Size: "1792x1024"},
	{Label: "정사각형", Size: "1024x1024"},
}

// APISizes are the sizes accepted by POST /generate-image.
var APISizes = []string{"1024x1024", "512x512", "768x1024"}

const DefaultAPISize = "512x512"

var ErrUnsupportedSize = errors.New("unsupported image size")

// SizeForLabel maps a page label to its pixel size. Unknown labels are square.
func SizeForLabel(label string) string {
	for _, opt := range ScreenSizes {
		if opt.Label == label {
			return opt.Size
		}
	}
	return "1024x1024"
}

// ResolveAPISize returns size if it is one of APISizes, DefaultAPISize when
// size is empty, and ErrUnsupportedSize otherwise.
func ResolveAPISize(size string) (string, error) {
	if size == "" {
		return DefaultAPISize, nil
	}
	for _, s := range APISizes {
		if s == size {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q (one of %v)", ErrUnsupportedSize, size, APISizes)
}
