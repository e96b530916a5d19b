package source

import (
	"fmt"
	"io"
)

// TextExtractor handles files that contain nothing but notation.
type TextExtractor struct{}

func (e *TextExtractor) Extract(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filename, err)
	}
	return normalize(string(data)), nil
}
