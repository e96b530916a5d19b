// Package source pulls argument notation out of the documents it is
// written in.
package source

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Extractor returns the notation text embedded in a document.
type Extractor interface {
	Extract(r io.Reader, filename string) (string, error)
}

// SupportedExtensions lists file extensions that can carry notation.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".logic":    true,
	".arg":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// Options tune the extractors returned by ForFile.
type Options struct {
	FallbackPdftotext bool
}

// ForFile returns the extractor for a filename. Files without an extension
// are read as plain notation.
func ForFile(filename string, opts Options) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case "", ".txt", ".logic", ".arg":
		return &TextExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	case ".pdf":
		return &PDFExtractor{FallbackPdftotext: opts.FallbackPdftotext}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// normalize strips a UTF-8 byte order mark and turns CRLF and lone CR line
// endings into LF.
func normalize(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// joinLines joins blocks with exactly one newline between and after them.
func joinLines(blocks []string) string {
	var b strings.Builder
	for _, block := range blocks {
		block = strings.TrimRight(block, "\n")
		if block == "" {
			continue
		}
		b.WriteString(block)
		b.WriteByte('\n')
	}
	return b.String()
}
