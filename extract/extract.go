// Package extract is the boundary to the text-extraction collaborator
// that turns uploaded documents into raw text.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat reports a document format this service cannot
// convert to text.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Text extracts raw text from an uploaded document. Plain-text documents
// are read directly; binary formats need the external conversion service
// and yield a described ErrUnsupportedFormat when it is not deployed.
func Text(r io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".txt", ".text", ".md":
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("failed to read document: %w", err)
		}
		if len(bytes.TrimSpace(data)) == 0 {
			return "", errors.New("document contains no extractable text")
		}
		return string(data), nil

	case ".pdf", ".doc", ".docx":
		return "", fmt.Errorf("%w: %s requires the document conversion service", ErrUnsupportedFormat, ext)

	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}
