package source

import (
	"fmt"
	"os"
	"strings"

	"github.com/docrisk/docrisk/internal/model"
)

// TextFileSource loads a document from a single plain text file.
// Form feed characters split the text into pages; a file without form feeds
// is a one-page document. Pages carry no images, so analysis of such a
// document rests on the text channel alone.
type TextFileSource struct {
	path string
}

// NewTextFileSource creates a source reading from the given text file.
func NewTextFileSource(path string) *TextFileSource {
	return &TextFileSource{path: path}
}

// Pages loads and splits the file.
// A file that is empty or whitespace-only returns ErrDocumentUnreadable.
func (s *TextFileSource) Pages() ([]model.Page, error) {
	raw, err := os.ReadFile(s.path) //nolint:gosec // user-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("read text file: %w", err)
	}

	text := string(raw)
	if strings.TrimSpace(text) == "" {
		return nil, ErrDocumentUnreadable
	}

	chunks := strings.Split(text, "\f")
	pages := make([]model.Page, 0, len(chunks))
	for i, chunk := range chunks {
		pages = append(pages, model.Page{
			Index:      i + 1,
			Text:       chunk,
			SourcePath: s.path,
		})
	}

	return pages, nil
}
