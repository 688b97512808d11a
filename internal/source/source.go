package source

import (
	"errors"
	"os"
	"strings"

	"github.com/docrisk/docrisk/internal/model"
)

// Package-level sentinel errors returned by sources.
var (
	// ErrDocumentUnreadable is returned when a document yields no pages at
	// all. Callers treat it as a verdict-free analysis, not a crash.
	ErrDocumentUnreadable = errors.New("document unreadable: no pages could be loaded")

	// ErrUnsupportedInput is returned when the input path is neither a page
	// directory nor a text file.
	ErrUnsupportedInput = errors.New("unsupported input: expected a page directory or a .txt file")
)

// PageSource loads the pages of one document.
//
// Design decision: We accept this small interface everywhere instead of
// concrete source types so the pipeline and its tests can feed synthetic
// pages without touching the filesystem.
type PageSource interface {
	// Pages loads all pages in page order. It returns
	// ErrDocumentUnreadable when the document yields no pages.
	Pages() ([]model.Page, error)
}

// FromPath builds the appropriate source for the given path: a
// DirectorySource for directories, a TextFileSource for .txt files.
func FromPath(path string) (PageSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return NewDirectorySource(path), nil
	}
	if strings.HasSuffix(strings.ToLower(path), ".txt") {
		return NewTextFileSource(path), nil
	}

	return nil, ErrUnsupportedInput
}
