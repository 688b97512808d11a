package source

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/docrisk/docrisk/internal/model"
)

// pageFileRe matches per-page files: "page-001.png", "page-12.txt".
var pageFileRe = regexp.MustCompile(`^page-([0-9]+)\.(png|jpg|jpeg|txt)$`)

// DirectorySource loads a document from a directory of per-page files.
// Each page is an image named page-NNN.png (or .jpg/.jpeg) with an optional
// text sidecar page-NNN.txt. Page numbers need not be contiguous; pages are
// ordered by number.
type DirectorySource struct {
	dir string
}

// NewDirectorySource creates a source reading from the given directory.
func NewDirectorySource(dir string) *DirectorySource {
	return &DirectorySource{dir: dir}
}

// Pages loads all pages found in the directory.
// A page with only a text sidecar gets a blank image; a page with only an
// image gets empty text. A directory with no page files at all returns
// ErrDocumentUnreadable.
func (s *DirectorySource) Pages() ([]model.Page, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read page directory: %w", err)
	}

	type pageFiles struct {
		imagePath string
		textPath  string
	}
	byNumber := make(map[int]*pageFiles)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := pageFileRe.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil || num <= 0 {
			continue
		}

		pf := byNumber[num]
		if pf == nil {
			pf = &pageFiles{}
			byNumber[num] = pf
		}
		path := filepath.Join(s.dir, entry.Name())
		if m[2] == "txt" {
			pf.textPath = path
		} else {
			pf.imagePath = path
		}
	}

	if len(byNumber) == 0 {
		return nil, ErrDocumentUnreadable
	}

	numbers := make([]int, 0, len(byNumber))
	for num := range byNumber {
		numbers = append(numbers, num)
	}
	sort.Ints(numbers)

	pages := make([]model.Page, 0, len(numbers))
	for i, num := range numbers {
		pf := byNumber[num]
		page := model.Page{Index: i + 1}

		if pf.imagePath != "" {
			page.SourcePath = pf.imagePath
			raw, err := os.ReadFile(pf.imagePath) //nolint:gosec // path comes from directory listing
			if err != nil {
				return nil, fmt.Errorf("read page image %s: %w", pf.imagePath, err)
			}
			page.ImageRaw = raw
			page.Image, err = decodeGrid(raw)
			if err != nil {
				// A corrupt image degrades that page to text-only rather
				// than failing the whole document.
				page.Image = nil
				page.ImageRaw = nil
			}
		} else {
			page.SourcePath = pf.textPath
		}

		if pf.textPath != "" {
			text, err := os.ReadFile(pf.textPath) //nolint:gosec // path comes from directory listing
			if err != nil {
				return nil, fmt.Errorf("read page text %s: %w", pf.textPath, err)
			}
			page.Text = string(text)
		}

		pages = append(pages, page)
	}

	return pages, nil
}

// decodeGrid decodes an encoded image into a grayscale grid.
func decodeGrid(raw []byte) (*model.ImageGrid, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode page image: %w", err)
	}
	return toGrid(img), nil
}
