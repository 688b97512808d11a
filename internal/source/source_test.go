package source

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writePagePNG encodes a small grayscale PNG with one dark pixel and writes
// it into dir under the given name.
func writePagePNG(t *testing.T, dir, name string) {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.SetGray(1, 1, color.Gray{Y: 0})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestDirectorySource(t *testing.T) {
	t.Parallel()

	t.Run("loads images with text sidecars in page order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writePagePNG(t, dir, "page-002.png")
		writePagePNG(t, dir, "page-001.png")
		if err := os.WriteFile(filepath.Join(dir, "page-001.txt"), []byte("first page"), 0o600); err != nil {
			t.Fatal(err)
		}

		pages, err := NewDirectorySource(dir).Pages()
		if err != nil {
			t.Fatalf("Pages() error = %v", err)
		}

		if len(pages) != 2 {
			t.Fatalf("got %d pages, want 2", len(pages))
		}
		if pages[0].Index != 1 || pages[1].Index != 2 {
			t.Errorf("page indexes = %d, %d, want 1, 2", pages[0].Index, pages[1].Index)
		}
		if pages[0].Text != "first page" {
			t.Errorf("page 1 text = %q, want %q", pages[0].Text, "first page")
		}
		if pages[1].Text != "" {
			t.Errorf("page 2 text = %q, want empty", pages[1].Text)
		}
		if pages[0].Image.Empty() {
			t.Error("page 1 image is empty")
		}
		// The encoded dark pixel survives the grayscale conversion.
		if got := pages[0].Image.At(1, 1); got != 0 {
			t.Errorf("pixel (1,1) = %d, want 0", got)
		}
		if got := pages[0].Image.At(0, 0); got != 255 {
			t.Errorf("pixel (0,0) = %d, want 255", got)
		}
	})

	t.Run("text-only page gets no image", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "page-001.txt"), []byte("text only"), 0o600); err != nil {
			t.Fatal(err)
		}

		pages, err := NewDirectorySource(dir).Pages()
		if err != nil {
			t.Fatalf("Pages() error = %v", err)
		}
		if len(pages) != 1 {
			t.Fatalf("got %d pages, want 1", len(pages))
		}
		if !pages[0].Image.Empty() {
			t.Error("expected empty image for text-only page")
		}
	})

	t.Run("corrupt image degrades to text-only page", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "page-001.png"), []byte("not a png"), 0o600); err != nil {
			t.Fatal(err)
		}

		pages, err := NewDirectorySource(dir).Pages()
		if err != nil {
			t.Fatalf("Pages() error = %v", err)
		}
		if len(pages) != 1 {
			t.Fatalf("got %d pages, want 1", len(pages))
		}
		if !pages[0].Image.Empty() {
			t.Error("expected empty image for corrupt page image")
		}
	})

	t.Run("unrelated files are ignored", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writePagePNG(t, dir, "page-001.png")
		if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("notes"), 0o600); err != nil {
			t.Fatal(err)
		}

		pages, err := NewDirectorySource(dir).Pages()
		if err != nil {
			t.Fatalf("Pages() error = %v", err)
		}
		if len(pages) != 1 {
			t.Errorf("got %d pages, want 1", len(pages))
		}
	})

	t.Run("empty directory is unreadable", func(t *testing.T) {
		t.Parallel()

		_, err := NewDirectorySource(t.TempDir()).Pages()
		if !errors.Is(err, ErrDocumentUnreadable) {
			t.Errorf("Pages() error = %v, want ErrDocumentUnreadable", err)
		}
	})
}

func TestTextFileSource(t *testing.T) {
	t.Parallel()

	t.Run("form feeds split pages", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "contract.txt")
		if err := os.WriteFile(path, []byte("page one\fpage two\fpage three"), 0o600); err != nil {
			t.Fatal(err)
		}

		pages, err := NewTextFileSource(path).Pages()
		if err != nil {
			t.Fatalf("Pages() error = %v", err)
		}
		if len(pages) != 3 {
			t.Fatalf("got %d pages, want 3", len(pages))
		}
		if pages[1].Text != "page two" {
			t.Errorf("page 2 text = %q, want %q", pages[1].Text, "page two")
		}
		if !pages[0].Image.Empty() {
			t.Error("text pages should carry no image")
		}
	})

	t.Run("file without form feeds is one page", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "contract.txt")
		if err := os.WriteFile(path, []byte("a single page"), 0o600); err != nil {
			t.Fatal(err)
		}

		pages, err := NewTextFileSource(path).Pages()
		if err != nil {
			t.Fatalf("Pages() error = %v", err)
		}
		if len(pages) != 1 {
			t.Errorf("got %d pages, want 1", len(pages))
		}
	})

	t.Run("empty file is unreadable", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "empty.txt")
		if err := os.WriteFile(path, nil, 0o600); err != nil {
			t.Fatal(err)
		}

		_, err := NewTextFileSource(path).Pages()
		if !errors.Is(err, ErrDocumentUnreadable) {
			t.Errorf("Pages() error = %v, want ErrDocumentUnreadable", err)
		}
	})
}

func TestFromPath(t *testing.T) {
	t.Parallel()

	t.Run("directory yields DirectorySource", func(t *testing.T) {
		t.Parallel()

		src, err := FromPath(t.TempDir())
		if err != nil {
			t.Fatalf("FromPath() error = %v", err)
		}
		if _, ok := src.(*DirectorySource); !ok {
			t.Errorf("FromPath() = %T, want *DirectorySource", src)
		}
	})

	t.Run("txt file yields TextFileSource", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.txt")
		if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}

		src, err := FromPath(path)
		if err != nil {
			t.Fatalf("FromPath() error = %v", err)
		}
		if _, ok := src.(*TextFileSource); !ok {
			t.Errorf("FromPath() = %T, want *TextFileSource", src)
		}
	})

	t.Run("other file types are unsupported", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.pdf")
		if err := os.WriteFile(path, []byte("%PDF"), 0o600); err != nil {
			t.Fatal(err)
		}

		_, err := FromPath(path)
		if !errors.Is(err, ErrUnsupportedInput) {
			t.Errorf("FromPath() error = %v, want ErrUnsupportedInput", err)
		}
	})

	t.Run("missing path errors", func(t *testing.T) {
		t.Parallel()

		if _, err := FromPath(filepath.Join(t.TempDir(), "missing")); err == nil {
			t.Error("FromPath() expected error for missing path")
		}
	})
}
