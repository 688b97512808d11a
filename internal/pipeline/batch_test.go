package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/docrisk/docrisk/internal/config"
	"github.com/docrisk/docrisk/internal/model"
)

// writeTextDocument writes a one-page text document and returns its path.
func writeTextDocument(t *testing.T, dir, name, text string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBatchProcessor(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	analyzer := NewAnalyzer(cfg, nil)

	dir := t.TempDir()
	paths := []string{
		writeTextDocument(t, dir, "a.txt", "a penalty of $250,000 applies on breach"),
		writeTextDocument(t, dir, "b.txt", "routine meeting notes without concerns"),
		writeTextDocument(t, dir, "c.txt", "unlimited liability and a $5M indemnify clause"),
	}

	var mu sync.Mutex
	var seen []string

	bp := NewBatchProcessor(analyzer,
		WithBatchConcurrency(2),
		WithResultCallback(func(r *model.AnalysisResult) {
			mu.Lock()
			seen = append(seen, r.DocumentName)
			mu.Unlock()
		}),
	)

	results, err := bp.ProcessBatch(context.Background(), paths)
	if err != nil {
		t.Fatalf("ProcessBatch() error = %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	// Results keep input order regardless of completion order.
	for i, path := range paths {
		if results[i] == nil {
			t.Fatalf("results[%d] is nil", i)
		}
		if results[i].DocumentName != path {
			t.Errorf("results[%d].DocumentName = %q, want %q", i, results[i].DocumentName, path)
		}
	}

	if results[1].OverallRisk >= results[2].OverallRisk {
		t.Errorf("benign document scored %v, risky document %v; want benign lower",
			results[1].OverallRisk, results[2].OverallRisk)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 3 {
		t.Errorf("callback invoked %d times, want 3", len(seen))
	}
}

func TestBatchProcessorStopsOnError(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	analyzer := NewAnalyzer(cfg, nil)

	dir := t.TempDir()
	paths := []string{
		writeTextDocument(t, dir, "ok.txt", "fine"),
		filepath.Join(dir, "missing.txt"),
	}

	bp := NewBatchProcessor(analyzer, WithBatchConcurrency(1))

	if _, err := bp.ProcessBatch(context.Background(), paths); err == nil {
		t.Error("ProcessBatch() expected error for missing document")
	}
}
