package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"locextract/internal/extract"
)

func TestRun_EmptyDirectory(t *testing.T) {
	runner := NewRunner(extract.DefaultOptions(), 2)

	result, err := runner.Run(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.TotalFilesProcessed != 0 {
		t.Errorf("TotalFilesProcessed = %d, want 0", result.TotalFilesProcessed)
	}
	if result.TotalTextsFound != 0 {
		t.Errorf("TotalTextsFound = %d, want 0", result.TotalTextsFound)
	}
	if len(result.Chunks) != 0 {
		t.Errorf("got %d chunks, want 0", len(result.Chunks))
	}
	if result.ProcessingTime < 0 {
		t.Errorf("ProcessingTime = %f, want >= 0", result.ProcessingTime)
	}
}

func TestRun_ScanFailureYieldsEmptyResult(t *testing.T) {
	runner := NewRunner(extract.DefaultOptions(), 2)

	// An inaccessible root is a recoverable scan failure: the run carries
	// on with the zero files it accumulated instead of aborting.
	result, err := runner.Run(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.TotalFilesProcessed != 0 {
		t.Errorf("TotalFilesProcessed = %d, want 0", result.TotalFilesProcessed)
	}
	if result.TotalTextsFound != 0 {
		t.Errorf("TotalTextsFound = %d, want 0", result.TotalTextsFound)
	}
	if len(result.Chunks) != 0 {
		t.Errorf("got %d chunks, want 0", len(result.Chunks))
	}
}

func TestRun_CancelledContext(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte(`name: "Hello World"`+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(extract.DefaultOptions(), 2)
	result, err := runner.Run(ctx, root)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
	if result != nil {
		t.Errorf("cancelled run returned a result: %+v", result)
	}
}

func TestRun_ExtractsAndCounts(t *testing.T) {
	root := t.TempDir()

	files := map[string]string{
		"b.txt": `name: "Hello World"` + "\n",
		"a.txt": `<title>First Title</title>` + "\n" + `label = 'Second Label'` + "\n",
		"c.bin": `"ignored entirely"` + "\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	runner := NewRunner(extract.DefaultOptions(), 4)
	result, err := runner.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// c.bin is outside the allow-list and never scanned.
	if result.TotalFilesProcessed != 2 {
		t.Errorf("TotalFilesProcessed = %d, want 2", result.TotalFilesProcessed)
	}
	if result.TotalTextsFound != len(result.Chunks) {
		t.Errorf("TotalTextsFound = %d, chunks = %d", result.TotalTextsFound, len(result.Chunks))
	}
	if len(result.Chunks) == 0 {
		t.Fatal("expected chunks")
	}

	// Files are dispatched in lexical order, so a.txt chunks come first.
	firstFile := filepath.Base(result.Chunks[0].FilePath)
	if firstFile != "a.txt" {
		t.Errorf("first chunk from %q, want a.txt (lexical file order)", firstFile)
	}

	for _, chunk := range result.Chunks {
		if strings.HasSuffix(chunk.FilePath, "c.bin") {
			t.Errorf("chunk extracted from excluded file: %q", chunk.FilePath)
		}
	}
}

func TestRun_ReproducibleOrder(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"z.txt", "m.txt", "a.txt"} {
		content := `text: "content of ` + name + `"` + "\n"
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	runner := NewRunner(extract.DefaultOptions(), 8)

	first, err := runner.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	second, err := runner.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(first.Chunks) != len(second.Chunks) {
		t.Fatalf("runs disagree on chunk count: %d vs %d", len(first.Chunks), len(second.Chunks))
	}
	for i := range first.Chunks {
		if first.Chunks[i] != second.Chunks[i] {
			t.Errorf("chunk %d differs between runs:\n%+v\n%+v", i, first.Chunks[i], second.Chunks[i])
		}
	}
}

func TestRun_UnreadableFileCountedButContributesNothing(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	root := t.TempDir()
	good := filepath.Join(root, "good.txt")
	bad := filepath.Join(root, "locked.txt")
	if err := os.WriteFile(good, []byte(`name: "Readable One"`+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte(`name: "Unreadable One"`+"\n"), 0000); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(extract.DefaultOptions(), 2)
	result, err := runner.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.TotalFilesProcessed != 2 {
		t.Errorf("TotalFilesProcessed = %d, want 2 (unreadable file still counted)", result.TotalFilesProcessed)
	}
	for _, chunk := range result.Chunks {
		if chunk.FilePath == bad {
			t.Errorf("chunk extracted from unreadable file: %+v", chunk)
		}
	}
	if len(result.Chunks) == 0 {
		t.Error("readable file should still contribute chunks")
	}
}

func TestRun_SplitsOversizedChunks(t *testing.T) {
	root := t.TempDir()
	long := strings.Repeat("y", 220)
	content := `"` + long + `"` + "\n"
	if err := os.WriteFile(filepath.Join(root, "long.txt"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	opts := extract.DefaultOptions()
	opts.MaxChunkSize = 100
	runner := NewRunner(opts, 1)

	result, err := runner.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.Chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(result.Chunks))
	}
	for i, chunk := range result.Chunks {
		if len(chunk.Text) > 100 {
			t.Errorf("chunk %d length %d exceeds bound", i, len(chunk.Text))
		}
		if !strings.Contains(chunk.FilePath, "_chunk_") {
			t.Errorf("chunk %d path %q missing fragment suffix", i, chunk.FilePath)
		}
	}
	if result.TotalTextsFound != 3 {
		t.Errorf("TotalTextsFound = %d, want post-split count 3", result.TotalTextsFound)
	}
}
