// Package store persists extracted chunks as translator-facing worksheet
// files and parses a completed worksheet back into a mapping. The master
// worksheet field labels and order are a wire contract: Reapply consumes
// exactly what Persist writes.
package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"locextract/internal/extract"

	"github.com/rs/zerolog/log"
)

// MasterFileName is the aggregate worksheet enumerating every chunk.
const MasterFileName = "master_translation.txt"

const (
	idPrefix          = "ID: "
	originalPrefix    = "Original: "
	translationPrefix = "Translation: "
	recordDelimiter   = "---"
)

// Store writes and reads translation worksheet files.
type Store struct{}

// New creates a store.
func New() *Store { return &Store{} }

// Persist writes one `<basename>_extracted.txt` per file-path group plus the
// master worksheet into outputDir, creating it as needed. Every output file
// is written to a temporary file and renamed into place, so an interrupted
// persist never leaves a half-written group behind.
func (s *Store) Persist(chunks []extract.Chunk, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	grouped := make(map[string][]extract.Chunk)
	var order []string
	for _, chunk := range chunks {
		if _, seen := grouped[chunk.FilePath]; !seen {
			order = append(order, chunk.FilePath)
		}
		grouped[chunk.FilePath] = append(grouped[chunk.FilePath], chunk)
	}
	sort.Strings(order)

	for _, filePath := range order {
		if err := s.writeFileGroup(filePath, grouped[filePath], outputDir); err != nil {
			return err
		}
	}

	if err := s.writeMaster(chunks, outputDir); err != nil {
		return err
	}

	log.Info().
		Int("chunks", len(chunks)).
		Int("groups", len(grouped)).
		Str("dir", outputDir).
		Msg("Persisted extracted texts")

	return nil
}

func (s *Store) writeFileGroup(filePath string, chunks []extract.Chunk, outputDir string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "=== EXTRACTED TEXTS FROM: %s ===\n\n", filePath)

	for _, chunk := range chunks {
		fmt.Fprintf(&b, "Line %d:\n", chunk.Line)
		fmt.Fprintf(&b, "Context: %s\n", chunk.Context)
		fmt.Fprintf(&b, "Text: %s\n", chunk.Text)
		fmt.Fprintf(&b, "Original: %s\n", chunk.OriginalText)
		b.WriteString(recordDelimiter + "\n\n")
	}

	name := filepath.Base(filePath) + "_extracted.txt"
	return writeAtomic(filepath.Join(outputDir, name), b.String())
}

func (s *Store) writeMaster(chunks []extract.Chunk, outputDir string) error {
	var b strings.Builder
	b.WriteString("=== MASTER TRANSLATION FILE ===\n\n")

	for i, chunk := range chunks {
		fmt.Fprintf(&b, "%s%d\n", idPrefix, i+1)
		fmt.Fprintf(&b, "File: %s\n", chunk.FilePath)
		fmt.Fprintf(&b, "Line: %d\n", chunk.Line)
		fmt.Fprintf(&b, "%s%s\n", originalPrefix, chunk.Text)
		b.WriteString(translationPrefix + "\n")
		b.WriteString(recordDelimiter + "\n\n")
	}

	return writeAtomic(filepath.Join(outputDir, MasterFileName), b.String())
}

// writeAtomic writes content to a temp file in the target directory and
// renames it into place.
func writeAtomic(path, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", path, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

// Reapply parses a completed master worksheet into an original→translation
// mapping. A translation counts only when its value is non-empty and not the
// single blank the worksheet template carries. A translation arriving
// without an original in the current record is rejected and logged, never
// associated by guesswork. No source file is modified.
func (s *Store) Reapply(translationFile string) (map[string]string, error) {
	file, err := os.Open(translationFile)
	if err != nil {
		return nil, fmt.Errorf("open translation file: %w", err)
	}
	defer file.Close()

	translations := make(map[string]string)
	rejected := 0

	var currentOriginal string
	hasOriginal := false

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 4*1024*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, idPrefix), line == recordDelimiter:
			hasOriginal = false
		case strings.HasPrefix(line, originalPrefix):
			currentOriginal = line[len(originalPrefix):]
			hasOriginal = true
		case strings.HasPrefix(line, translationPrefix):
			translation := line[len(translationPrefix):]
			if translation == "" || translation == " " {
				continue
			}
			if !hasOriginal {
				rejected++
				log.Warn().Str("translation", translation).Msg("Rejected translation record with no original")
				continue
			}
			translations[currentOriginal] = translation
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan translation file: %w", err)
	}

	log.Info().
		Int("translations", len(translations)).
		Int("rejected", rejected).
		Str("file", translationFile).
		Msg("Parsed translation worksheet")

	return translations, nil
}
