package filewalker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"locextract/internal/extract"

	"github.com/rs/zerolog/log"
)

// Walker enumerates regular files under a root directory, filtered by the
// extension allow-list from the run options.
type Walker struct {
	extensions map[string]bool
}

// NewWalker creates a walker using the allow-list in opts.
func NewWalker(opts extract.Options) *Walker {
	return &Walker{extensions: opts.ExtensionSet()}
}

// Extensions returns the active allow-list in no particular order.
func (w *Walker) Extensions() []string {
	exts := make([]string, 0, len(w.extensions))
	for ext := range w.extensions {
		exts = append(exts, ext)
	}
	return exts
}

// Walk discovers all allowed files under root. Per-entry traversal errors
// are logged and skipped; a failure on the root itself is returned together
// with whatever file list was accumulated before it, so the caller can keep
// going with a partial scan.
func (w *Walker) Walk(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", absRoot)
	}

	var files []string

	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				return fmt.Errorf("walk root: %w", err)
			}
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !w.extensions[ext] {
			return nil
		}

		files = append(files, path)
		return nil
	})

	if walkErr != nil {
		log.Error().Err(walkErr).Str("root", absRoot).Msg("Directory scan failed, returning partial file list")
		return files, walkErr
	}

	log.Info().Int("count", len(files)).Str("root", absRoot).Msg("Discovered files")
	return files, nil
}
