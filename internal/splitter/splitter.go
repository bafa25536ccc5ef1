// Package splitter enforces the maximum chunk size with word-boundary-aware
// slicing. Chunks within the bound pass through untouched; oversized chunks
// are replaced by derived fragments.
package splitter

import (
	"strings"

	"locextract/internal/extract"
)

// Splitter bounds chunk text length.
type Splitter struct {
	maxChunkSize int
}

// New creates a splitter with the size bound from opts.
func New(opts extract.Options) *Splitter {
	maxSize := opts.MaxChunkSize
	if maxSize < 1 {
		maxSize = extract.DefaultMaxChunkSize
	}
	return &Splitter{maxChunkSize: maxSize}
}

// Split returns the chunk sequence with every oversized chunk replaced by
// its fragments, in order. Source chunks are never mutated.
func (s *Splitter) Split(chunks []extract.Chunk) []extract.Chunk {
	result := make([]extract.Chunk, 0, len(chunks))
	for _, chunk := range chunks {
		if len(chunk.Text) <= s.maxChunkSize {
			result = append(result, chunk)
			continue
		}
		result = append(result, s.splitChunk(chunk)...)
	}
	return result
}

// splitChunk slices one oversized chunk into fragments of at most
// maxChunkSize. When the boundary falls before the end of the text, it is
// moved back to the nearest space strictly after the fragment start if one
// exists; the space itself is consumed, not copied into either fragment.
// Without a qualifying space the cut is a hard character-count cut.
func (s *Splitter) splitChunk(chunk extract.Chunk) []extract.Chunk {
	text := chunk.Text
	var fragments []extract.Chunk

	start := 0
	fragIdx := 0
	for start < len(text) {
		end := start + s.maxChunkSize
		if end > len(text) {
			end = len(text)
		}

		if end < len(text) {
			if sp := strings.LastIndexByte(text[start:end+1], ' '); sp > 0 {
				end = start + sp
			}
		}

		fragments = append(fragments, chunk.Fragment(fragIdx, text[start:end]))

		start = end
		if start < len(text) && text[start] == ' ' {
			start++
		}
		fragIdx++
	}

	return fragments
}
