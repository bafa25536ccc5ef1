package extract

import "fmt"

// Chunk represents one extracted translatable string with its provenance.
type Chunk struct {
	// Text is the cleaned translatable string.
	Text string
	// FilePath is the source file path. After splitting it may carry a
	// synthetic _chunk_<n> fragment suffix.
	FilePath string
	// Line is the 1-based line number in the source file.
	Line int
	// ColumnStart is the byte offset of the captured text on the raw line.
	ColumnStart int
	// ColumnEnd is the byte offset one past the captured text on the raw line.
	ColumnEnd int
	// Context holds the full raw source line.
	Context string
	// OriginalText is the full substring matched by the rule, delimiters included.
	OriginalText string
}

// Fragment derives a new chunk carrying a slice of this chunk's text.
// The source chunk is never mutated; idx is the zero-based fragment counter.
func (c Chunk) Fragment(idx int, text string) Chunk {
	frag := c
	frag.Text = text
	frag.FilePath = fmt.Sprintf("%s_chunk_%d", c.FilePath, idx)
	return frag
}

// Result holds the output of one extraction run.
type Result struct {
	// Chunks are the extracted texts in file order, post-split.
	Chunks []Chunk
	// TotalFilesProcessed counts scanned files, readable or not.
	TotalFilesProcessed int
	// TotalTextsFound counts chunks after splitting.
	TotalTextsFound int
	// ProcessingTime is the wall-clock pipeline duration in seconds.
	ProcessingTime float64
}
