package extract

import (
	"bufio"
	"fmt"
	"os"
)

// Engine applies the pattern rules to files line by line.
type Engine struct {
	rules         []Rule
	minTextLength int
}

// NewEngine creates an engine with the default rule set and the thresholds
// from opts.
func NewEngine(opts Options) *Engine {
	minLen := opts.MinTextLength
	if minLen < 1 {
		minLen = DefaultMinTextLength
	}
	return &Engine{
		rules:         DefaultRules(),
		minTextLength: minLen,
	}
}

// ExtractFile extracts all translatable chunks from one file. An open
// failure is returned to the caller; it affects only this file and must not
// abort the surrounding batch.
func (e *Engine) ExtractFile(filePath string) ([]Chunk, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	var chunks []Chunk

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 4*1024*1024), 4*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		chunks = append(chunks, e.ExtractLine(filePath, scanner.Text(), lineNum)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return chunks, nil
}

// ExtractLine runs every rule over one raw line. A line may yield multiple
// chunks, including duplicates across rules. Column offsets are measured on
// the raw line, before cleaning.
func (e *Engine) ExtractLine(filePath, line string, lineNum int) []Chunk {
	var chunks []Chunk

	for _, rule := range e.rules {
		matches := rule.Pattern.FindAllStringSubmatchIndex(line, -1)
		for _, loc := range matches {
			if loc[2] < 0 {
				continue
			}

			text := Clean(line[loc[2]:loc[3]])
			if len(text) < e.minTextLength {
				continue
			}

			chunks = append(chunks, Chunk{
				Text:         text,
				FilePath:     filePath,
				Line:         lineNum,
				ColumnStart:  loc[2],
				ColumnEnd:    loc[3],
				Context:      line,
				OriginalText: line[loc[0]:loc[1]],
			})
		}
	}

	return chunks
}
