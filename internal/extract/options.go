package extract

import "strings"

// DefaultMinTextLength is the minimum cleaned length for a chunk.
const DefaultMinTextLength = 3

// DefaultMaxChunkSize is the maximum text length per chunk after splitting.
const DefaultMaxChunkSize = 50000

// defaultExtensions covers common source, config and scene formats.
var defaultExtensions = []string{
	".csv", ".erb", ".erh", ".py", ".cpp", ".c", ".h", ".hpp", ".cs", ".java",
	".js", ".ts", ".jsx", ".tsx", ".xml", ".json", ".yaml", ".yml", ".ini",
	".cfg", ".txt", ".lua", ".rpy", ".unity", ".prefab", ".asset", ".scene",
	".csproj", ".sln",
}

// Options is the immutable per-run configuration. Construct it once before
// a run; nothing mutates it afterwards.
type Options struct {
	// MinTextLength is the minimum cleaned text length worth extracting.
	MinTextLength int
	// MaxChunkSize bounds the text length of every emitted chunk.
	MaxChunkSize int
	// Extensions is the file extension allow-list, case-folded with leading dots.
	Extensions []string
}

// DefaultOptions returns the default thresholds and extension allow-list.
func DefaultOptions() Options {
	exts := make([]string, len(defaultExtensions))
	copy(exts, defaultExtensions)
	return Options{
		MinTextLength: DefaultMinTextLength,
		MaxChunkSize:  DefaultMaxChunkSize,
		Extensions:    exts,
	}
}

// WithExtensions returns a copy of the options using the given allow-list,
// normalized via NormalizeExtensions. An empty list keeps the current one.
func (o Options) WithExtensions(exts []string) Options {
	normalized := NormalizeExtensions(exts)
	if len(normalized) == 0 {
		return o
	}
	o.Extensions = normalized
	return o
}

// ExtensionSet returns the allow-list as a lookup set.
func (o Options) ExtensionSet() map[string]bool {
	set := make(map[string]bool, len(o.Extensions))
	for _, ext := range o.Extensions {
		set[strings.ToLower(ext)] = true
	}
	return set
}

// NormalizeExtensions lowercases extensions and ensures a leading dot,
// dropping empty entries.
func NormalizeExtensions(exts []string) []string {
	var normalized []string
	for _, ext := range exts {
		ext = strings.TrimSpace(strings.ToLower(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return normalized
}
