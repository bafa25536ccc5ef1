package extract

import "regexp"

// Rule is one text matcher with exactly one capturing group. Rules are
// applied independently per line; a value matched by a specific key rule is
// matched again by the generic quoted-literal rule. That duplication is
// intentional (recall over precision) — deduplication is a separate
// post-filter if a caller wants one.
type Rule struct {
	// Name identifies the rule in logs.
	Name string
	// Pattern has exactly one capturing group holding the translatable text.
	Pattern *regexp.Regexp
}

// keyVocabulary lists the key names recognized by the key/value rules.
var keyVocabulary = []string{
	"text", "label", "message", "title", "description", "name", "value", "content",
}

// tagVocabulary lists the tag names recognized by the XML-style rules.
var tagVocabulary = []string{
	"text", "string", "message", "label", "title", "description", "name", "value", "content",
}

// DefaultRules returns the ordered default rule set: generic quoted
// literals first, then key/value forms, then XML-style tag pairs.
func DefaultRules() []Rule {
	rules := []Rule{
		{Name: "double_quoted", Pattern: regexp.MustCompile(`"([^"\\]*(?:\\.[^"\\]*)*)"`)},
		{Name: "single_quoted", Pattern: regexp.MustCompile(`'([^'\\]*(?:\\.[^'\\]*)*)'`)},
	}

	for _, key := range keyVocabulary {
		rules = append(rules, Rule{
			Name:    "key_" + key,
			Pattern: regexp.MustCompile(key + `\s*[:=]\s*["']([^"']+)["']`),
		})
	}

	for _, tag := range tagVocabulary {
		rules = append(rules, Rule{
			Name:    "tag_" + tag,
			Pattern: regexp.MustCompile(`<` + tag + `>([^<]+)</` + tag + `>`),
		})
	}

	return rules
}
