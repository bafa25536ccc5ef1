package extract

import "strings"

// Clean resolves escape tokens and trims surrounding whitespace. The
// substitutions run in a fixed order with the backslash unescape last, so a
// doubled backslash is never misread as introducing another escape. Pure
// function, no I/O.
func Clean(text string) string {
	cleaned := text
	cleaned = strings.ReplaceAll(cleaned, `\n`, "\n")
	cleaned = strings.ReplaceAll(cleaned, `\t`, "\t")
	cleaned = strings.ReplaceAll(cleaned, `\r`, "\r")
	cleaned = strings.ReplaceAll(cleaned, `\"`, `"`)
	cleaned = strings.ReplaceAll(cleaned, `\'`, `'`)
	cleaned = strings.ReplaceAll(cleaned, `\\`, `\`)
	return strings.TrimSpace(cleaned)
}
