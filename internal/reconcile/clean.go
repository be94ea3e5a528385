package reconcile

import (
	"regexp"
	"strings"
)

var (
	quotedFragment = regexp.MustCompile(`(['"])((?:[^'"\\]|\\.)*?)(['"])`)
	letterPattern  = regexp.MustCompile(`[A-Za-z\x{00C0}-\x{024F}]`)
)

// CleanScrapedName normalizes raw scraped starter text to a plain display
// name. Scrapers occasionally hand back a serialized-dictionary-style blob
// instead of a bare name (for example "{'name': 'Igor Shesterkin',
// 'status': 'Confirmed'}"); for those, the quoted value fragments that look
// like text are joined with single spaces. Anything else passes through
// with whitespace collapsed. Matching is not this function's concern.
func CleanScrapedName(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	if looksLikeSerializedDict(trimmed) {
		if joined := joinQuotedValues(trimmed); joined != "" {
			return joined
		}
	}

	return strings.Join(strings.Fields(trimmed), " ")
}

func looksLikeSerializedDict(s string) bool {
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		return true
	}
	// Key/value fragments sometimes arrive without the enclosing braces.
	return strings.Contains(s, "':") || strings.Contains(s, "\":")
}

// joinQuotedValues extracts quoted fragments that are values rather than
// keys (a key is immediately followed by a colon) and joins the textual
// ones with single spaces.
func joinQuotedValues(s string) string {
	matches := quotedFragment.FindAllStringSubmatchIndex(s, -1)
	var parts []string
	for _, m := range matches {
		end := m[1]
		frag := s[m[4]:m[5]]

		rest := strings.TrimLeft(s[end:], " \t")
		if strings.HasPrefix(rest, ":") {
			continue // key, not a value
		}
		if !letterPattern.MatchString(frag) {
			continue
		}
		parts = append(parts, strings.Join(strings.Fields(frag), " "))
	}
	return strings.Join(parts, " ")
}
