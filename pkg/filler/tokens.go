package filler

import "regexp"

// TokenPack is an ordered list of distinct placeholders, braces included
type TokenPack = []string

// ValuePack holds one replacement value per token, in token order
type ValuePack = []string

var tokenRegex = regexp.MustCompile(`\{\{.*?\}\}`)

// ScanTokens returns the distinct {{...}} placeholders of text in order of first appearance.
// The result is empty when text holds no placeholder.
func ScanTokens(text string) TokenPack {
	matches := tokenRegex.FindAllString(text, -1)

	seen := make(map[string]struct{}, len(matches))
	tokens := make(TokenPack, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		tokens = append(tokens, m)
	}
	return tokens
}
