package filler

import (
	"fmt"
	"strings"
)

// Substitute replaces every occurrence of tokens[i] with values[i] in input.
//
// Replacement is literal and sequential: token 0 is replaced everywhere, then
// token 1 in the result, and so on. A value that contains a later token's text
// is therefore replaced again.
//
// It panics if tokens and values differ in length; validation guarantees they don't.
func Substitute(input string, tokens TokenPack, values ValuePack) string {
	if len(tokens) != len(values) {
		panic(fmt.Sprintf("filler: substitute called with %d tokens and %d values", len(tokens), len(values)))
	}
	output := input
	for i, token := range tokens {
		output = strings.ReplaceAll(output, token, values[i])
	}
	return output
}
