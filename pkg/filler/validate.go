package filler

import "strings"

// Validation never touches the filesystem. Batch checks cover every line before
// the first document is written.

// ValidateTokens checks that tokens is non-empty and holds no duplicates
func ValidateTokens(tokens TokenPack) error {
	if len(tokens) == 0 {
		return &ValidationError{Code: CodeEmptyTokenSet}
	}
	counts := make(map[string]int, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	for _, token := range tokens {
		if counts[token] > 1 {
			return &ValidationError{Code: CodeDuplicateToken, Token: token}
		}
	}
	return nil
}

// ValidateValues checks that there is one value per token
func ValidateValues(tokens TokenPack, values ValuePack) error {
	if len(values) == 0 {
		return &ValidationError{Code: CodeEmptyValueSet}
	}
	if len(values) != len(tokens) {
		return &ValidationError{Code: CodeCountMismatch, Tokens: len(tokens), Values: len(values)}
	}
	return nil
}

// ValidateFilename checks that a resolved output path carries the document extension
func ValidateFilename(path string) error {
	if !strings.HasSuffix(path, Extension) {
		return &ValidationError{Code: CodeBadExtension, Path: path}
	}
	return nil
}

// ValidateSeparator rejects an empty batch separator
func ValidateSeparator(separator string) error {
	if separator == "" {
		return &ValidationError{Code: CodeEmptySeparator}
	}
	return nil
}

// ValidateValuesMultiline runs ValidateValues on every line of text.
// Failures are wrapped in a LineError carrying the 1-based line number.
func ValidateValuesMultiline(text, separator string, tokens TokenPack) error {
	if text == "" {
		return &ValidationError{Code: CodeEmptyValueSet}
	}
	for i, line := range SplitLines(text) {
		if err := ValidateValues(tokens, ParseRow(line, separator)); err != nil {
			return &LineError{Line: i + 1, Err: err}
		}
	}
	return nil
}

// ValidateFilenameMultiline resolves the output path of every line and checks
// its extension and that no two lines resolve to the same path.
func ValidateFilenameMultiline(tokens TokenPack, text, separator, pattern string) error {
	seen := make(map[string]struct{})
	for i, line := range SplitLines(text) {
		values := ParseRow(line, separator)
		if err := ValidateValues(tokens, values); err != nil {
			return &LineError{Line: i + 1, Err: err}
		}

		path := Substitute(pattern, tokens, values)
		if err := ValidateFilename(path); err != nil {
			return err
		}
		if _, dup := seen[path]; dup {
			return &ValidationError{Code: CodeDuplicateOutputName, Path: path}
		}
		seen[path] = struct{}{}
	}
	return nil
}

// ValidateSingle runs the checks for generating one document
func ValidateSingle(tokens TokenPack, values ValuePack, pattern string) error {
	if err := ValidateTokens(tokens); err != nil {
		return err
	}
	if err := ValidateValues(tokens, values); err != nil {
		return err
	}
	return ValidateFilename(Substitute(pattern, tokens, values))
}

// ValidateBatch runs the checks for generating one document per line of text
func ValidateBatch(tokens TokenPack, text, separator, pattern string) error {
	if err := ValidateTokens(tokens); err != nil {
		return err
	}
	if err := ValidateSeparator(separator); err != nil {
		return err
	}
	if err := ValidateValuesMultiline(text, separator, tokens); err != nil {
		return err
	}
	return ValidateFilenameMultiline(tokens, text, separator, pattern)
}
