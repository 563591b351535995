package filler

import "strings"

// DefaultSeparator splits the fields of a batch line unless the caller picks another
const DefaultSeparator = ";"

// SplitLines breaks batch text into lines. A trailing newline does not start
// a new line and a trailing carriage return is dropped from each line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// ParseRow splits one line by separator and trims every field
func ParseRow(line, separator string) ValuePack {
	fields := strings.Split(line, separator)
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}
