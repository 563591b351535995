package filler

import (
	"errors"
	"os"

	"github.com/benjaminschreck/go-docxfill/pkg/filler/archive"
)

const (
	// PrimaryEntry is the package part holding the document text
	PrimaryEntry = "word/document.xml"
	// Extension is the suffix every output path must carry
	Extension = ".docx"
)

// Template is a DOCX package loaded into memory.
// Its entries are never modified after Open, so one Template may serve
// concurrent generations.
type Template struct {
	path    string
	primary string
	entries archive.Entries
	meta    archive.Metadata
}

// Open loads the package at path
func Open(path string) (*Template, error) {
	entries, meta, err := archive.LoadWithMetadata(path)
	if err != nil {
		return nil, NewDocumentError("load", path, err)
	}
	return &Template{
		path:    path,
		primary: PrimaryEntry,
		entries: entries,
		meta:    meta,
	}, nil
}

// Path returns the file the template was loaded from
func (t *Template) Path() string {
	return t.path
}

func (t *Template) document() (string, error) {
	doc, ok := t.entries[t.primary]
	if !ok {
		return "", &ProcessingError{Code: CodeNoPrimaryEntry, Path: t.path}
	}
	return doc, nil
}

// Tokens returns the distinct placeholders of the document text in order of first appearance
func (t *Template) Tokens() (TokenPack, error) {
	doc, err := t.document()
	if err != nil {
		return nil, err
	}
	tokens := ScanTokens(doc)
	if err := ValidateTokens(tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

// Generate validates tokens and values, then writes one filled document to the
// path obtained by substituting them into pattern. It returns that path.
func (t *Template) Generate(tokens TokenPack, values ValuePack, pattern string) (string, error) {
	if err := ValidateSingle(tokens, values, pattern); err != nil {
		return "", err
	}
	return t.generate(tokens, values, pattern)
}

// generate writes one document without validating its input
func (t *Template) generate(tokens TokenPack, values ValuePack, pattern string) (string, error) {
	out := Substitute(pattern, tokens, values)
	if _, err := os.Lstat(out); err == nil {
		return "", &ProcessingError{Code: CodeTargetExists, Path: out}
	}

	doc, err := t.document()
	if err != nil {
		return "", err
	}

	if err := archive.WriteWithMetadata(out, t.entries, t.meta, t.primary, Substitute(doc, tokens, values)); err != nil {
		if errors.Is(err, archive.ErrTargetExists) {
			return "", &ProcessingError{Code: CodeTargetExists, Path: out}
		}
		return "", NewDocumentError("write", out, err)
	}
	return out, nil
}
