// Package filler fills {{token}} placeholders in DOCX templates.
//
// A template is loaded once and can then produce any number of documents.
// Tokens are matched as literal strings, braces included, inside
// word/document.xml; every other part of the package is copied unchanged.
//
// Basic Usage:
//
//	s := filler.NewSession()
//	if err := s.Open("letter.docx"); err != nil {
//	    log.Fatal(err)
//	}
//
//	tokens, err := s.DiscoverTokens() // e.g. [{{name}} {{city}}]
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// one document per line, fields separated by ";"
//	text := "Ada;Paris\nBob;Rome"
//	written, err := s.GenerateBatch(ctx, tokens, text, ";", "letter-{{name}}.docx")
//
// Output paths are themselves patterns and must end in .docx. Existing files are
// never overwritten, and a batch is validated in full before the first document
// is written.
//
// Errors are typed (ValidationError, LineError, ProcessingError, DocumentError).
// Each implements Localizable so a front-end can render it through the i18n package.
package filler
