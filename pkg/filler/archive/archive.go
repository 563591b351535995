// Package archive loads a DOCX package into memory and writes modified copies of it.
//
// A package is held as a map from part name to text content. Every part must be
// valid UTF-8; binary parts are rejected at load time.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"time"
	"unicode/utf8"
)

// Entries maps part names to their text content
type Entries map[string]string

// Attrs is the zip metadata of a part that written copies inherit
type Attrs struct {
	Modified       time.Time
	ExternalAttrs  uint32
	CreatorVersion uint16
}

// Metadata maps part names to their zip metadata
type Metadata map[string]Attrs

// ErrTargetExists is returned by Write when the output path is already taken.
var ErrTargetExists = fmt.Errorf("target already exists: %w", fs.ErrExist)

// FormatError reports a container that is not a readable zip package or holds a non-text part.
type FormatError struct {
	Path  string
	Entry string
	Cause error
}

func (e *FormatError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("invalid archive %s: entry %s: %v", e.Path, e.Entry, e.Cause)
	}
	return fmt.Sprintf("invalid archive %s: %v", e.Path, e.Cause)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}

var errNotText = errors.New("content is not valid UTF-8 text")

// Load reads every part of the package at path.
// Filesystem failures are returned as *fs.PathError, container problems as *FormatError.
func Load(path string) (Entries, error) {
	entries, _, err := LoadWithMetadata(path)
	return entries, err
}

// LoadWithMetadata is Load that also returns the zip metadata of every part.
func LoadWithMetadata(path string) (Entries, Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}

	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return nil, nil, &FormatError{Path: path, Cause: err}
	}

	entries := make(Entries, len(zr.File))
	meta := make(Metadata, len(zr.File))
	for _, file := range zr.File {
		content, err := readEntry(file)
		if err != nil {
			return nil, nil, &FormatError{Path: path, Entry: file.Name, Cause: err}
		}
		entries[file.Name] = content
		meta[file.Name] = Attrs{
			Modified:       file.Modified,
			ExternalAttrs:  file.ExternalAttrs,
			CreatorVersion: file.CreatorVersion,
		}
	}

	return entries, meta, nil
}

func readEntry(file *zip.File) (string, error) {
	rc, err := file.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(content) {
		return "", errNotText
	}
	return string(content), nil
}

// Names returns the part names in sorted order
func (e Entries) Names() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Write creates a new package at path holding every entry verbatim except
// overridden, whose content is replaced by content.
//
// Write never replaces an existing file: it fails with ErrTargetExists before
// creating anything. If writing fails midway the partial file is removed.
func Write(path string, entries Entries, overridden, content string) error {
	return WriteWithMetadata(path, entries, nil, overridden, content)
}

// WriteWithMetadata is Write that stamps each part with its entry in meta.
// Parts missing from meta are written with a zero modification time.
func WriteWithMetadata(path string, entries Entries, meta Metadata, overridden, content string) (err error) {
	if _, statErr := os.Lstat(path); statErr == nil {
		return &fs.PathError{Op: "create", Path: path, Err: ErrTargetExists}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return &fs.PathError{Op: "create", Path: path, Err: ErrTargetExists}
		}
		return err
	}

	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	zw := zip.NewWriter(f)
	for _, name := range entries.Names() {
		data := entries[name]
		if name == overridden {
			data = content
		}
		if err = writeEntry(zw, name, meta[name], data); err != nil {
			return err
		}
	}
	if _, ok := entries[overridden]; !ok {
		if err = writeEntry(zw, overridden, meta[overridden], content); err != nil {
			return err
		}
	}

	return zw.Close()
}

func writeEntry(zw *zip.Writer, name string, attrs Attrs, data string) error {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:           name,
		Method:         zip.Deflate,
		Modified:       attrs.Modified,
		ExternalAttrs:  attrs.ExternalAttrs,
		CreatorVersion: attrs.CreatorVersion,
	})
	if err != nil {
		return fmt.Errorf("failed to create entry %s: %w", name, err)
	}
	if _, err := io.WriteString(w, data); err != nil {
		return fmt.Errorf("failed to write entry %s: %w", name, err)
	}
	return nil
}
