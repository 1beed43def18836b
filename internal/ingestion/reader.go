package ingestion

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"unicode/utf8"
)

// DefaultMaxReadBytes is the default read cap per document.
const DefaultMaxReadBytes = 2048

// MaxHTMLBytes bounds the markup read for an HTML document. The read cap
// applies to the extracted text instead, since head and style elements
// alone can exceed it.
const MaxHTMLBytes = 1 << 20

// Document is the text of one résumé as handed to the pipeline.
type Document struct {
	Path     string
	Format   Format
	Text     string
	Metadata *Metadata
}

// FileError represents a failure to open or read an input document
type FileError struct {
	Path    string
	Message string
	Cause   error
}

func (e *FileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Path)
}

func (e *FileError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether err means the input document does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// ReadBounded reads at most maxBytes from r and reports whether more input
// was left. A non-positive maxBytes reads everything.
func ReadBounded(r io.Reader, maxBytes int) ([]byte, bool, error) {
	if maxBytes <= 0 {
		data, err := io.ReadAll(r)
		return data, false, err
	}

	data, err := io.ReadAll(io.LimitReader(r, int64(maxBytes)+1))
	if err != nil {
		return nil, false, err
	}
	if len(data) > maxBytes {
		return data[:maxBytes], true, nil
	}
	return data, false, nil
}

// ReadLimit returns how many raw bytes to read for a document of format whose
// text is capped at maxBytes.
func ReadLimit(format Format, maxBytes int) int {
	if format == FormatHTML && maxBytes > 0 && maxBytes < MaxHTMLBytes {
		return MaxHTMLBytes
	}
	return maxBytes
}

// ReadFile reads the first maxBytes of the document at path, drops invalid
// UTF-8, and converts HTML to visible text. Longer documents are truncated,
// not rejected. A missing file yields an error for which IsNotFound is true.
func ReadFile(path string, maxBytes int) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &FileError{Path: path, Message: "file not found", Cause: err}
		}
		return nil, &FileError{Path: path, Message: "failed to open file", Cause: err}
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, &FileError{Path: path, Message: "failed to stat file", Cause: err}
	}
	if info.IsDir() {
		return nil, &FileError{Path: path, Message: "path is a directory"}
	}

	format := DetectFormat(path)
	data, truncated, err := ReadBounded(f, ReadLimit(format, maxBytes))
	if err != nil {
		return nil, &FileError{Path: path, Message: "failed to read file", Cause: err}
	}

	return NewDocument(path, format, data, truncated, maxBytes)
}

// NewDocument builds a Document from bytes already read with ReadLimit.
// HTML text is cut to maxBytes after extraction; other formats were already
// cut by the read.
func NewDocument(path string, format Format, data []byte, truncated bool, maxBytes int) (*Document, error) {
	text := RepairUTF8(data)
	if format == FormatHTML {
		extracted, err := HTMLToText(text)
		if err != nil {
			return nil, err
		}
		var cut bool
		text, cut = capText(extracted, maxBytes)
		truncated = truncated || cut
	}

	return &Document{
		Path:     path,
		Format:   format,
		Text:     text,
		Metadata: NewMetadata(path, data, truncated),
	}, nil
}

// capText cuts s to at most maxBytes without splitting a rune.
func capText(s string, maxBytes int) (string, bool) {
	if maxBytes <= 0 || len(s) <= maxBytes {
		return s, false
	}
	i := maxBytes
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return s[:i], true
}
