// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// Error classes for a single file's conversion. None of them stops a batch.
var (
	// ErrParse marks a missing or malformed tag, attribute, numeric token, or
	// generator-record section.
	ErrParse = errors.New("parse error")

	// ErrUnsupported marks input the converter knows but cannot express in
	// PSP8, such as an exchange-correlation code outside the lookup table.
	ErrUnsupported = errors.New("unsupported feature")

	// ErrNotFound marks an input path that does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrWrite marks a failure to write the converted output.
	ErrWrite = errors.New("write error")
)

// ParseError describes where parsing failed. It matches ErrParse with errors.Is.
type ParseError struct {
	// Tag is the block, attribute, or field being read.
	Tag string

	// Line is the 1-based source line, or 0 when not tied to a position.
	Line int

	// Reason is a short description of the failure.
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s: line %d: %s", e.Tag, e.Line, e.Reason)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Tag, e.Reason)
}

// Unwrap lets errors.Is(err, ErrParse) match.
func (e *ParseError) Unwrap() error { return ErrParse }

// NewParseError builds a ParseError with a formatted reason.
func NewParseError(tag string, line int, format string, args ...any) *ParseError {
	return &ParseError{Tag: tag, Line: line, Reason: fmt.Sprintf(format, args...)}
}
