// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"

	"carvel.dev/minitpl/pkg/filepos"
)

// Messages carried by SyntaxError.Msg.
const (
	ErrMsgInvalidName       = "Not a valid name"
	ErrMsgDottedFilter      = "Filter name must not contain dots"
	ErrMsgUnknownTag        = "Don't understand tag"
	ErrMsgMalformedIf       = "Don't understand if"
	ErrMsgMalformedFor      = "Don't understand for"
	ErrMsgMalformedEnd      = "Don't understand end"
	ErrMsgTooManyEnds       = "Too many ends"
	ErrMsgMismatchedEnd     = "Mismatched ending tag"
	ErrMsgUnmatchedTag      = "Unmatched action tag"
	ErrMsgUnclosedDelimiter = "Missing closing delimiter"
)

// SyntaxError is returned when template text cannot be compiled.
// At holds the offending token or word.
type SyntaxError struct {
	Msg      string
	At       string
	Hint     string
	Position *filepos.Position
}

var _ error = &SyntaxError{}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("%s %q", e.Msg, e.At)
	if e.Position.IsKnown() {
		msg += " at " + e.Position.AsCompactString()
	}
	if len(e.Hint) > 0 {
		msg += fmt.Sprintf(" (hint: %s)", e.Hint)
	}
	return msg
}
