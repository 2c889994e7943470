// Package tokerr formats configuration-time errors — malformed vocabulary
// files — the way the teacher repo's internal/errors
// package formats compiler errors: a message plus a caret pointing at the
// offending source line. The core engine (internal/scanengine) never
// returns an error; this package exists only for the vocabulary loader
// around it (internal/vocabload), whose errors cmd/scanlex passes through
// unchanged.
package tokerr

import (
	"fmt"
	"strings"
)

// Position is a 1-indexed line/column location within a vocabulary source
// document.
type Position struct {
	Line   int
	Column int
}

// ConfigError is a single configuration-time error with optional source
// context.
type ConfigError struct {
	Message string
	Source  string
	File    string
	Pos     Position
}

// NewConfigError builds a ConfigError. pos may be the zero value when no
// precise location is available (e.g. a duplicate-name check across the
// whole document).
func NewConfigError(pos Position, message, source, file string) *ConfigError {
	return &ConfigError{Pos: pos, Message: message, Source: source, File: file}
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return e.Format(false)
}

// Format renders the error with a line|source display and a caret pointing
// at Pos.Column, optionally colored for terminal output.
func (e *ConfigError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column))
	} else if e.Pos.Line != 0 {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", e.Pos.Line, e.Pos.Column))
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func (e *ConfigError) sourceLine(lineNum int) string {
	if e.Source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatErrors formats a batch of configuration errors the way the teacher
// formats batches of compiler errors: numbered when there is more than one.
func FormatErrors(errs []*ConfigError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("vocabulary load failed with %d error(s):\n\n", len(errs)))
	for i, err := range errs {
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(errs)))
		sb.WriteString(err.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
