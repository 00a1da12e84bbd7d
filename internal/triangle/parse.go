package triangle

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrRowLimit is returned by ParseLimit when the input holds more rows than
// the configured maximum.
var ErrRowLimit = errors.New("triangle: row limit exceeded")

// ParseError reports a malformed input line.
type ParseError struct {
	// Line is the 1-based input line number.
	Line int
	// Token is the offending token, when one is identifiable.
	Token string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("triangle: line %d: bad value %q: %v", e.Line, e.Token, e.Err)
	}
	return fmt.Sprintf("triangle: line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error { return e.Err }

// maxLineBytes bounds a single input line. Wide rows of many-digit values
// overflow bufio.Scanner's default 64 KiB token size well before they
// stress memory.
const maxLineBytes = 4 * 1024 * 1024

// Parse reads a whitespace-separated triangle. Each non-empty unit of the
// stream is one row; row i must hold exactly i+1 integers. Values are
// separated by spaces or tabs and rows by newlines.
func Parse(r io.Reader) (*Triangle, error) {
	return ParseLimit(r, 0)
}

// ParseLimit is Parse with an upper bound on the row count. A maxRows of
// zero or less means no limit. Exceeding the limit fails fast with
// ErrRowLimit before the remaining input is read.
func ParseLimit(r io.Reader, maxRows int) (*Triangle, error) {
	t := New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	line := 0
	for scanner.Scan() {
		line++
		if maxRows > 0 && t.Height() >= maxRows {
			return nil, &ParseError{Line: line, Err: fmt.Errorf("%w: more than %d rows", ErrRowLimit, maxRows)}
		}

		fields := strings.Fields(scanner.Text())
		row := make([]int64, 0, len(fields))
		for _, tok := range fields {
			v, err := strconv.ParseInt(tok, 10, 64)
			if err != nil {
				return nil, &ParseError{Line: line, Token: tok, Err: err}
			}
			row = append(row, v)
		}

		// An empty or blank line parses to zero values and is rejected by
		// the shape check, like any other short row.
		if err := t.AppendRow(row); err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("triangle: reading input: %w", err)
	}
	return t, nil
}
