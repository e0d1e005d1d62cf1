package profile

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoRows        = errors.New("profile has no data rows")
	ErrMisaligned    = errors.New("profile series have different lengths")
	ErrStationOrder  = errors.New("stations must be strictly increasing")
	ErrMultipleWells = errors.New("more than one extraction well flagged")
	ErrInvalidNumber = errors.New("invalid number")
	ErrInvalidFlag   = errors.New("invalid extraction-well flag")
	ErrExtraFields   = errors.New("row has more fields than the header")
	ErrEncoding      = errors.New("unreadable text encoding")
)

// SchemaError reports required columns that are missing from a survey file
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	quoted := make([]string, len(e.Missing))
	for i, c := range e.Missing {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return fmt.Sprintf("%s: missing required column(s): %s", e.Source, strings.Join(quoted, ", "))
}

// ParseError reports a survey file whose contents cannot be turned into a profile.
// Row is the 1-based line number in the file (the header is line 1); zero means the
// problem concerns the file as a whole.
type ParseError struct {
	Source string
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.Source)
	if e.Row > 0 {
		fmt.Fprintf(&b, ": row %d", e.Row)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, ", column %q", e.Column)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, ", value %q", e.Value)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
