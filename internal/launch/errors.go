package launch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errEmptySite        = errors.New("launch site is empty")
	errPayloadNotFinite = errors.New("payload mass is not a finite number")
	errPayloadNegative  = errors.New("payload mass is negative")
	errClassRange       = errors.New("class must be 0 or 1")
)

// DataLoadError reports a dataset that could not be read or does not match the
// launch table schema. It is fatal at startup.
type DataLoadError struct {
	Source string
	Reason string
	Row    int    // 1-based data row, 0 when not row specific
	Column string // offending column, empty when not column specific
	Err    error
}

func (e *DataLoadError) Error() string {
	var b strings.Builder
	b.WriteString("load dataset")
	if e.Source != "" {
		fmt.Fprintf(&b, " %s", e.Source)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Row > 0 {
		fmt.Fprintf(&b, " (row %d", e.Row)
		if e.Column != "" {
			fmt.Fprintf(&b, ", column %q", e.Column)
		}
		b.WriteString(")")
	} else if e.Column != "" {
		fmt.Fprintf(&b, " (column %q)", e.Column)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// AsDataLoadError wraps err as a DataLoadError for source unless it already is one.
func AsDataLoadError(source, reason string, err error) error {
	if err == nil {
		return nil
	}
	var dle *DataLoadError
	if errors.As(err, &dle) {
		if dle.Source == "" {
			dle.Source = source
		}
		return dle
	}
	return &DataLoadError{Source: source, Reason: reason, Err: err}
}
