package model

import (
	"errors"
	"fmt"
)

// ErrLoadErrors signals that the corpus run completed but at least one file
// pair could not be loaded. The CLI maps it to a nonzero exit code after the
// report has been written.
var ErrLoadErrors = errors.New("corpus run recorded load errors")

// MalformedDocumentError reports a document that fails structural
// expectations: a non-object top level, a non-array line_items, or a
// non-scalar leaf. It aborts scoring for the single file, never the run.
type MalformedDocumentError struct {
	Side      Side
	FieldPath FieldPath
	Reason    string
}

func (e *MalformedDocumentError) Error() string {
	if e.FieldPath == "" {
		return fmt.Sprintf("malformed %s document: %s", e.Side, e.Reason)
	}

	return fmt.Sprintf("malformed %s document at %s: %s", e.Side, e.FieldPath, e.Reason)
}
