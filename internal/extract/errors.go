// Package extract converts raw resume documents (PDF or DOCX byte streams)
// into normalized plain text.
package extract

import (
	"fmt"
	"strings"
)

// UnsupportedFormatError indicates the caller supplied a format hint outside
// the supported set. The request is not retryable with the same input.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format %q: supported formats are %s", e.Format, strings.Join(SupportedFormats(), ", "))
}

// ExtractionError indicates the document could not be read or yielded zero
// extractable text. It is never downgraded to an empty successful result;
// the caller must supply a different file.
type ExtractionError struct {
	Format  string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to extract %s text: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to extract %s text: %s", e.Format, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
