package verification

import (
	"errors"
	"strings"
)

// Terminal rejections returned by Pipeline.Submit. All are user-correctable
// and map to a 400 response; anything else coming out of Submit is an
// infrastructure failure and maps to a 500.
var (
	ErrDuplicateName    = errors.New("a certificate with this name already exists")
	ErrDuplicateContent = errors.New("this certificate file has already been uploaded")
	ErrMissingField     = errors.New("issuer and course are required")
)

// MatchError reports which claimed fields the extracted text failed to
// support. The raw extracted text is never included in the error.
type MatchError struct {
	Fields []string
}

func (e *MatchError) Error() string {
	return "certificate content does not match the entered details (" +
		strings.Join(e.Fields, ", ") + "). Please ensure accuracy."
}

// IsRejection reports whether err is a terminal user-correctable rejection
// as opposed to an infrastructure failure
func IsRejection(err error) bool {
	var matchErr *MatchError
	var extractionErr *ExtractionError
	return errors.Is(err, ErrDuplicateName) ||
		errors.Is(err, ErrDuplicateContent) ||
		errors.Is(err, ErrMissingField) ||
		errors.As(err, &matchErr) ||
		errors.As(err, &extractionErr)
}
