package domain

import (
	"errors"
	"fmt"
)

var (
	// Extraction stage. All three are fatal to the upload attempt; transient
	// bytes are discarded before the error surfaces.
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrExtractionFailed     = errors.New("text extraction failed")
	ErrInsufficientText     = errors.New("insufficient extracted text")

	// Ownership / existence.
	ErrResumeNotFound = errors.New("resume not found")

	// Analysis stage.
	ErrProviderUnavailable = errors.New("analysis provider unavailable")
	ErrMalformedResponse   = errors.New("malformed provider response")
	ErrIncompleteAnalysis  = errors.New("incomplete analysis")
	ErrAnalysisFailed      = errors.New("analysis failed")

	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrTemporary    = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

func transitionError(from, to ResumeStatus) error {
	return fmt.Errorf("illegal transition %s -> %s", from, to)
}
