package httpadapter

import (
	"net/http"

	"github.com/akozyrev/resume-insight/internal/core/domain"
)

// Stable machine codes carried alongside the HTTP status. Clients branch on
// these, not on message text.
const (
	codeValidationFailed     = "VALIDATION_FAILED"
	codeUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"
	codeExtractionFailed     = "EXTRACTION_FAILED"
	codeInsufficientText     = "INSUFFICIENT_TEXT"
	codeNotFound             = "NOT_FOUND"
	codeProviderUnavailable  = "PROVIDER_UNAVAILABLE"
	codeMalformedResponse    = "MALFORMED_PROVIDER_RESPONSE"
	codeIncompleteAnalysis   = "INCOMPLETE_ANALYSIS"
	codeAnalysisFailed       = "ANALYSIS_FAILED"
	codeUnauthorized         = "UNAUTHORIZED"
	codeForbidden            = "FORBIDDEN"
	codeRateLimited          = "RATE_LIMITED"
	codeInternal             = "INTERNAL"
)

func mapError(err error) (int, string) {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, codeValidationFailed
	case domain.IsKind(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, codeUnauthorized
	case domain.IsKind(err, domain.ErrForbidden):
		return http.StatusForbidden, codeForbidden
	case domain.IsKind(err, domain.ErrResumeNotFound):
		return http.StatusNotFound, codeNotFound
	case domain.IsKind(err, domain.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, codeUnsupportedMediaType
	case domain.IsKind(err, domain.ErrInsufficientText):
		return http.StatusUnprocessableEntity, codeInsufficientText
	case domain.IsKind(err, domain.ErrExtractionFailed):
		return http.StatusUnprocessableEntity, codeExtractionFailed
	case domain.IsKind(err, domain.ErrProviderUnavailable):
		return http.StatusServiceUnavailable, codeProviderUnavailable
	case domain.IsKind(err, domain.ErrIncompleteAnalysis):
		return http.StatusBadGateway, codeIncompleteAnalysis
	case domain.IsKind(err, domain.ErrMalformedResponse):
		return http.StatusBadGateway, codeMalformedResponse
	case domain.IsKind(err, domain.ErrAnalysisFailed):
		return http.StatusBadGateway, codeAnalysisFailed
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable, codeProviderUnavailable
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
