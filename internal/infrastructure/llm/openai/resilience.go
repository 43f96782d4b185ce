package openai

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/akozyrev/resume-insight/internal/infrastructure/resilience"
)

// classifyProviderError decides which failures count against the provider's
// circuit breaker. Only signals of provider ill health are recorded; caller
// mistakes and cancelled requests must not trip the breaker.
func classifyProviderError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{RecordFailure: false}
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode >= http.StatusInternalServerError:
			return resilience.ErrorClassification{RecordFailure: true}
		case statusErr.StatusCode == http.StatusTooManyRequests:
			return resilience.ErrorClassification{RecordFailure: true}
		default:
			return resilience.ErrorClassification{RecordFailure: false}
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.ErrorClassification{RecordFailure: true}
	}

	// Connection refused and friends arrive as plain *url.Error wrapped
	// syscall errors; treat any other transport failure as provider trouble.
	return resilience.ErrorClassification{RecordFailure: true}
}
