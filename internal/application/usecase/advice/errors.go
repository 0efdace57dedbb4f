// Package advice collects, ranks and tracks advisory recommendations from external providers.
package advice

import (
	"context"
	"errors"
	"strings"

	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

// failureMessages describes each provider failure code.
var failureMessages = map[domainerror.AnalyticsErrorCode]string{
	domainerror.ErrCodeProviderTimeout:     "advisory provider did not answer in time",
	domainerror.ErrCodeProviderRateLimited: "advisory provider rate limit reached",
	domainerror.ErrCodeProviderAuth:        "advisory provider rejected the credentials",
	domainerror.ErrCodeProviderUnavailable: "advisory provider is unavailable",
	domainerror.ErrCodeProviderParse:       "advisory provider returned a malformed answer",
	domainerror.ErrCodeProviderUnknown:     "advisory provider failed",
}

// retryable lists the failure codes worth retrying on the next refresh.
var retryable = map[domainerror.AnalyticsErrorCode]bool{
	domainerror.ErrCodeProviderTimeout:     true,
	domainerror.ErrCodeProviderRateLimited: true,
	domainerror.ErrCodeProviderUnavailable: true,
	domainerror.ErrCodeProviderParse:       true,
	domainerror.ErrCodeProviderUnknown:     true,
}

// IsRetryable reports whether a provider failure is transient.
func IsRetryable(err *domainerror.AnalyticsError) bool {
	return err != nil && retryable[err.Code]
}

// classifyFailure converts a provider error into a coded ProviderFailure.
func classifyFailure(providerID string, err error) *domainerror.AnalyticsError {
	code := classifyCode(err)
	return domainerror.NewAnalyticsError(
		code,
		failureMessages[code],
		providerID,
		errors.Join(domainerror.ErrProviderFailure, err),
	)
}

func classifyCode(err error) domainerror.AnalyticsErrorCode {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domainerror.ErrCodeProviderTimeout
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case containsAny(errStr, "rate limit", "quota", "429", "resource exhausted"):
		return domainerror.ErrCodeProviderRateLimited
	case containsAny(errStr, "401", "403", "invalid api key", "unauthorized", "authentication", "permission denied"):
		return domainerror.ErrCodeProviderAuth
	case containsAny(errStr, "parse", "json", "unmarshal", "decode", "malformed"):
		return domainerror.ErrCodeProviderParse
	case containsAny(errStr, "connection", "network", "dial", "timeout", "unavailable", "503", "not configured"):
		return domainerror.ErrCodeProviderUnavailable
	default:
		return domainerror.ErrCodeProviderUnknown
	}
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
