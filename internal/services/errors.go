package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel markers for failure classification. Pipeline code wraps errors with
// one of these so callers can branch with errors.Is and the HTTP layer can map
// failures to stable wire tags.
var (
	ErrInvalidURL       = errors.New("invalid url")
	ErrUnavailable      = errors.New("transcript unavailable")
	ErrSummarization    = errors.New("summarization failed")
	ErrConflict         = errors.New("conflict")
	ErrCapabilityAbsent = errors.New("capability absent")
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrTimeout          = errors.New("timeout")
	ErrTransient        = errors.New("transient failure")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ProviderError carries the transcript provider's failure reason so outcomes
// can expose a sub-reason beyond the generic unavailable tag. It matches
// ErrUnavailable under errors.Is.
type ProviderError struct {
	Reason string
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Is lets ProviderError satisfy errors.Is(err, ErrUnavailable) regardless of
// the underlying cause.
func (e *ProviderError) Is(target error) bool {
	return target == ErrUnavailable
}

// Tag returns the stable wire classification for an error. Provider failures
// surface their sub-reason when one was recorded.
func Tag(err error) string {
	if err == nil {
		return ""
	}
	var provider *ProviderError
	if errors.As(err, &provider) && provider.Reason != "" {
		return provider.Reason
	}
	switch {
	case errors.Is(err, ErrInvalidURL):
		return "invalid_url"
	// Checked before the timeout case: a timed-out summarizer call carries
	// both sentinels and must not report the transcript stage.
	case errors.Is(err, ErrSummarization):
		return "summarization_failed"
	case errors.Is(err, ErrUnavailable), errors.Is(err, ErrTimeout):
		return "transcript_unavailable"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrCapabilityAbsent):
		return "capability_absent"
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	default:
		return "internal_error"
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
