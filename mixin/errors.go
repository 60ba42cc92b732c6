package mixin

import (
	"errors"
	"fmt"
)

var errProviderQuota = errors.New("provider quota exceeded")

// CompositionError reports a dynamic provider failing during evaluation.
// Providers applied before the failing one stay applied; composition is not
// transactional.
type CompositionError struct {
	Provider string
	Index    int
	cause    error
}

func (e *CompositionError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("compose mixin[%d] %s: %v", e.Index, e.Provider, e.cause)
	}
	return fmt.Sprintf("compose mixin[%d]: %v", e.Index, e.cause)
}

func (e *CompositionError) Unwrap() error {
	return e.cause
}

// IsQuotaExceeded reports whether err is a provider quota failure.
func IsQuotaExceeded(err error) bool {
	return errors.Is(err, errProviderQuota)
}
