package successrates

import (
	"context"
	"errors"
	"fmt"

	"dynamic-routing/internal/shared/svcerrors"
)

// SuccessRateService errors
const (
	codeValidationFailed = "SR_1000"
	codeContention       = "SR_4090"

	codeStorageUnavailable = "SR_5030"
	codeRequestAbandoned   = "SR_5031"

	codeInternalUnexpected = "SR_9000"
)

// errValidationFailed returns an error for malformed requests.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

// errContention returns an error when a window kept changing under every attempt.
func errContention(label string, attempts int, cause error) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeContention,
		fmt.Sprintf("window for label %q kept changing, gave up after %d attempts", label, attempts), cause)
}

// errStorage maps a storage failure to StorageUnavailable. Cancellation and deadline
// expiry get their own code so callers can tell them apart from a broken backend.
func errStorage(cause error) *svcerrors.ServiceError {
	if errors.Is(cause, context.Canceled) || errors.Is(cause, context.DeadlineExceeded) {
		return svcerrors.NewUnavailableError(codeRequestAbandoned, "request abandoned before the window was stored", cause)
	}
	return svcerrors.NewUnavailableError(codeStorageUnavailable, "window storage unavailable", fmt.Errorf("windowStoreFailed: %w", cause))
}

func errInternalUnexpected(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalUnexpected, cause)
}

// asServiceError wraps anything that is not already a ServiceError as an internal error.
func asServiceError(err error) *svcerrors.ServiceError {
	if svcErr, ok := svcerrors.AsServiceError(err); ok {
		return svcErr
	}
	return errInternalUnexpected(err)
}
