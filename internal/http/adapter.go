package http

import (
	"errors"
	"net/http"

	"dynamic-routing/internal/models"
	"dynamic-routing/internal/shared/loggers"
	"dynamic-routing/internal/shared/svcerrors"
)

// ErrorResponse is the JSON body of every failed request.
//
// Example (partially applied update):
//
//	{
//	  "requestId": "01JG3Z...",
//	  "errorCategory": "resource_conflict",
//	  "errorCode": "SR_4090",
//	  "errorDescription": "window for label \"adyen\" kept changing, gave up after 5 attempts",
//	  "details": [{"target": "adyen", "code": "SR_4090", "message": "..."}],
//	  "results": [
//	    {"label": "stripe", "updated": true},
//	    {"label": "adyen", "updated": false, "error_code": "SR_4090"}
//	  ]
//	}
type ErrorResponse struct {
	RequestID        string                     `json:"requestId"`
	ErrorCategory    string                     `json:"errorCategory"`
	ErrorCode        string                     `json:"errorCode"`
	ErrorDescription string                     `json:"errorDescription"`
	Details          []svcerrors.Detail         `json:"details,omitempty"`
	Results          []models.LabelUpdateResult `json:"results,omitempty"`
}

// partialUpdateError keeps the per-label results of an update that failed for some labels,
// so the error body still reports the labels that were committed.
type partialUpdateError struct {
	err     error
	results []models.LabelUpdateResult
}

func (e *partialUpdateError) Error() string { return e.err.Error() }

func (e *partialUpdateError) Unwrap() error { return e.err }

// errorHandlingAdapter turns an AppHttpHandler into an http.HandlerFunc. Any error that is
// not a ServiceError is reported as SYS_9001.
func errorHandlingAdapter(httpHandler AppHttpHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := httpHandler.Handle(w, r)
		if err == nil {
			return
		}

		svcErr, ok := svcerrors.AsServiceError(err)
		if !ok {
			svcErr = svcerrors.NewInternalErrorUndefined(err)
		}
		if svcErr.IsInternalError() || svcErr.HttpStatusCode == http.StatusServiceUnavailable {
			loggers.Ctx(r.Context()).Error().
				Err(svcErr.Cause).
				Str(loggers.FieldErrorCode, svcErr.Code).
				Msg("request failed in handler")
		}

		var results []models.LabelUpdateResult
		var partial *partialUpdateError
		if errors.As(err, &partial) {
			results = partial.results
		}
		writeErrorResponse(w, r, svcErr, results)
	}
}

func writeErrorResponse(w http.ResponseWriter, r *http.Request, svcErr *svcerrors.ServiceError, results []models.LabelUpdateResult) {
	// middlewares label logs and metrics with the error
	if appWriter, ok := w.(*appResponseWriter); ok {
		appWriter.SetServiceError(svcErr)
	}

	loggers.Ctx(r.Context()).Debug().
		Str(loggers.FieldErrorCode, svcErr.Code).
		Int(loggers.FieldHttpStatus, svcErr.HttpStatusCode).
		Msg(svcErr.Message)

	_ = writeJSON(w, svcErr.HttpStatusCode, ErrorResponse{
		RequestID:        requestID(r),
		ErrorCategory:    svcErr.Category,
		ErrorCode:        svcErr.Code,
		ErrorDescription: svcErr.Message,
		Details:          svcErr.Details,
		Results:          results,
	})
}
