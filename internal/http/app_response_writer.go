package http

import (
	"net/http"

	"dynamic-routing/internal/shared/svcerrors"

	"github.com/go-chi/chi/v5/middleware"
)

// appResponseWriter records the status (via chi's WrapResponseWriter) and the service
// error of a request, so middlewares running after the handler can label logs and metrics.
type appResponseWriter struct {
	middleware.WrapResponseWriter
	svcError *svcerrors.ServiceError
}

func newAppResponseWriter(w http.ResponseWriter, protoMajor int) *appResponseWriter {
	return &appResponseWriter{
		WrapResponseWriter: middleware.NewWrapResponseWriter(w, protoMajor),
	}
}

func (w *appResponseWriter) SetServiceError(svcError *svcerrors.ServiceError) {
	w.svcError = svcError
}

// ErrorCode is "" for successful requests.
func (w *appResponseWriter) ErrorCode() string {
	if w.svcError == nil {
		return ""
	}
	return w.svcError.Code
}

// FailedLabels counts the per-label details of the recorded error.
func (w *appResponseWriter) FailedLabels() int {
	if w.svcError == nil {
		return 0
	}
	return len(w.svcError.Details)
}
