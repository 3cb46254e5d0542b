package http

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"dynamic-routing/internal/shared/loggers"
	"dynamic-routing/internal/shared/svcerrors"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func setupMiddleware(router *chi.Mux, httpLogger loggers.Logger, requestTimeout time.Duration) {
	router.Use(mwRequestID(httpLogger))
	router.Use(mwAppResponseWriter)
	router.Use(mwPrometheus)
	router.Use(mwRequestCompletionLog)
	router.Use(mwRecoverer)
	router.Use(middleware.NoCache)
	router.Use(mwRequestTimeout(requestTimeout))
}

// mwAppResponseWriter initializes the appResponseWriter once and passes it through the middleware chain.
func mwAppResponseWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		appWriter := newAppResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(appWriter, r)
	})
}

// responseOutcome returns the status and error code recorded on w, defaulting to 200.
func responseOutcome(w http.ResponseWriter) (int, string) {
	status, errorCode := 0, ""
	if appWriter, ok := w.(*appResponseWriter); ok {
		status = appWriter.Status()
		errorCode = appWriter.ErrorCode()
	}
	if status == 0 {
		status = http.StatusOK
	}
	return status, errorCode
}

// mwPrometheus records HTTP request counts and latency by route pattern, not raw path,
// so label cardinality stays bounded.
func mwPrometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		routePattern := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			routePattern = rctx.RoutePattern()
		}

		status, errorCode := responseOutcome(w)
		labels := []string{r.Method, routePattern, strconv.Itoa(status), errorCode}
		metricHTTPRequestsTotal.WithLabelValues(labels...).Inc()
		metricHTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
	})
}

// mwRequestID extracts or generates a request ID and attaches a request-scoped logger to context.
func mwRequestID(httpLogger loggers.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := requestID(r)
			if requestID == "" {
				requestID = newRequestID()
				setRequestID(r, requestID)
			}
			w.Header().Set(headerRequestID, requestID)

			ctxWithReqLogger := httpLogger.With().
				Str(loggers.FieldRequestID, requestID).
				Logger().WithContext(r.Context())

			next.ServeHTTP(w, r.WithContext(ctxWithReqLogger))
		})
	}
}

// mwRequestCompletionLog logs one line per request once the handler returns.
func mwRequestCompletionLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			status, errorCode := responseOutcome(w)
			event := loggers.Ctx(r.Context()).Info()
			if errorCode != "" {
				event = event.Str(loggers.FieldErrorCode, errorCode)
			}
			if appWriter, ok := w.(*appResponseWriter); ok && appWriter.FailedLabels() > 0 {
				event = event.Int(loggers.FieldFailedLabels, appWriter.FailedLabels())
			}
			event.
				Str(loggers.FieldHttpMethod, r.Method).
				Str(loggers.FieldHttpPath, r.URL.Path).
				Int(loggers.FieldHttpStatus, status).
				Int64(loggers.FieldDuration, time.Since(start).Milliseconds()).
				Msg("request completed")
		}()

		next.ServeHTTP(w, r)
	})
}

// mwRecoverer provides panic recovery middleware.
func mwRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				loggers.Ctx(r.Context()).Error().
					Bytes(loggers.FieldErrorStack, debug.Stack()).
					Msgf("http panic recovered: %v", p)

				panicErr, ok := p.(error)
				if !ok {
					panicErr = fmt.Errorf("%v", p)
				}
				writeErrorResponse(w, r, svcerrors.NewInternalErrorPanic(panicErr), nil)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// mwRequestTimeout bounds every request with a deadline. The deadline only flows through
// the context: storage calls observe it and the service reports SR_5031 on expiry.
// A non-positive timeout disables it.
func mwRequestTimeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
