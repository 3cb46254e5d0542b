package http

import (
	"errors"
	"io"
	"net/http"

	"dynamic-routing/internal/shared/svcerrors"

	"github.com/bytedance/sonic"
)

const maxRequestBodyBytes = 1 << 20

const (
	codeMalformedBody  = "SR_1001"
	codeBodyTooLarge   = "SR_1002"
	codeEncodeResponse = "SR_9001"

	contentTypeJSON = "application/json"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

// decodeJSONBody reads at most 1MB of the request body into dst.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return svcerrors.NewInvalidArgumentError(codeBodyTooLarge, "request body too large: must be <= 1MB", err)
		}
		return svcerrors.NewInvalidArgumentError(codeMalformedBody, "failed to read request body", err)
	}
	if len(body) == 0 {
		return svcerrors.NewInvalidArgumentError(codeMalformedBody, "empty request body", nil)
	}
	if err := sonic.Unmarshal(body, dst); err != nil {
		return svcerrors.NewInvalidArgumentError(codeMalformedBody, "invalid json", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	data, err := sonic.Marshal(v)
	if err != nil {
		return svcerrors.NewInternalError(codeEncodeResponse, err)
	}

	w.Header().Set(headerContentType, contentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(data)
	return nil
}
