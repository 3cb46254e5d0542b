package http

import (
	"net/http"
	"strings"

	"github.com/oklog/ulid/v2"
)

const (
	headerRequestID   = "x-request-id"
	headerContentType = "content-type"

	maxRequestIDLen = 128
)

// requestID returns the caller supplied request id, or "" when it is absent or too long
// to be echoed into logs and responses.
func requestID(r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(headerRequestID))
	if len(id) > maxRequestIDLen {
		return ""
	}
	return id
}

func setRequestID(r *http.Request, requestID string) {
	r.Header.Set(headerRequestID, requestID)
}

// newRequestID returns a lexicographically sortable id (ULID, 26 chars).
var newRequestID = func() string {
	return ulid.Make().String()
}
