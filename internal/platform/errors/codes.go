package errors

import (
	"net/http"
	"strconv"
)

// ErrorCode classifies failures for transports and callers
// values go over the wire in the envelope, so only ever append
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors
	ErrorCodeUnknown ErrorCode = iota
	// ErrorCodePanic is for panics recovered by middleware
	ErrorCodePanic
	// ErrorCodeUnavailable is for transient failures where a retry may succeed
	ErrorCodeUnavailable
	// ErrorCodeTooManyRequests is for rate limiting
	ErrorCodeTooManyRequests
	// ErrorCodeInvalidArgument is for bad input parameters and bad configuration
	ErrorCodeInvalidArgument
	// ErrorCodeValidation is for struct validation failures
	ErrorCodeValidation
	// ErrorCodeJSON is for JSON parsing errors
	ErrorCodeJSON
	// ErrorCodeNotFound is for missing resources
	ErrorCodeNotFound
	// ErrorCodeUpstream is for a remote dependency answering with an unexpected status
	ErrorCodeUpstream
	// ErrorCodeTimeout is for deadlines hit while waiting on a dependency
	ErrorCodeTimeout
	// ErrorCodeMethodNotAllowed is for a known route hit with the wrong verb
	ErrorCodeMethodNotAllowed
)

var codeInfo = map[ErrorCode]struct {
	name   string
	status int
}{
	ErrorCodeUnknown:          {"unknown", http.StatusInternalServerError},
	ErrorCodePanic:            {"panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:      {"unavailable", http.StatusServiceUnavailable},
	ErrorCodeTooManyRequests:  {"too_many_requests", http.StatusTooManyRequests},
	ErrorCodeInvalidArgument:  {"invalid_argument", http.StatusUnprocessableEntity},
	ErrorCodeValidation:       {"validation", http.StatusBadRequest},
	ErrorCodeJSON:             {"json", http.StatusBadRequest},
	ErrorCodeNotFound:         {"not_found", http.StatusNotFound},
	ErrorCodeUpstream:         {"upstream", http.StatusBadGateway},
	ErrorCodeTimeout:          {"timeout", http.StatusGatewayTimeout},
	ErrorCodeMethodNotAllowed: {"method_not_allowed", http.StatusMethodNotAllowed},
}

// String names the code for logs
func (c ErrorCode) String() string {
	if i, ok := codeInfo[c]; ok {
		return i.name
	}
	return "code(" + strconv.Itoa(int(c)) + ")"
}

// HTTPStatusCode maps a code to its response status; unknown codes are 500
func HTTPStatusCode(c ErrorCode) int {
	if i, ok := codeInfo[c]; ok {
		return i.status
	}
	return http.StatusInternalServerError
}

// Retryable reports whether a later attempt may succeed
// an upstream 5xx is not in the set, the caller decides on its own budget
func Retryable(err error) bool {
	switch CodeOf(err) {
	case ErrorCodeUnavailable, ErrorCodeTooManyRequests, ErrorCodeTimeout:
		return true
	default:
		return false
	}
}
