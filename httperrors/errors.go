package httperrors

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

type Kind int

const (
	KindGeneric Kind = iota
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindRetriesExhausted
)

func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not found"
	case KindRetriesExhausted:
		return "retries exhausted"
	default:
		return "generic"
	}
}

// HttpError is a terminal request failure. Rate limited responses are
// never reported through it, they are absorbed by the retry loop.
type HttpError struct {
	kind       Kind
	statusCode int
	endpoint   string
	err        error
}

func New(kind Kind, statusCode int, endpoint string, internalError error) HttpError {
	return HttpError{
		kind:       kind,
		statusCode: statusCode,
		endpoint:   endpoint,
		err:        internalError,
	}
}

// FromStatusCode maps a non-429 status of 400 or above to its failure
// kind.
func FromStatusCode(statusCode int, endpoint string) HttpError {
	switch statusCode {
	case http.StatusUnauthorized:
		return New(KindAuthentication, statusCode, endpoint, errors.New("authentication failed"))
	case http.StatusForbidden:
		return New(KindAuthorization, statusCode, endpoint, errors.New("authorization failed"))
	case http.StatusNotFound:
		return New(KindNotFound, statusCode, endpoint, errors.New("resource not found"))
	default:
		return New(KindGeneric, statusCode, endpoint, errors.Errorf("request failed with status %d", statusCode))
	}
}

func RetriesExhausted(maxRetries int, endpoint string) HttpError {
	return New(
		KindRetriesExhausted,
		http.StatusTooManyRequests,
		endpoint,
		errors.Errorf("no response after %d attempts", maxRetries),
	)
}

func (e HttpError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.kind, e.endpoint, e.err)
}

func (e HttpError) Kind() Kind {
	return e.kind
}

func (e HttpError) StatusCode() int {
	return e.statusCode
}

func (e HttpError) Endpoint() string {
	return e.endpoint
}

// KindOf extracts the failure kind from an error chain. The second
// result is false for errors outside the taxonomy, e.g. transport
// failures.
func KindOf(err error) (Kind, bool) {
	httpError := HttpError{}
	if errors.As(err, &httpError) {
		return httpError.kind, true
	}
	return KindGeneric, false
}
