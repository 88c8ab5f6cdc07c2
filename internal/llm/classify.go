package llm

import (
	"errors"
	"net/http"

	"google.golang.org/genai"
)

type statusCarrier interface {
	HTTPStatus() int
}

type responseCarrier interface {
	HTTPResponse() *http.Response
}

// statusResolver extracts a status code from one known error shape.
type statusResolver struct {
	name    string
	resolve func(err error) (int, bool)
}

// statusResolvers are consulted in order; the first one that recognizes the
// error decides the status.
var statusResolvers = []statusResolver{
	{name: "direct", resolve: directStatus},
	{name: "response", resolve: responseStatus},
	{name: "error_code", resolve: errorCodeStatus},
}

func directStatus(err error) (int, bool) {
	var sc statusCarrier
	if errors.As(err, &sc) && sc.HTTPStatus() != 0 {
		return sc.HTTPStatus(), true
	}
	return 0, false
}

func responseStatus(err error) (int, bool) {
	var rc responseCarrier
	if errors.As(err, &rc) {
		if resp := rc.HTTPResponse(); resp != nil && resp.StatusCode != 0 {
			return resp.StatusCode, true
		}
	}
	return 0, false
}

func errorCodeStatus(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code != 0 {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil && apiErrPtr.Code != 0 {
		return apiErrPtr.Code, true
	}
	return 0, false
}

// StatusOf resolves the status code carried by err. The second return value is
// false when no known shape carries one.
func StatusOf(err error) (int, bool) {
	if err == nil {
		return 0, false
	}
	for _, r := range statusResolvers {
		if code, ok := r.resolve(err); ok {
			return code, true
		}
	}
	return 0, false
}

// IsRetryable reports whether err signals a transient overload of the model
// service. Only 503 qualifies; rate limits and other 5xx are terminal.
func IsRetryable(err error) bool {
	code, ok := StatusOf(err)
	return ok && code == http.StatusServiceUnavailable
}
