package ssd

import "fmt"

// RequestError wraps a transport-level failure: connection refused, DNS,
// timeout. The request never produced a usable HTTP response.
type RequestError struct {
	URL string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// StatusError reports a non-2xx response. Body carries a snippet of the
// response for diagnosis.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// DecodeError reports a 2xx response whose body is not valid JSON.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// APIError carries the provider's own error message, delivered as an
// "error" key in an otherwise well-formed JSON body. The key is
// authoritative: any sibling data is discarded.
type APIError struct {
	URL     string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error from %s: %s", e.URL, e.Message)
}
