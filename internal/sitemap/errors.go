package sitemap

import "fmt"

// RequestError is a network-level failure (DNS, connection, TLS) while
// fetching a sitemap document.
type RequestError struct {
	URL string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request for %s failed: %v", e.URL, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// StatusError is a non-2xx response from a sitemap URL.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.URL, e.StatusCode)
}

// EmptyContentError means the response body was empty after trimming
// whitespace.
type EmptyContentError struct {
	URL string
}

func (e *EmptyContentError) Error() string {
	return fmt.Sprintf("sitemap %s returned empty content", e.URL)
}

// ParseError wraps a malformed-XML failure from the extractor.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse sitemap: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
