package ratesource

import "errors"

// Source-level errors. These are swallowed (logged, not surfaced) by the
// chain policy in the engine unless strict fallback is enabled.
var (
	// ErrInvalidResponse marks a transport-level failure (network error or
	// non-200 status).
	ErrInvalidResponse = errors.New("invalid response from rate provider")
	// ErrAPIError marks a well-formed payload whose success flag was false.
	ErrAPIError = errors.New("rate provider returned unsuccessful response")
	// ErrDecode marks a malformed payload.
	ErrDecode = errors.New("could not decode rate provider payload")
	// ErrInvalidData marks an unreadable scrape response body.
	ErrInvalidData = errors.New("could not parse scraped page data")
)
