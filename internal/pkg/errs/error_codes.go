/*
Package errs provides custom error types and application-level error code constants.

The codes identify client-side failures both in logs and in the JSON envelopes served by
the journal client's small API surface.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that submitted form or query values failed validation.
	ErrInvalidParams = 1001

	// ErrFormParseFailed indicates failure to parse URL-encoded form data.
	ErrFormParseFailed = 1005

	// ErrRequestEntityTooLarge indicates that the request body exceeded the configured limit.
	ErrRequestEntityTooLarge = 1006

	// ErrRateLimitExceeded indicates that the client sent too many sign-in attempts.
	ErrRateLimitExceeded = 1007
)

// 2xxx: Session and Navigation Errors
const (
	// ErrUnauthorized indicates that the current session has no token.
	ErrUnauthorized = 2001

	// ErrSessionLoading indicates that the persisted session has not been rehydrated yet.
	ErrSessionLoading = 2002

	// ErrWebSocketUpgrade indicates that the live session feed could not be opened.
	ErrWebSocketUpgrade = 2003

	// ErrOriginNotAllowed indicates that a form was posted from a page this client did not serve.
	ErrOriginNotAllowed = 2004
)

// 3xxx: Upstream API Errors
const (
	// ErrOffline indicates that the GraphQL endpoint could not be reached.
	ErrOffline = 3001

	// ErrUpstreamRejected indicates that the GraphQL endpoint answered with an error.
	ErrUpstreamRejected = 3002
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified internal error.
	ErrUnknown = 5000
)
