/*
Package errs provides custom error types and application-level error code constants.

This file maps every code to its user-facing message and HTTP status.
*/
package errs

import "net/http"

var errorMap = map[int]CustomError{
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrFormParseFailed:       {Code: ErrFormParseFailed, Message: "Failed to process submitted data.", Status: http.StatusBadRequest},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	ErrUnauthorized:     {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrSessionLoading:   {Code: ErrSessionLoading, Message: "Loading..", Status: http.StatusServiceUnavailable},
	ErrWebSocketUpgrade: {Code: ErrWebSocketUpgrade, Message: "Live updates are unavailable.", Status: http.StatusBadRequest},
	ErrOriginNotAllowed: {Code: ErrOriginNotAllowed, Message: "Request origin is not allowed.", Status: http.StatusForbidden},

	ErrOffline:          {Code: ErrOffline, Message: "You are offline", Status: http.StatusBadGateway},
	ErrUpstreamRejected: {Code: ErrUpstreamRejected, Message: "%s", Status: http.StatusUnprocessableEntity},

	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
