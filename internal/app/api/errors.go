package api

import (
	"context"
	"errors"
	"strings"
)

const graphqlErrorPrefix = "graphql: "

// ErrOffline wraps failures to reach the API or to read its answer.
var ErrOffline = errors.New("api unreachable")

// GraphQLError is an error reported by the API in the response's errors array.
type GraphQLError struct {
	Message string
}

func (e *GraphQLError) Error() string {
	return graphqlErrorPrefix + e.Message
}

// Unauthorized reports whether the API rejected the session token.
func (e *GraphQLError) Unauthorized() bool {
	return e.Message == "Unauthorized"
}

// classify turns errors from the GraphQL transport into GraphQLError or ErrOffline.
func classify(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	if strings.HasPrefix(msg, graphqlErrorPrefix) && !strings.HasPrefix(msg, graphqlErrorPrefix+"server returned a non-200") {
		return &GraphQLError{Message: strings.TrimPrefix(msg, graphqlErrorPrefix)}
	}

	if ctx.Err() != nil {
		return errors.Join(ErrOffline, ctx.Err())
	}
	return errors.Join(ErrOffline, err)
}
