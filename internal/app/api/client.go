/*
Package api is the typed client for the journal GraphQL API.

Requests travel through the http.Client it is given, normally one whose transport is the
network link, so token injection and sign-out on "Unauthorized" apply to every operation.
*/
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/machinebox/graphql"

	"journal/internal/pkg/logx"
)

// Client runs the client's GraphQL operations.
type Client struct {
	gql     *graphql.Client
	timeout time.Duration
}

// NewClient returns a Client for endpoint that sends through httpClient.
func NewClient(endpoint string, httpClient *http.Client, timeout time.Duration) *Client {
	gql := graphql.NewClient(endpoint, graphql.WithHTTPClient(httpClient))
	logger := logx.Component("graphql")
	gql.Log = func(s string) { logger.Trace().Msg(s) }

	return &Client{gql: gql, timeout: timeout}
}

func (c *Client) run(ctx context.Context, req *graphql.Request, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return classify(ctx, c.gql.Run(ctx, req, out))
}

// Login exchanges credentials for a user and token.
func (c *Client) Login(ctx context.Context, creds Credentials) (User, error) {
	req := graphql.NewRequest(loginMutation)
	req.Var("user", creds)

	var out struct {
		Login User `json:"login"`
	}
	if err := c.run(ctx, req, &out); err != nil {
		return User{}, err
	}
	return out.Login, nil
}

// Signup creates an account and returns it with a token.
func (c *Client) Signup(ctx context.Context, creds Credentials) (User, error) {
	req := graphql.NewRequest(signupMutation)
	req.Var("user", creds)

	var out struct {
		CreateUser User `json:"createUser"`
	}
	if err := c.run(ctx, req, &out); err != nil {
		return User{}, err
	}
	return out.CreateUser, nil
}

// Experiences lists the signed-in user's experiences.
func (c *Client) Experiences(ctx context.Context) ([]Experience, error) {
	req := graphql.NewRequest(experiencesMinimalQuery)

	var out struct {
		Experiences []Experience `json:"experiences"`
	}
	if err := c.run(ctx, req, &out); err != nil {
		return nil, err
	}
	return out.Experiences, nil
}

// CreateExperienceFieldsCollection creates an experience together with its field definitions.
func (c *Client) CreateExperienceFieldsCollection(ctx context.Context, exp NewExperience, fields []NewField) (FieldsCollection, error) {
	req := graphql.NewRequest(createExperienceFieldsCollectionMutation)
	req.Var("experienceFields", map[string]any{
		"experience": exp,
		"fields":     fields,
	})

	var out struct {
		Collection FieldsCollection `json:"createExperienceFieldsCollection"`
	}
	if err := c.run(ctx, req, &out); err != nil {
		return FieldsCollection{}, err
	}
	return out.Collection, nil
}
