package link

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journal/internal/app/session"
)

func newAPI(t *testing.T, body string, seen *http.Header) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = r.Header.Clone()
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, c *http.Client, url string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(`{"query":"query Experiences { experiences { id } }"}`))
	require.NoError(t, err)
	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}

func TestLink_AttachesBearerWhenSignedIn(t *testing.T) {
	var seen http.Header
	srv := newAPI(t, `{"data":{}}`, &seen)

	store := session.NewStore()
	c := &http.Client{Transport: New(store, nil)}

	post(t, c, srv.URL)
	assert.Empty(t, seen.Get("Authorization"))

	store.Set(session.Session{Token: "abc"})
	post(t, c, srv.URL)
	assert.Equal(t, "Bearer abc", seen.Get("Authorization"))
}

func TestLink_DoesNotMutateCallerRequest(t *testing.T) {
	srv := newAPI(t, `{"data":{}}`, nil)
	store := session.NewStore()
	store.Set(session.Session{Token: "abc"})

	req, err := http.NewRequest(http.MethodPost, srv.URL, strings.NewReader(`{}`))
	require.NoError(t, err)
	resp, err := New(store, nil).RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestLink_UnauthorizedClearsSessionAndPassesErrorThrough(t *testing.T) {
	body := `{"data":null,"errors":[{"message":"Unauthorized","path":["experiences"]}]}`
	srv := newAPI(t, body, nil)

	store := session.NewStore()
	store.Set(session.Session{ID: "1", Email: "a@b.io", Token: "abc"})
	c := &http.Client{Transport: New(store, nil, WithVerboseLogging(true))}

	_, got := post(t, c, srv.URL)

	assert.Equal(t, "", store.Get().Token)
	assert.Equal(t, session.Session{}, store.Get())
	assert.JSONEq(t, body, got)
}

func TestLink_UnauthorizedAmongOtherErrors(t *testing.T) {
	srv := newAPI(t, `{"errors":[{"message":"boom"},{"message":"Unauthorized"}]}`, nil)
	store := session.NewStore()
	store.Set(session.Session{Token: "abc"})

	post(t, &http.Client{Transport: New(store, nil)}, srv.URL)
	assert.False(t, store.Get().Authenticated())
}

func TestLink_OtherErrorsLeaveSessionAlone(t *testing.T) {
	cases := []string{
		`{"errors":[{"message":"[email: has already been taken]"}]}`,
		`{"errors":[{"message":"unauthorized access to field"}]}`,
		`{"data":{"experiences":[]}}`,
		`<html>bad gateway</html>`,
	}

	for _, body := range cases {
		srv := newAPI(t, body, nil)
		store := session.NewStore()
		store.Set(session.Session{Token: "abc"})

		_, got := post(t, &http.Client{Transport: New(store, nil)}, srv.URL)
		assert.Equal(t, "abc", store.Get().Token, body)
		assert.Equal(t, body, got)
	}
}

type failingTransport struct{ err error }

func (f failingTransport) RoundTrip(*http.Request) (*http.Response, error) { return nil, f.err }

func TestLink_TransportErrorPropagatesUntouched(t *testing.T) {
	boom := errors.New("connection refused")
	store := session.NewStore()
	store.Set(session.Session{Token: "abc"})

	req, err := http.NewRequest(http.MethodPost, "http://api.invalid/graphql", strings.NewReader(`{}`))
	require.NoError(t, err)

	resp, err := New(store, failingTransport{err: boom}).RoundTrip(req)
	assert.Nil(t, resp)
	assert.Same(t, boom, err)
	assert.Equal(t, "abc", store.Get().Token)
}

func TestOperationName(t *testing.T) {
	mk := func(body string) *http.Request {
		req, err := http.NewRequest(http.MethodPost, "http://x", strings.NewReader(body))
		require.NoError(t, err)
		return req
	}

	assert.Equal(t, "Login", operationName(mk(`{"query":"mutation Login($user: LoginUserInput!) { login(user: $user) { id } }"}`)))
	assert.Equal(t, "Named", operationName(mk(`{"operationName":"Named","query":"{ x }"}`)))
	assert.Equal(t, "anonymous", operationName(mk(`{"query":"{ x }"}`)))

	req, err := http.NewRequest(http.MethodGet, "http://x", nil)
	require.NoError(t, err)
	assert.Equal(t, "unknown", operationName(req))
}
