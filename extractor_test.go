package jwtinspect

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_AuthHeaderTokenExtractor(t *testing.T) {
	testCases := []struct {
		name      string
		header    string
		wantToken string
		wantError error
	}{
		{name: "no header"},
		{name: "bearer token", header: "Bearer i-am-token", wantToken: "i-am-token"},
		{name: "scheme is case insensitive", header: "bearer i-am-token", wantToken: "i-am-token"},
		{name: "no bearer", header: "i-am-token", wantError: ErrBadAuthHeader},
		{name: "other scheme", header: "Basic dXNlcjpwYXNz", wantError: ErrBadAuthHeader},
		{name: "bearer without token", header: "Bearer ", wantError: ErrBadAuthHeader},
		{name: "too many parts", header: "Bearer a b", wantError: ErrBadAuthHeader},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if testCase.header != "" {
				r.Header.Set("Authorization", testCase.header)
			}

			token, err := AuthHeaderTokenExtractor(r)
			if testCase.wantError != nil {
				assert.ErrorIs(t, err, testCase.wantError)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantToken, token)
		})
	}
}

func Test_CookieTokenExtractor(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	token, err := CookieTokenExtractor("token")(r)
	require.NoError(t, err)
	assert.Empty(t, token)

	r.AddCookie(&http.Cookie{Name: "token", Value: "a.b.c"})
	token, err = CookieTokenExtractor("token")(r)
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", token)
}

func Test_ParameterTokenExtractor(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?access_token=a.b.c", nil)
	token, err := ParameterTokenExtractor("access_token")(r)
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", token)
}

func Test_MultiTokenExtractor(t *testing.T) {
	noToken := func(*http.Request) (string, error) { return "", nil }
	failing := func(*http.Request) (string, error) { return "", errors.New("extraction fails") }
	found := func(*http.Request) (string, error) { return "a.b.c", nil }

	r := httptest.NewRequest(http.MethodGet, "/", nil)

	token, err := MultiTokenExtractor(noToken, found, failing)(r)
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", token)

	_, err = MultiTokenExtractor(noToken, failing, found)(r)
	assert.EqualError(t, err, "extraction fails")

	token, err = MultiTokenExtractor(noToken)(r)
	require.NoError(t, err)
	assert.Empty(t, token)
}
