package jwtinspect

import (
	"errors"
	"net/http"
	"strings"
)

// ErrBadAuthHeader is returned when the Authorization header is present but
// is not a bearer credential.
var ErrBadAuthHeader = errors.New("authorization header format must be Bearer {token}")

// TokenExtractor pulls a token out of a request. A request that simply
// carries no token yields an empty string and a nil error; an error means a
// token was offered but malformed.
type TokenExtractor func(r *http.Request) (string, error)

// AuthHeaderTokenExtractor reads a bearer token from the Authorization header.
func AuthHeaderTokenExtractor(r *http.Request) (string, error) {
	return parseBearer(r.Header.Get("Authorization"))
}

func parseBearer(header string) (string, error) {
	if header == "" {
		return "", nil
	}

	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" || strings.ContainsAny(token, " \t") {
		return "", ErrBadAuthHeader
	}

	return token, nil
}

// CookieTokenExtractor reads the token from the named cookie.
func CookieTokenExtractor(name string) TokenExtractor {
	return func(r *http.Request) (string, error) {
		cookie, err := r.Cookie(name)
		if errors.Is(err, http.ErrNoCookie) {
			return "", nil
		}
		if err != nil {
			return "", err
		}
		return cookie.Value, nil
	}
}

// ParameterTokenExtractor reads the token from a query string parameter.
func ParameterTokenExtractor(param string) TokenExtractor {
	return func(r *http.Request) (string, error) {
		return r.URL.Query().Get(param), nil
	}
}

// MultiTokenExtractor tries each extractor in turn and returns the first
// non-empty token. The first error stops the search.
func MultiTokenExtractor(extractors ...TokenExtractor) TokenExtractor {
	return func(r *http.Request) (string, error) {
		for _, extract := range extractors {
			token, err := extract(r)
			if err != nil {
				return "", err
			}
			if token != "" {
				return token, nil
			}
		}
		return "", nil
	}
}
