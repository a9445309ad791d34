// Package github mirrors a fixed list of pinned repositories into the
// project shape the site renders. Everything here is read-only and
// best-effort; an unreachable API degrades to a static fallback instead of
// failing the page.
package github

import (
	"context"
	"net/http"
	"time"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// apiTimeout caps every call to the GitHub API.
const apiTimeout = 10 * time.Second

// NewClient builds a GitHub API client. With a token the client is
// authenticated and gets the higher rate limit; without one it falls back
// to anonymous access.
func NewClient(ctx context.Context, token string) *github.Client {
	if token == "" {
		return github.NewClient(&http.Client{Timeout: apiTimeout})
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = apiTimeout
	return github.NewClient(tc)
}
