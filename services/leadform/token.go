package leadform

import (
	"context"
	"errors"
)

var (
	// ErrTokenUnavailable is returned when no bot-check provider is loaded
	ErrTokenUnavailable = errors.New("bot-check provider unavailable")

	// ErrEmptyToken is returned when the provider answered without a token
	ErrEmptyToken = errors.New("bot-check provider returned an empty token")
)

// TokenSource issues a bot-mitigation token for one submission attempt
type TokenSource interface {
	Token(ctx context.Context, action string) (string, error)
}

// TokenSourceFunc adapts a function to TokenSource
type TokenSourceFunc func(ctx context.Context, action string) (string, error)

func (f TokenSourceFunc) Token(ctx context.Context, action string) (string, error) {
	return f(ctx, action)
}

// StaticTokenSource always hands out the same token. Useful when the token
// was obtained out of band, e.g. pasted from a browser session.
type StaticTokenSource string

func (s StaticTokenSource) Token(ctx context.Context, action string) (string, error) {
	if s == "" {
		return "", ErrEmptyToken
	}
	return string(s), nil
}
