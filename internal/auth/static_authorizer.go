package auth

import (
	"context"
	"strings"
)

// StaticAuthorizer resolves tokens from a fixed token->userID map. It backs
// local development and tests; production deployments put a real identity
// provider in front of the service.
type StaticAuthorizer struct {
	tokens map[string]string
}

// NewStaticAuthorizer builds an authorizer from a "token=userId,..." spec,
// the format used by the AUTH_TOKENS configuration key.
func NewStaticAuthorizer(spec string) *StaticAuthorizer {
	tokens := make(map[string]string)
	for _, pair := range strings.Split(spec, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if ok && k != "" && v != "" {
			tokens[k] = v
		}
	}
	return &StaticAuthorizer{tokens: tokens}
}

func (a *StaticAuthorizer) Authorize(_ context.Context, token string) (*UserInfo, error) {
	userID, ok := a.tokens[token]
	if !ok {
		return nil, ErrInvalidToken
	}
	return &UserInfo{UserID: userID}, nil
}
