package test

import (
	pkgAuth "github.com/prizelab/giveawayd/internal/pkg/auth"
)

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(int64, pkgAuth.Role) (string, error)
	ParseFn func(string) (*pkgAuth.Identity, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(userID int64, role pkgAuth.Role) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID, role)
	}
	return "token", nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (*pkgAuth.Identity, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return &pkgAuth.Identity{UserID: 1, Role: pkgAuth.RoleMember}, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

var _ pkgAuth.Strategy = StrategyStub{}
