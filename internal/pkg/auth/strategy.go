package auth

import "time"

// Role is the coarse platform role carried in the auth token. The token is
// issued by the external auth collaborator; this service only verifies it.
type Role string

const (
	RoleMember  Role = "member"
	RoleBrand   Role = "brand"
	RoleCreator Role = "creator"
	RoleAdmin   Role = "admin"
)

// Identity is the authenticated principal extracted from a token.
type Identity struct {
	UserID int64
	Role   Role
}

type Strategy interface {
	IssueToken(userID int64, role Role) (string, error)
	ParseToken(token string) (*Identity, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
