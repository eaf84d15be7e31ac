package identity

import (
	"context"
	"errors"
)

// Identity is the verified caller extracted from a bearer token
type Identity struct {
	UID           string
	Email         string
	EmailVerified bool
}

// UserRecord is the directory view of a user, used for display enrichment
type UserRecord struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
	Disabled    bool
}

// Provider verifies bearer tokens and resolves user records
type Provider interface {
	VerifyToken(ctx context.Context, token string) (*Identity, error)
	GetUser(ctx context.Context, uid string) (*UserRecord, error)
}

// Identity errors
var (
	ErrInvalidToken = errors.New(ErrMsgInvalidToken)
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)
)
