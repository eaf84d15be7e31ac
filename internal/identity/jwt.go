package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the profile claims carried by the tokens the frontend sends.
// Subject holds the user ID.
type Claims struct {
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"email_verified,omitempty"`
	Name          string `json:"name,omitempty"`
	Picture       string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// JWTProvider verifies HMAC-signed bearer tokens and keeps a bounded cache
// of the user records it has seen, so display enrichment can look up users
// without an external directory call.
type JWTProvider struct {
	secret []byte
	issuer string
	cache  *recordCache
}

// NewJWTProvider builds a provider for tokens signed with the given secret.
// When issuer is non-empty, tokens from any other issuer are rejected.
func NewJWTProvider(secret, issuer string) *JWTProvider {
	return &JWTProvider{
		secret: []byte(secret),
		issuer: issuer,
		cache:  newRecordCache(RecordCacheSize, RecordCacheTTL),
	}
}

// VerifyToken parses and validates a bearer token, returning the caller's
// identity. The profile claims are cached so GetUser can serve them later.
func (p *JWTProvider) VerifyToken(_ context.Context, tokenString string) (*Identity, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"})}
	if p.issuer != "" {
		opts = append(opts, jwt.WithIssuer(p.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New(ErrMsgSigningMethod)
		}
		return p.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, ErrMsgMissingUID)
	}

	p.cache.Set(claims.Subject, &UserRecord{
		UID:         claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
		PhotoURL:    claims.Picture,
	})

	return &Identity{
		UID:           claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
	}, nil
}

// GetUser returns the record cached for uid. Records enter the cache when
// the user's own token is verified, so lookups only succeed for users seen
// recently. Callers must treat ErrUserNotFound as a normal miss.
func (p *JWTProvider) GetUser(_ context.Context, uid string) (*UserRecord, error) {
	record, ok := p.cache.Get(uid)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, uid)
	}
	return record, nil
}

// GenerateToken mints a signed token for uid with the given profile claims.
// Used by the devtool and the staging smoke tests to act as a real client.
func GenerateToken(secret, issuer, uid, email, name string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email:         email,
		EmailVerified: email != "",
		Name:          name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Compile-time check that JWTProvider satisfies Provider
var _ Provider = (*JWTProvider)(nil)
