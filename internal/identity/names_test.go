package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubProvider serves records from a map, standing in for a real directory
type stubProvider struct {
	records map[string]*UserRecord
}

func (s *stubProvider) VerifyToken(_ context.Context, _ string) (*Identity, error) {
	return nil, ErrInvalidToken
}

func (s *stubProvider) GetUser(_ context.Context, uid string) (*UserRecord, error) {
	if record, ok := s.records[uid]; ok {
		return record, nil
	}
	return nil, ErrUserNotFound
}

func TestResolver_DisplayNames(t *testing.T) {
	provider := &stubProvider{records: map[string]*UserRecord{
		"uid-with-name":  {UID: "uid-with-name", DisplayName: "Jane Doe", Email: "jane@example.com"},
		"uid-email-only": {UID: "uid-email-only", Email: "bob.smith@example.com"},
		"uid-empty":      {UID: "uid-empty"},
	}}
	resolver := NewResolver(provider)
	ctx := context.Background()

	t.Run("prefers the profile display name", func(t *testing.T) {
		names := resolver.DisplayNames(ctx, []string{"uid-with-name"})
		assert.Equal(t, "Jane Doe", names["uid-with-name"])
	})

	t.Run("derives a name from the email local part", func(t *testing.T) {
		names := resolver.DisplayNames(ctx, []string{"uid-email-only"})
		assert.Equal(t, "Bob Smith", names["uid-email-only"])
	})

	t.Run("falls back to a UID prefix for an empty profile", func(t *testing.T) {
		names := resolver.DisplayNames(ctx, []string{"uid-empty"})
		assert.Equal(t, "uid-empt...", names["uid-empty"])
	})

	t.Run("falls back to a UID prefix for an unknown user", func(t *testing.T) {
		names := resolver.DisplayNames(ctx, []string{"complete-stranger"})
		assert.Equal(t, "complete...", names["complete-stranger"])
	})

	t.Run("resolves every UID in a batch exactly once", func(t *testing.T) {
		names := resolver.DisplayNames(ctx, []string{"uid-with-name", "uid-email-only", "uid-with-name"})
		assert.Len(t, names, 2)
		assert.Equal(t, "Jane Doe", names["uid-with-name"])
		assert.Equal(t, "Bob Smith", names["uid-email-only"])
	})
}

func TestFallbackName(t *testing.T) {
	tests := []struct {
		name string
		uid  string
		want string
	}{
		{"long uid is truncated", "abcdefghijklmnop", "abcdefgh..."},
		{"short uid is kept whole", "abc", "abc..."},
		{"exact length uid is kept whole", "abcdefgh", "abcdefgh..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FallbackName(tt.uid))
		})
	}
}

func TestNameFromEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"dotted local part", "jane.doe@example.com", "Jane Doe"},
		{"underscore local part", "bob_smith@example.com", "Bob Smith"},
		{"hyphenated local part", "mary-ann@example.com", "Mary Ann"},
		{"single word", "admin@example.com", "Admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nameFromEmail(tt.email))
		})
	}
}
