package identity

import (
	"context"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Resolver turns user IDs into display names for API responses. Resolution
// is best effort: a missing or slow lookup falls back to a name derived
// from the UID so enrichment never fails a request.
type Resolver struct {
	provider Provider
	timeout  time.Duration
}

func NewResolver(provider Provider) *Resolver {
	return &Resolver{
		provider: provider,
		timeout:  LookupTimeout,
	}
}

// DisplayNames resolves names for the given UIDs. The whole batch shares
// one timeout, and every UID gets an entry in the result, falling back to
// a truncated UID when no profile is available.
func (r *Resolver) DisplayNames(ctx context.Context, uids []string) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	names := make(map[string]string, len(uids))
	for _, uid := range uids {
		if _, done := names[uid]; done {
			continue
		}
		names[uid] = r.resolve(ctx, uid)
	}
	return names
}

func (r *Resolver) resolve(ctx context.Context, uid string) string {
	record, err := r.provider.GetUser(ctx, uid)
	if err != nil {
		return FallbackName(uid)
	}
	if record.DisplayName != "" {
		return record.DisplayName
	}
	if record.Email != "" {
		return nameFromEmail(record.Email)
	}
	return FallbackName(uid)
}

// FallbackName is the name shown when no profile is available, a UID
// prefix marked with an ellipsis.
func FallbackName(uid string) string {
	if len(uid) > FallbackUIDLength {
		uid = uid[:FallbackUIDLength]
	}
	return uid + FallbackSuffix
}

// nameFromEmail derives a readable name from the address local part,
// "jane.doe@example.com" becomes "Jane Doe".
func nameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	words := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	if len(words) == 0 {
		return local
	}
	return cases.Title(language.English).String(strings.Join(words, " "))
}
