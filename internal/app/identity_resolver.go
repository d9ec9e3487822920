package app

import (
	"context"

	"github.com/hylla/orgbridge/internal/domain"
)

// identityResolver enriches incomplete member identities via identity search,
// memoizing lookups per resolver instance. One resolver is created per tool
// invocation and discarded on return, so identities re-resolve fresh on every
// call; a nil cache value is the explicit checked-but-not-found marker.
type identityResolver struct {
	search IdentitySearcher
	cache  map[string]*domain.IdentityCandidate
}

// newIdentityResolver builds one per-invocation resolver over the search port.
func newIdentityResolver(search IdentitySearcher) *identityResolver {
	return &identityResolver{
		search: search,
		cache:  map[string]*domain.IdentityCandidate{},
	}
}

// Normalize reconciles one raw member record into a normalized output record.
// Original identity fields win when present; enrichment fills the gaps.
func (r *identityResolver) Normalize(ctx context.Context, member domain.TeamMember) domain.NormalizedMember {
	identity := member.Identity
	out := domain.NormalizedMember{
		ID:                  identity.ID,
		Descriptor:          identity.Descriptor,
		DisplayName:         identity.DisplayName,
		UniqueName:          identity.UniqueName,
		IsTeamAdministrator: member.IsTeamAdmin,
	}

	if identity.Complete() {
		return out
	}

	candidate := r.resolve(ctx, identity)
	if candidate == nil {
		return out
	}

	out.ProviderDisplayName = candidate.ProviderDisplayName
	if out.ID == "" {
		out.ID = candidate.ID
	}
	if out.Descriptor == "" {
		out.Descriptor = candidate.Descriptor
	}
	if out.DisplayName == "" {
		out.DisplayName = candidate.ProviderDisplayName
	}
	if out.UniqueName == "" {
		out.UniqueName = candidate.Properties.Account
	}
	if out.UniqueName == "" {
		out.UniqueName = candidate.Properties.Mail
	}
	return out
}

// resolve returns the best-effort enrichment candidate for one incomplete
// identity, or nil when no candidate can be resolved. Results, including
// not-found and search failures, are memoized under the literal lookup key.
func (r *identityResolver) resolve(ctx context.Context, identity domain.Identity) *domain.IdentityCandidate {
	key := identity.LookupKey()
	if key == "" {
		return nil
	}
	if cached, ok := r.cache[key]; ok {
		return cached
	}

	candidates, err := r.search.SearchIdentities(ctx, key)
	if err != nil {
		// One failed lookup must not abort the batch; remember the miss so the
		// key is not re-queried within this invocation.
		r.cache[key] = nil
		return nil
	}

	resolved := selectCandidate(identity, key, candidates)
	r.cache[key] = resolved
	return resolved
}

// selectCandidate applies the matching rules in priority order over the whole
// candidate list: candidate id equals the original id, then provider display
// name, Account, and Mail each equal the lookup key. An id match anywhere in
// the list beats a display-name match earlier in it. When no rule fires, the
// first candidate is kept as a heuristic fallback.
func selectCandidate(identity domain.Identity, key string, candidates []domain.IdentityCandidate) *domain.IdentityCandidate {
	rules := []func(domain.IdentityCandidate) bool{
		func(c domain.IdentityCandidate) bool { return identity.ID != "" && c.ID == identity.ID },
		func(c domain.IdentityCandidate) bool { return c.ProviderDisplayName == key },
		func(c domain.IdentityCandidate) bool { return c.Properties.Account == key },
		func(c domain.IdentityCandidate) bool { return c.Properties.Mail == key },
	}
	for _, rule := range rules {
		for i := range candidates {
			if rule(candidates[i]) {
				return &candidates[i]
			}
		}
	}
	if len(candidates) > 0 {
		return &candidates[0]
	}
	return nil
}
