package domain

// Identity holds the possibly-partial identity fields attached to a raw team
// member record. Any field may be empty as received from the org API.
type Identity struct {
	ID          string
	Descriptor  string
	DisplayName string
	UniqueName  string
}

// Complete reports whether every field enrichment cares about is present.
// Complete identities are returned verbatim without consulting identity search.
func (i Identity) Complete() bool {
	return i.UniqueName != "" && i.Descriptor != "" && i.ID != ""
}

// LookupKey returns the identity-search input for this identity: the first
// defined value among unique name, display name, and raw id. Empty means no
// usable key exists and enrichment resolves to not-found without a search.
func (i Identity) LookupKey() string {
	if i.UniqueName != "" {
		return i.UniqueName
	}
	if i.DisplayName != "" {
		return i.DisplayName
	}
	return i.ID
}

// TeamMember is one raw membership record as fetched from the org API.
type TeamMember struct {
	Identity    Identity
	IsTeamAdmin bool
}

// IdentityProperties holds the optional extended properties surfaced on
// identity-search candidates.
type IdentityProperties struct {
	Account string
	Mail    string
}

// IdentityCandidate is one identity-search result considered during enrichment.
type IdentityCandidate struct {
	ID                  string
	Descriptor          string
	ProviderDisplayName string
	Properties          IdentityProperties
}

// NormalizedMember is the fully-reconciled membership record produced by the
// team-members operation. Empty string means the field could not be resolved
// from either the original identity or its enrichment candidate.
type NormalizedMember struct {
	ID                  string
	Descriptor          string
	DisplayName         string
	UniqueName          string
	ProviderDisplayName string
	IsTeamAdministrator bool
}

// IdentitySummary is one id/displayName/descriptor triple returned by the
// identity-ids lookup operation.
type IdentitySummary struct {
	ID          string
	DisplayName string
	Descriptor  string
}
