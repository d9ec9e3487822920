package common

import (
	"context"
	"errors"
	"testing"

	"github.com/hylla/orgbridge/internal/app"
	"github.com/hylla/orgbridge/internal/domain"
)

// fakeDirectory provides canned organization data for adapter tests.
type fakeDirectory struct {
	projects domain.ProjectPage
	teams    []domain.Team
	members  []domain.TeamMember
}

func (f *fakeDirectory) ListProjects(_ context.Context, _ domain.ProjectQuery) (domain.ProjectPage, error) {
	return f.projects, nil
}

func (f *fakeDirectory) ListTeams(_ context.Context, _ domain.TeamQuery) ([]domain.Team, error) {
	return f.teams, nil
}

func (f *fakeDirectory) ListTeamMembers(_ context.Context, _ domain.MemberQuery) ([]domain.TeamMember, error) {
	return f.members, nil
}

// fakeSearcher provides canned identity candidates for adapter tests.
type fakeSearcher struct {
	candidates []domain.IdentityCandidate
}

func (f *fakeSearcher) SearchIdentities(_ context.Context, _ string) ([]domain.IdentityCandidate, error) {
	return f.candidates, nil
}

// TestNewOrgServiceAdapterRequiresService verifies behavior for the covered scenario.
func TestNewOrgServiceAdapterRequiresService(t *testing.T) {
	if _, err := NewOrgServiceAdapter(nil); err == nil {
		t.Fatal("expected error for nil service")
	}
}

// TestListTeamMembersNullsUnresolvedFields verifies that unresolved identity
// fields render as null pointers instead of empty strings.
func TestListTeamMembersNullsUnresolvedFields(t *testing.T) {
	directory := &fakeDirectory{
		members: []domain.TeamMember{
			{Identity: domain.Identity{DisplayName: "Ghost"}},
		},
	}
	adapter := mustAdapter(t, directory, &fakeSearcher{})

	members, err := adapter.ListTeamMembers(context.Background(), ListTeamMembersRequest{Project: "Fabrikam", Team: "Core"})
	if err != nil {
		t.Fatalf("ListTeamMembers() error: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(members))
	}
	member := members[0]
	if member.ID != nil || member.Descriptor != nil || member.UniqueName != nil {
		t.Fatalf("expected nil pointers for unresolved fields, got %+v", member)
	}
	if member.DisplayName == nil || *member.DisplayName != "Ghost" {
		t.Fatalf("expected displayName preserved, got %+v", member.DisplayName)
	}
}

// TestAdapterTranslatesInvalidRequest verifies behavior for the covered scenario.
func TestAdapterTranslatesInvalidRequest(t *testing.T) {
	adapter := mustAdapter(t, &fakeDirectory{}, &fakeSearcher{})

	_, err := adapter.ListTeams(context.Background(), ListTeamsRequest{})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

// TestAdapterMapsIdentitySummaries verifies behavior for the covered scenario.
func TestAdapterMapsIdentitySummaries(t *testing.T) {
	search := &fakeSearcher{
		candidates: []domain.IdentityCandidate{
			{ID: "42", Descriptor: "aad.abc", ProviderDisplayName: "Jane Doe"},
		},
	}
	adapter := mustAdapter(t, &fakeDirectory{}, search)

	summaries, err := adapter.GetIdentityIDs(context.Background(), "jane")
	if err != nil {
		t.Fatalf("GetIdentityIDs() error: %v", err)
	}
	want := IdentitySummary{ID: "42", DisplayName: "Jane Doe", Descriptor: "aad.abc"}
	if len(summaries) != 1 || summaries[0] != want {
		t.Fatalf("GetIdentityIDs() = %+v, want %+v", summaries, want)
	}
}

// mustAdapter builds one adapter over a service assembled from the fakes.
func mustAdapter(t *testing.T, directory *fakeDirectory, search *fakeSearcher) *OrgServiceAdapter {
	t.Helper()
	adapter, err := NewOrgServiceAdapter(app.NewService(directory, search))
	if err != nil {
		t.Fatalf("NewOrgServiceAdapter() error: %v", err)
	}
	return adapter
}
