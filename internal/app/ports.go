package app

import (
	"context"

	"github.com/hylla/orgbridge/internal/domain"
)

// Directory fetches organization records from the backing org API.
type Directory interface {
	ListProjects(context.Context, domain.ProjectQuery) (domain.ProjectPage, error)
	ListTeams(context.Context, domain.TeamQuery) ([]domain.Team, error)
	ListTeamMembers(context.Context, domain.MemberQuery) ([]domain.TeamMember, error)
}

// IdentitySearcher runs one fuzzy identity search and returns candidate
// identities for a free-text filter value. Its matching semantics are owned
// by the backing service.
type IdentitySearcher interface {
	SearchIdentities(ctx context.Context, filterValue string) ([]domain.IdentityCandidate, error)
}
