// Package app implements the organization directory service behind the MCP
// tool surface: project/team/member listing and identity-ids lookup, with
// identity enrichment for incomplete member records.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/hylla/orgbridge/internal/domain"
)

// Service exposes the four directory operations over the org API ports.
type Service struct {
	directory Directory
	search    IdentitySearcher
}

// NewService builds one directory service over the given ports.
func NewService(directory Directory, search IdentitySearcher) *Service {
	return &Service{
		directory: directory,
		search:    search,
	}
}

// ListProjects fetches one page of organization projects and applies the
// optional case-insensitive name filter client-side.
func (s *Service) ListProjects(ctx context.Context, query domain.ProjectQuery) (domain.ProjectPage, error) {
	page, err := s.directory.ListProjects(ctx, query)
	if err != nil {
		return domain.ProjectPage{}, fmt.Errorf("list projects: %w", err)
	}

	nameFilter := strings.TrimSpace(query.NameFilter)
	if nameFilter == "" {
		return page, nil
	}

	needle := strings.ToLower(nameFilter)
	filtered := make([]domain.Project, 0, len(page.Projects))
	for _, project := range page.Projects {
		if strings.Contains(strings.ToLower(project.Name), needle) {
			filtered = append(filtered, project)
		}
	}
	page.Projects = filtered
	return page, nil
}

// ListTeams fetches the teams of one project.
func (s *Service) ListTeams(ctx context.Context, query domain.TeamQuery) ([]domain.Team, error) {
	if strings.TrimSpace(query.Project) == "" {
		return nil, fmt.Errorf("%w: project is required", ErrInvalidRequest)
	}
	teams, err := s.directory.ListTeams(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

// ListTeamMembers fetches one team's membership and resolves each member into
// a normalized record, enriching incomplete identities via identity search.
// Every input member produces exactly one output record, in original order;
// enrichment failure for one member never aborts the batch.
func (s *Service) ListTeamMembers(ctx context.Context, query domain.MemberQuery) ([]domain.NormalizedMember, error) {
	if strings.TrimSpace(query.Project) == "" {
		return nil, fmt.Errorf("%w: project is required", ErrInvalidRequest)
	}
	if strings.TrimSpace(query.Team) == "" {
		return nil, fmt.Errorf("%w: team is required", ErrInvalidRequest)
	}

	members, err := s.directory.ListTeamMembers(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}

	resolver := newIdentityResolver(s.search)
	normalized := make([]domain.NormalizedMember, 0, len(members))
	for _, member := range members {
		normalized = append(normalized, resolver.Normalize(ctx, member))
	}
	return normalized, nil
}

// GetIdentityIDs resolves a free-text filter into id/displayName/descriptor
// triples via identity search.
func (s *Service) GetIdentityIDs(ctx context.Context, searchFilter string) ([]domain.IdentitySummary, error) {
	if strings.TrimSpace(searchFilter) == "" {
		return nil, fmt.Errorf("%w: search filter is required", ErrInvalidRequest)
	}
	candidates, err := s.search.SearchIdentities(ctx, searchFilter)
	if err != nil {
		return nil, fmt.Errorf("search identities: %w", err)
	}

	summaries := make([]domain.IdentitySummary, 0, len(candidates))
	for _, candidate := range candidates {
		summaries = append(summaries, domain.IdentitySummary{
			ID:          candidate.ID,
			DisplayName: candidate.ProviderDisplayName,
			Descriptor:  candidate.Descriptor,
		})
	}
	return summaries, nil
}
