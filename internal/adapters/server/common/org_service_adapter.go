package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/hylla/orgbridge/internal/app"
	"github.com/hylla/orgbridge/internal/domain"
)

// OrgServiceAdapter bridges the application service to the transport-facing
// OrgDirectory surface.
type OrgServiceAdapter struct {
	service *app.Service
}

// NewOrgServiceAdapter builds one adapter over the application service.
func NewOrgServiceAdapter(service *app.Service) (*OrgServiceAdapter, error) {
	if service == nil {
		return nil, fmt.Errorf("application service is required")
	}
	return &OrgServiceAdapter{service: service}, nil
}

// ListProjects serves one project listing.
func (a *OrgServiceAdapter) ListProjects(ctx context.Context, req ListProjectsRequest) (ProjectPage, error) {
	page, err := a.service.ListProjects(ctx, domain.ProjectQuery{
		NameFilter:        req.NameFilter,
		StateFilter:       req.StateFilter,
		Top:               req.Top,
		Skip:              req.Skip,
		ContinuationToken: req.ContinuationToken,
	})
	if err != nil {
		return ProjectPage{}, translateError(err)
	}

	result := ProjectPage{ContinuationToken: page.ContinuationToken}
	for _, project := range page.Projects {
		result.Projects = append(result.Projects, Project{
			ID:             project.ID,
			Name:           project.Name,
			Description:    project.Description,
			State:          project.State,
			Visibility:     project.Visibility,
			LastUpdateTime: project.LastUpdateTime,
			URL:            project.URL,
		})
	}
	return result, nil
}

// ListTeams serves one team listing.
func (a *OrgServiceAdapter) ListTeams(ctx context.Context, req ListTeamsRequest) ([]Team, error) {
	teams, err := a.service.ListTeams(ctx, domain.TeamQuery{
		Project: req.Project,
		Mine:    req.Mine,
		Top:     req.Top,
		Skip:    req.Skip,
	})
	if err != nil {
		return nil, translateError(err)
	}

	result := make([]Team, 0, len(teams))
	for _, team := range teams {
		result = append(result, Team{
			ID:          team.ID,
			Name:        team.Name,
			Description: team.Description,
			ProjectName: team.ProjectName,
			ProjectID:   team.ProjectID,
			URL:         team.URL,
		})
	}
	return result, nil
}

// ListTeamMembers serves one enriched member listing.
func (a *OrgServiceAdapter) ListTeamMembers(ctx context.Context, req ListTeamMembersRequest) ([]TeamMember, error) {
	members, err := a.service.ListTeamMembers(ctx, domain.MemberQuery{
		Project: req.Project,
		Team:    req.Team,
		Top:     req.Top,
		Skip:    req.Skip,
	})
	if err != nil {
		return nil, translateError(err)
	}

	result := make([]TeamMember, 0, len(members))
	for _, member := range members {
		result = append(result, TeamMember{
			ID:                  optString(member.ID),
			Descriptor:          optString(member.Descriptor),
			DisplayName:         optString(member.DisplayName),
			UniqueName:          optString(member.UniqueName),
			ProviderDisplayName: optString(member.ProviderDisplayName),
			IsTeamAdministrator: member.IsTeamAdministrator,
		})
	}
	return result, nil
}

// GetIdentityIDs serves one identity search.
func (a *OrgServiceAdapter) GetIdentityIDs(ctx context.Context, searchFilter string) ([]IdentitySummary, error) {
	summaries, err := a.service.GetIdentityIDs(ctx, searchFilter)
	if err != nil {
		return nil, translateError(err)
	}

	result := make([]IdentitySummary, 0, len(summaries))
	for _, summary := range summaries {
		result = append(result, IdentitySummary{
			ID:          summary.ID,
			DisplayName: summary.DisplayName,
			Descriptor:  summary.Descriptor,
		})
	}
	return result, nil
}

// translateError maps application sentinels onto the transport surface.
func translateError(err error) error {
	if errors.Is(err, app.ErrInvalidRequest) {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	return err
}

// optString maps an empty string onto a JSON-null pointer.
func optString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
