package azdo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/core"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/identity"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/webapi"

	"github.com/hylla/orgbridge/internal/domain"
)

// identitySearchFilter is the ReadIdentities filter that matches display
// names, account names, and mail addresses.
const identitySearchFilter = "General"

// Directory serves organization reads over the Azure DevOps REST clients.
type Directory struct {
	provider *Provider
}

// NewDirectory builds one directory over the given client provider.
func NewDirectory(provider *Provider) *Directory {
	return &Directory{provider: provider}
}

// ListProjects fetches one page of projects for the organization.
func (d *Directory) ListProjects(ctx context.Context, query domain.ProjectQuery) (domain.ProjectPage, error) {
	client, err := d.provider.Core(ctx)
	if err != nil {
		return domain.ProjectPage{}, err
	}

	args := core.GetProjectsArgs{}
	if query.StateFilter != "" {
		state := core.ProjectState(query.StateFilter)
		args.StateFilter = &state
	}
	if query.Top > 0 {
		args.Top = &query.Top
	}
	if query.Skip > 0 {
		args.Skip = &query.Skip
	}
	if query.ContinuationToken != "" {
		token, err := strconv.Atoi(query.ContinuationToken)
		if err != nil {
			return domain.ProjectPage{}, fmt.Errorf("parse continuation token %q: %w", query.ContinuationToken, err)
		}
		args.ContinuationToken = &token
	}

	response, err := client.GetProjects(ctx, args)
	if err != nil {
		return domain.ProjectPage{}, fmt.Errorf("get projects: %w", err)
	}

	page := domain.ProjectPage{ContinuationToken: response.ContinuationToken}
	for _, reference := range response.Value {
		page.Projects = append(page.Projects, projectFromReference(reference))
	}
	return page, nil
}

// ListTeams fetches the teams of one project.
func (d *Directory) ListTeams(ctx context.Context, query domain.TeamQuery) ([]domain.Team, error) {
	client, err := d.provider.Core(ctx)
	if err != nil {
		return nil, err
	}

	args := core.GetTeamsArgs{ProjectId: &query.Project}
	if query.Mine {
		args.Mine = &query.Mine
	}
	if query.Top > 0 {
		args.Top = &query.Top
	}
	if query.Skip > 0 {
		args.Skip = &query.Skip
	}

	response, err := client.GetTeams(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("get teams for project %q: %w", query.Project, err)
	}
	if response == nil {
		return nil, nil
	}

	teams := make([]domain.Team, 0, len(*response))
	for _, team := range *response {
		teams = append(teams, teamFromWebAPI(team))
	}
	return teams, nil
}

// ListTeamMembers fetches the members of one team with admin flags.
func (d *Directory) ListTeamMembers(ctx context.Context, query domain.MemberQuery) ([]domain.TeamMember, error) {
	client, err := d.provider.Core(ctx)
	if err != nil {
		return nil, err
	}

	args := core.GetTeamMembersWithExtendedPropertiesArgs{
		ProjectId: &query.Project,
		TeamId:    &query.Team,
	}
	if query.Top > 0 {
		args.Top = &query.Top
	}
	if query.Skip > 0 {
		args.Skip = &query.Skip
	}

	response, err := client.GetTeamMembersWithExtendedProperties(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("get members for team %q in project %q: %w", query.Team, query.Project, err)
	}
	if response == nil {
		return nil, nil
	}

	members := make([]domain.TeamMember, 0, len(*response))
	for _, member := range *response {
		members = append(members, memberFromWebAPI(member))
	}
	return members, nil
}

// SearchIdentities runs a general identity search for the given filter value.
func (d *Directory) SearchIdentities(ctx context.Context, filterValue string) ([]domain.IdentityCandidate, error) {
	client, err := d.provider.Identity(ctx)
	if err != nil {
		return nil, err
	}

	searchFilter := identitySearchFilter
	response, err := client.ReadIdentities(ctx, identity.ReadIdentitiesArgs{
		SearchFilter: &searchFilter,
		FilterValue:  &filterValue,
	})
	if err != nil {
		return nil, fmt.Errorf("read identities for %q: %w", filterValue, err)
	}
	if response == nil {
		return nil, nil
	}

	candidates := make([]domain.IdentityCandidate, 0, len(*response))
	for _, found := range *response {
		candidates = append(candidates, candidateFromIdentity(found))
	}
	return candidates, nil
}

func projectFromReference(reference core.TeamProjectReference) domain.Project {
	project := domain.Project{
		Name:        stringOrEmpty(reference.Name),
		Description: stringOrEmpty(reference.Description),
		URL:         stringOrEmpty(reference.Url),
	}
	if reference.Id != nil {
		project.ID = reference.Id.String()
	}
	if reference.State != nil {
		project.State = string(*reference.State)
	}
	if reference.Visibility != nil {
		project.Visibility = string(*reference.Visibility)
	}
	if reference.LastUpdateTime != nil {
		project.LastUpdateTime = reference.LastUpdateTime.Time
	}
	return project
}

func teamFromWebAPI(team core.WebApiTeam) domain.Team {
	result := domain.Team{
		Name:        stringOrEmpty(team.Name),
		Description: stringOrEmpty(team.Description),
		ProjectName: stringOrEmpty(team.ProjectName),
		URL:         stringOrEmpty(team.Url),
	}
	if team.Id != nil {
		result.ID = team.Id.String()
	}
	if team.ProjectId != nil {
		result.ProjectID = team.ProjectId.String()
	}
	return result
}

func memberFromWebAPI(member webapi.TeamMember) domain.TeamMember {
	result := domain.TeamMember{}
	if member.IsTeamAdmin != nil {
		result.IsTeamAdmin = *member.IsTeamAdmin
	}
	if member.Identity != nil {
		result.Identity = domain.Identity{
			ID:          stringOrEmpty(member.Identity.Id),
			Descriptor:  stringOrEmpty(member.Identity.Descriptor),
			DisplayName: stringOrEmpty(member.Identity.DisplayName),
			UniqueName:  stringOrEmpty(member.Identity.UniqueName),
		}
	}
	return result
}

func candidateFromIdentity(found identity.Identity) domain.IdentityCandidate {
	candidate := domain.IdentityCandidate{
		Descriptor:          stringOrEmpty(found.Descriptor),
		ProviderDisplayName: stringOrEmpty(found.ProviderDisplayName),
		Properties:          propertiesFromRaw(found.Properties),
	}
	if found.Id != nil {
		candidate.ID = found.Id.String()
	}
	return candidate
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
