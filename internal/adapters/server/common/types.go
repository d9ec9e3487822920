// Package common defines the transport-facing service surface shared by the
// MCP adapters, decoupled from application internals.
package common

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidRequest flags caller mistakes such as missing required arguments.
var ErrInvalidRequest = errors.New("invalid request")

// Project describes one organization project.
type Project struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	State          string    `json:"state,omitempty"`
	Visibility     string    `json:"visibility,omitempty"`
	LastUpdateTime time.Time `json:"lastUpdateTime"`
	URL            string    `json:"url,omitempty"`
}

// ProjectPage is one page of projects plus the token for the next page.
type ProjectPage struct {
	Projects          []Project `json:"projects"`
	ContinuationToken string    `json:"continuationToken,omitempty"`
}

// Team describes one project team.
type Team struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ProjectName string `json:"projectName,omitempty"`
	ProjectID   string `json:"projectId,omitempty"`
	URL         string `json:"url,omitempty"`
}

// TeamMember is one enriched team member. Identity fields that could not be
// resolved render as JSON null rather than empty strings.
type TeamMember struct {
	ID                  *string `json:"id"`
	Descriptor          *string `json:"descriptor"`
	DisplayName         *string `json:"displayName"`
	UniqueName          *string `json:"uniqueName"`
	ProviderDisplayName *string `json:"providerDisplayName,omitempty"`
	IsTeamAdministrator bool    `json:"isTeamAdministrator"`
}

// IdentitySummary is one identity search hit reduced to its stable handles.
type IdentitySummary struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Descriptor  string `json:"descriptor,omitempty"`
}

// ListProjectsRequest carries the arguments of one project listing.
type ListProjectsRequest struct {
	NameFilter        string
	StateFilter       string
	Top               int
	Skip              int
	ContinuationToken string
}

// ListTeamsRequest carries the arguments of one team listing.
type ListTeamsRequest struct {
	Project string
	Mine    bool
	Top     int
	Skip    int
}

// ListTeamMembersRequest carries the arguments of one member listing.
type ListTeamMembersRequest struct {
	Project string
	Team    string
	Top     int
	Skip    int
}

// OrgDirectory exposes the organization reads served over MCP.
type OrgDirectory interface {
	ListProjects(ctx context.Context, req ListProjectsRequest) (ProjectPage, error)
	ListTeams(ctx context.Context, req ListTeamsRequest) ([]Team, error)
	ListTeamMembers(ctx context.Context, req ListTeamMembersRequest) ([]TeamMember, error)
	GetIdentityIDs(ctx context.Context, searchFilter string) ([]IdentitySummary, error)
}
