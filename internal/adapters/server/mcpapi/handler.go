// Package mcpapi exposes the organization directory as MCP tools over a
// stateless streamable-HTTP or stdio transport.
package mcpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/hylla/orgbridge/internal/adapters/server/common"
)

// Config captures MCP transport configuration.
type Config struct {
	ServerName    string
	ServerVersion string
	EndpointPath  string
}

// Handler wraps one stateless MCP streamable HTTP handler.
type Handler struct {
	httpHandler http.Handler
}

// NewServer builds one MCP server with every organization tool registered.
// Both the HTTP and stdio transports serve the same server.
func NewServer(cfg Config, directory common.OrgDirectory) (*mcpserver.MCPServer, error) {
	if directory == nil {
		return nil, fmt.Errorf("organization directory is required")
	}
	cfg = normalizeConfig(cfg)

	srv := mcpserver.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		mcpserver.WithToolCapabilities(false),
	)
	registerProjectTools(srv, directory)
	registerTeamTools(srv, directory)
	registerIdentityTools(srv, directory)
	return srv, nil
}

// NewHandler builds one stateless MCP streamable HTTP adapter.
func NewHandler(cfg Config, directory common.OrgDirectory) (*Handler, error) {
	cfg = normalizeConfig(cfg)
	srv, err := NewServer(cfg, directory)
	if err != nil {
		return nil, err
	}
	streamable := mcpserver.NewStreamableHTTPServer(
		srv,
		mcpserver.WithEndpointPath(cfg.EndpointPath),
		mcpserver.WithStateLess(true),
	)
	return &Handler{httpHandler: streamable}, nil
}

// ServeHTTP handles one MCP streamable HTTP request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.httpHandler == nil {
		http.Error(w, "mcp handler unavailable", http.StatusServiceUnavailable)
		return
	}
	h.httpHandler.ServeHTTP(w, r)
}

// normalizeConfig applies deterministic defaults to MCP adapter config.
func normalizeConfig(cfg Config) Config {
	cfg.ServerName = strings.TrimSpace(cfg.ServerName)
	if cfg.ServerName == "" {
		cfg.ServerName = "orgbridge"
	}
	cfg.ServerVersion = strings.TrimSpace(cfg.ServerVersion)
	if cfg.ServerVersion == "" {
		cfg.ServerVersion = "dev"
	}
	cfg.EndpointPath = strings.TrimSpace(cfg.EndpointPath)
	if cfg.EndpointPath == "" {
		cfg.EndpointPath = "/mcp"
	}
	if !strings.HasPrefix(cfg.EndpointPath, "/") {
		cfg.EndpointPath = "/" + cfg.EndpointPath
	}
	cfg.EndpointPath = "/" + strings.Trim(cfg.EndpointPath, "/")
	return cfg
}

// registerProjectTools registers the `azdo_list_projects` tool.
func registerProjectTools(srv *mcpserver.MCPServer, directory common.OrgDirectory) {
	srv.AddTool(
		mcp.NewTool(
			"azdo_list_projects",
			mcp.WithDescription("List projects in the Azure DevOps organization."),
			mcp.WithString("name_filter", mcp.Description("Case-insensitive substring filter on project names")),
			mcp.WithString("state_filter", mcp.Description("Filter on project state"), mcp.DefaultString("wellFormed"),
				mcp.Enum("all", "createPending", "deleted", "deleting", "new", "unchanged", "wellFormed")),
			mcp.WithNumber("top", mcp.Description("Maximum number of projects to return")),
			mcp.WithNumber("skip", mcp.Description("Number of projects to skip")),
			mcp.WithString("continuation_token", mcp.Description("Token from a previous page")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			page, err := directory.ListProjects(ctx, common.ListProjectsRequest{
				NameFilter:        req.GetString("name_filter", ""),
				StateFilter:       req.GetString("state_filter", "wellFormed"),
				Top:               req.GetInt("top", 0),
				Skip:              req.GetInt("skip", 0),
				ContinuationToken: req.GetString("continuation_token", ""),
			})
			if err != nil {
				return errorResult("fetching projects", err), nil
			}
			if len(page.Projects) == 0 {
				return mcp.NewToolResultError("No projects found"), nil
			}
			return jsonResult(page)
		},
	)
}

// registerTeamTools registers the `azdo_list_project_teams` and
// `azdo_list_team_members` tools.
func registerTeamTools(srv *mcpserver.MCPServer, directory common.OrgDirectory) {
	srv.AddTool(
		mcp.NewTool(
			"azdo_list_project_teams",
			mcp.WithDescription("List the teams of one project."),
			mcp.WithString("project", mcp.Required(), mcp.Description("Project name or id")),
			mcp.WithBoolean("mine", mcp.Description("Restrict to teams the authenticated user belongs to")),
			mcp.WithNumber("top", mcp.Description("Maximum number of teams to return")),
			mcp.WithNumber("skip", mcp.Description("Number of teams to skip")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			project, err := req.RequireString("project")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			teams, err := directory.ListTeams(ctx, common.ListTeamsRequest{
				Project: project,
				Mine:    req.GetBool("mine", false),
				Top:     req.GetInt("top", 0),
				Skip:    req.GetInt("skip", 0),
			})
			if err != nil {
				return errorResult("fetching teams", err), nil
			}
			if len(teams) == 0 {
				return mcp.NewToolResultError("No teams found"), nil
			}
			return jsonResult(teams)
		},
	)

	srv.AddTool(
		mcp.NewTool(
			"azdo_list_team_members",
			mcp.WithDescription("List the members of one team with resolved identity details."),
			mcp.WithString("project", mcp.Required(), mcp.Description("Project name or id")),
			mcp.WithString("team", mcp.Required(), mcp.Description("Team name or id")),
			mcp.WithNumber("top", mcp.Description("Maximum number of members to return")),
			mcp.WithNumber("skip", mcp.Description("Number of members to skip")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			project, err := req.RequireString("project")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			team, err := req.RequireString("team")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			members, err := directory.ListTeamMembers(ctx, common.ListTeamMembersRequest{
				Project: project,
				Team:    team,
				Top:     req.GetInt("top", 0),
				Skip:    req.GetInt("skip", 0),
			})
			if err != nil {
				return errorResult("fetching team members", err), nil
			}
			if len(members) == 0 {
				return mcp.NewToolResultError("No team members found"), nil
			}
			return jsonResult(members)
		},
	)
}

// registerIdentityTools registers the `azdo_get_identity_ids` tool.
func registerIdentityTools(srv *mcpserver.MCPServer, directory common.OrgDirectory) {
	srv.AddTool(
		mcp.NewTool(
			"azdo_get_identity_ids",
			mcp.WithDescription("Search organization identities and return their stable ids."),
			mcp.WithString("search_filter", mcp.Required(), mcp.Description("Display name, account name, or mail address to search for")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			searchFilter, err := req.RequireString("search_filter")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			summaries, err := directory.GetIdentityIDs(ctx, searchFilter)
			if err != nil {
				return errorResult("fetching identities", err), nil
			}
			if len(summaries) == 0 {
				return mcp.NewToolResultError("No identities found"), nil
			}
			return jsonResult(summaries)
		},
	)
}
