package mcpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/hylla/orgbridge/internal/adapters/server/common"
	"github.com/mark3labs/mcp-go/mcp"
)

// stubOrgDirectory provides deterministic organization responses for MCP tool tests.
type stubOrgDirectory struct {
	projects    common.ProjectPage
	teams       []common.Team
	members     []common.TeamMember
	identities  []common.IdentitySummary
	projectsErr error
	teamsErr    error
	membersErr  error
	identityErr error

	lastProjects common.ListProjectsRequest
	lastTeams    common.ListTeamsRequest
	lastMembers  common.ListTeamMembersRequest
	lastSearch   string
}

// ListProjects records the latest request and returns one fixture page.
func (s *stubOrgDirectory) ListProjects(_ context.Context, req common.ListProjectsRequest) (common.ProjectPage, error) {
	s.lastProjects = req
	if s.projectsErr != nil {
		return common.ProjectPage{}, s.projectsErr
	}
	return s.projects, nil
}

// ListTeams records the latest request and returns fixture teams.
func (s *stubOrgDirectory) ListTeams(_ context.Context, req common.ListTeamsRequest) ([]common.Team, error) {
	s.lastTeams = req
	if s.teamsErr != nil {
		return nil, s.teamsErr
	}
	return append([]common.Team(nil), s.teams...), nil
}

// ListTeamMembers records the latest request and returns fixture members.
func (s *stubOrgDirectory) ListTeamMembers(_ context.Context, req common.ListTeamMembersRequest) ([]common.TeamMember, error) {
	s.lastMembers = req
	if s.membersErr != nil {
		return nil, s.membersErr
	}
	return append([]common.TeamMember(nil), s.members...), nil
}

// GetIdentityIDs records the latest filter and returns fixture summaries.
func (s *stubOrgDirectory) GetIdentityIDs(_ context.Context, searchFilter string) ([]common.IdentitySummary, error) {
	s.lastSearch = searchFilter
	if s.identityErr != nil {
		return nil, s.identityErr
	}
	return append([]common.IdentitySummary(nil), s.identities...), nil
}

// jsonRPCResponse models minimal JSON-RPC response fields used in MCP adapter tests.
type jsonRPCResponse struct {
	ID     float64        `json:"id"`
	Result map[string]any `json:"result"`
}

// callToolRequest constructs one deterministic tools/call JSON-RPC request payload.
func callToolRequest(id int, toolName string, arguments map[string]any) map[string]any {
	return map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  "tools/call",
		"params": map[string]any{
			"name":      toolName,
			"arguments": arguments,
		},
	}
}

// toolResultText decodes the first text entry from one tool-call result payload.
func toolResultText(t *testing.T, result map[string]any) string {
	t.Helper()

	contentRaw, ok := result["content"].([]any)
	if !ok || len(contentRaw) == 0 {
		t.Fatalf("content missing in tool result: %#v", result)
	}
	first, ok := contentRaw[0].(map[string]any)
	if !ok {
		t.Fatalf("first content entry has unexpected type: %#v", contentRaw[0])
	}
	text, ok := first["text"].(string)
	if !ok {
		t.Fatalf("content text missing in tool result: %#v", first)
	}
	return text
}

// toolResultIsError reports the isError flag of one tool-call result payload.
func toolResultIsError(result map[string]any) bool {
	flag, ok := result["isError"].(bool)
	return ok && flag
}

// postJSONRPC sends one JSON-RPC payload and decodes the response body.
func postJSONRPC(t *testing.T, client *http.Client, url string, payload any) (*http.Response, jsonRPCResponse) {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	var decoded jsonRPCResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if err := resp.Body.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return resp, decoded
}

// initializeRequest builds a deterministic MCP initialize request payload.
func initializeRequest() map[string]any {
	return map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "initialize",
		"params": map[string]any{
			"protocolVersion": mcp.LATEST_PROTOCOL_VERSION,
			"clientInfo": map[string]any{
				"name":    "orgbridge-test",
				"version": "1.0.0",
			},
		},
	}
}

// newToolServer builds one MCP HTTP test server over the stub directory.
func newToolServer(t *testing.T, directory common.OrgDirectory) *httptest.Server {
	t.Helper()
	handler, err := NewHandler(Config{}, directory)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	_, _ = postJSONRPC(t, server.Client(), server.URL, initializeRequest())
	return server
}

// TestHandlerUsesStatelessTransport verifies MCP transport does not issue session ids.
func TestHandlerUsesStatelessTransport(t *testing.T) {
	handler, err := NewHandler(Config{}, &stubOrgDirectory{})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	server := httptest.NewServer(handler)
	defer server.Close()

	resp, decoded := postJSONRPC(t, server.Client(), server.URL, initializeRequest())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if decoded.ID != 1 {
		t.Fatalf("id = %v, want 1", decoded.ID)
	}
	if got := resp.Header.Get("Mcp-Session-Id"); got != "" {
		t.Fatalf("Mcp-Session-Id header = %q, want empty (stateless transport)", got)
	}
}

// TestHandlerRegistersAllTools verifies MCP tool discovery lists every organization tool.
func TestHandlerRegistersAllTools(t *testing.T) {
	server := newToolServer(t, &stubOrgDirectory{})

	_, toolsResp := postJSONRPC(t, server.Client(), server.URL, map[string]any{
		"jsonrpc": "2.0",
		"id":      2,
		"method":  "tools/list",
	})

	toolsRaw, ok := toolsResp.Result["tools"].([]any)
	if !ok {
		t.Fatalf("tools list payload missing tools: %#v", toolsResp.Result)
	}
	toolNames := make([]string, 0, len(toolsRaw))
	for _, toolRaw := range toolsRaw {
		toolMap, ok := toolRaw.(map[string]any)
		if !ok {
			continue
		}
		if name, ok := toolMap["name"].(string); ok {
			toolNames = append(toolNames, name)
		}
	}
	for _, want := range []string{
		"azdo_list_projects",
		"azdo_list_project_teams",
		"azdo_list_team_members",
		"azdo_get_identity_ids",
	} {
		if !slices.Contains(toolNames, want) {
			t.Fatalf("tools/list missing %q in %v", want, toolNames)
		}
	}
}

// TestListProjectsToolReturnsPrettyJSON verifies the success envelope is indented JSON.
func TestListProjectsToolReturnsPrettyJSON(t *testing.T) {
	directory := &stubOrgDirectory{
		projects: common.ProjectPage{
			Projects: []common.Project{{
				ID:             "p1",
				Name:           "Fabrikam",
				State:          "wellFormed",
				LastUpdateTime: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
			}},
			ContinuationToken: "300",
		},
	}
	server := newToolServer(t, directory)

	_, decoded := postJSONRPC(t, server.Client(), server.URL, callToolRequest(2, "azdo_list_projects", map[string]any{
		"name_filter":  "fab",
		"state_filter": "wellFormed",
		"top":          10,
		"skip":         5,
	}))

	if toolResultIsError(decoded.Result) {
		t.Fatalf("unexpected error result: %#v", decoded.Result)
	}
	text := toolResultText(t, decoded.Result)
	if !strings.Contains(text, "\n  \"projects\"") {
		t.Fatalf("expected indented projects payload, got %q", text)
	}
	if !strings.Contains(text, `"continuationToken": "300"`) {
		t.Fatalf("expected continuation token in payload, got %q", text)
	}
	if directory.lastProjects.NameFilter != "fab" || directory.lastProjects.Top != 10 || directory.lastProjects.Skip != 5 {
		t.Fatalf("unexpected forwarded request: %+v", directory.lastProjects)
	}
}

// TestListProjectsToolEmptyIsErrorResult verifies an empty page yields an error-flagged result.
func TestListProjectsToolEmptyIsErrorResult(t *testing.T) {
	server := newToolServer(t, &stubOrgDirectory{})

	_, decoded := postJSONRPC(t, server.Client(), server.URL, callToolRequest(2, "azdo_list_projects", map[string]any{}))

	if !toolResultIsError(decoded.Result) {
		t.Fatalf("expected error result for empty page: %#v", decoded.Result)
	}
	if got := toolResultText(t, decoded.Result); got != "No projects found" {
		t.Fatalf("text = %q, want %q", got, "No projects found")
	}
}

// TestListProjectsToolUpstreamError verifies upstream failures carry the action prefix.
func TestListProjectsToolUpstreamError(t *testing.T) {
	server := newToolServer(t, &stubOrgDirectory{projectsErr: errors.New("401 unauthorized")})

	_, decoded := postJSONRPC(t, server.Client(), server.URL, callToolRequest(2, "azdo_list_projects", map[string]any{}))

	if !toolResultIsError(decoded.Result) {
		t.Fatalf("expected error result: %#v", decoded.Result)
	}
	if got := toolResultText(t, decoded.Result); got != "Error fetching projects: 401 unauthorized" {
		t.Fatalf("text = %q", got)
	}
}

// TestListTeamsToolRequiresProject verifies behavior for the covered scenario.
func TestListTeamsToolRequiresProject(t *testing.T) {
	server := newToolServer(t, &stubOrgDirectory{teams: []common.Team{{ID: "t1", Name: "Core"}}})

	_, decoded := postJSONRPC(t, server.Client(), server.URL, callToolRequest(2, "azdo_list_project_teams", map[string]any{}))
	if !toolResultIsError(decoded.Result) {
		t.Fatalf("expected error result for missing project: %#v", decoded.Result)
	}
}

// TestListTeamsToolForwardsArguments verifies behavior for the covered scenario.
func TestListTeamsToolForwardsArguments(t *testing.T) {
	directory := &stubOrgDirectory{teams: []common.Team{{ID: "t1", Name: "Core", ProjectName: "Fabrikam"}}}
	server := newToolServer(t, directory)

	_, decoded := postJSONRPC(t, server.Client(), server.URL, callToolRequest(2, "azdo_list_project_teams", map[string]any{
		"project": "Fabrikam",
		"mine":    true,
		"top":     3,
	}))

	if toolResultIsError(decoded.Result) {
		t.Fatalf("unexpected error result: %#v", decoded.Result)
	}
	if !directory.lastTeams.Mine || directory.lastTeams.Project != "Fabrikam" || directory.lastTeams.Top != 3 {
		t.Fatalf("unexpected forwarded request: %+v", directory.lastTeams)
	}
	if text := toolResultText(t, decoded.Result); !strings.Contains(text, `"name": "Core"`) {
		t.Fatalf("expected team payload, got %q", text)
	}
}

// TestListTeamMembersToolRendersNullFields verifies unresolved identity fields render as JSON null.
func TestListTeamMembersToolRendersNullFields(t *testing.T) {
	displayName := "Ghost"
	directory := &stubOrgDirectory{
		members: []common.TeamMember{{DisplayName: &displayName}},
	}
	server := newToolServer(t, directory)

	_, decoded := postJSONRPC(t, server.Client(), server.URL, callToolRequest(2, "azdo_list_team_members", map[string]any{
		"project": "Fabrikam",
		"team":    "Core",
	}))

	if toolResultIsError(decoded.Result) {
		t.Fatalf("unexpected error result: %#v", decoded.Result)
	}
	text := toolResultText(t, decoded.Result)
	if !strings.Contains(text, `"id": null`) || !strings.Contains(text, `"descriptor": null`) {
		t.Fatalf("expected null identity fields, got %q", text)
	}
	if !strings.Contains(text, `"displayName": "Ghost"`) {
		t.Fatalf("expected display name preserved, got %q", text)
	}
}

// TestListTeamMembersToolEmptyIsErrorResult verifies behavior for the covered scenario.
func TestListTeamMembersToolEmptyIsErrorResult(t *testing.T) {
	server := newToolServer(t, &stubOrgDirectory{})

	_, decoded := postJSONRPC(t, server.Client(), server.URL, callToolRequest(2, "azdo_list_team_members", map[string]any{
		"project": "Fabrikam",
		"team":    "Core",
	}))

	if !toolResultIsError(decoded.Result) {
		t.Fatalf("expected error result: %#v", decoded.Result)
	}
	if got := toolResultText(t, decoded.Result); got != "No team members found" {
		t.Fatalf("text = %q, want %q", got, "No team members found")
	}
}

// TestGetIdentityIDsTool verifies behavior for the covered scenario.
func TestGetIdentityIDsTool(t *testing.T) {
	directory := &stubOrgDirectory{
		identities: []common.IdentitySummary{{ID: "42", DisplayName: "Jane Doe", Descriptor: "aad.abc"}},
	}
	server := newToolServer(t, directory)

	_, decoded := postJSONRPC(t, server.Client(), server.URL, callToolRequest(2, "azdo_get_identity_ids", map[string]any{
		"search_filter": "jane",
	}))

	if toolResultIsError(decoded.Result) {
		t.Fatalf("unexpected error result: %#v", decoded.Result)
	}
	if directory.lastSearch != "jane" {
		t.Fatalf("search filter = %q, want %q", directory.lastSearch, "jane")
	}
	if text := toolResultText(t, decoded.Result); !strings.Contains(text, `"id": "42"`) {
		t.Fatalf("expected identity payload, got %q", text)
	}
}

// TestErrorResultFallbackMessage verifies empty error text maps to the fallback message.
func TestErrorResultFallbackMessage(t *testing.T) {
	server := newToolServer(t, &stubOrgDirectory{identityErr: errors.New("")})

	_, decoded := postJSONRPC(t, server.Client(), server.URL, callToolRequest(2, "azdo_get_identity_ids", map[string]any{
		"search_filter": "jane",
	}))

	if !toolResultIsError(decoded.Result) {
		t.Fatalf("expected error result: %#v", decoded.Result)
	}
	if got := toolResultText(t, decoded.Result); got != "Error fetching identities: Unknown error occurred" {
		t.Fatalf("text = %q", got)
	}
}
