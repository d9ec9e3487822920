package mcpapi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// jsonResult renders one payload as an indented JSON text result.
func jsonResult(payload any) (*mcp.CallToolResult, error) {
	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode tool result: %w", err)
	}
	return mcp.NewToolResultText(string(encoded)), nil
}

// errorResult renders one failed action as an error-flagged text result.
func errorResult(action string, err error) *mcp.CallToolResult {
	message := "Unknown error occurred"
	if err != nil && strings.TrimSpace(err.Error()) != "" {
		message = err.Error()
	}
	return mcp.NewToolResultError(fmt.Sprintf("Error %s: %s", action, message))
}
