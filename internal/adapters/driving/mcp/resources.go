package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/services"
)

const (
	// uriScheme is the custom URI scheme for skillgap resources.
	uriScheme = "skillgap://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "roles",
		Name:        "roles",
		Description: "Preset target roles",
		MIMEType:    "application/json",
	}, s.handleRolesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "titles",
		Name:        "titles",
		Description: "Distinct job titles in the indexed job descriptions",
		MIMEType:    "application/json",
	}, s.handleTitlesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "roles/{role}/jobs",
		Name:        "role-jobs",
		Description: "Job description excerpts most relevant to a role, as fed to the gap report",
		MIMEType:    "text/markdown",
	}, s.handleRoleJobsResource)
}

// handleRolesResource returns the preset roles.
func (s *Server) handleRolesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, domain.RolePresets)
}

// handleTitlesResource returns the indexed job titles.
func (s *Server) handleTitlesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Analyzer.JobTitles(ctx))
}

// handleRoleJobsResource returns the job context block for a role.
func (s *Server) handleRoleJobsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// skillgap://roles/{role}/jobs
	role := extractRole(req.Params.URI)
	if role == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	results, err := s.ports.Analyzer.GetRelevantJobs(ctx, role, 0)
	if err != nil {
		return nil, fmt.Errorf("retrieving jobs: %w", err)
	}
	if len(results) == 0 {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     services.BuildJobContext(results),
		}},
	}, nil
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractRole extracts the unescaped role from a URI like skillgap://roles/{role}/jobs.
func extractRole(uri string) string {
	const prefix = uriScheme + "roles/"
	const suffix = "/jobs"

	if len(uri) <= len(prefix)+len(suffix) ||
		!strings.HasPrefix(uri, prefix) || !strings.HasSuffix(uri, suffix) {
		return ""
	}

	raw := strings.TrimSuffix(strings.TrimPrefix(uri, prefix), suffix)
	role, err := url.PathUnescape(raw)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(role)
}
