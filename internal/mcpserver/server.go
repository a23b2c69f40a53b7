// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the indexed corpus to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/anyt/internal/apperr"
	"github.com/starford/anyt/internal/docservice"
)

const (
	contractURI   = "anyt://field-contract"
	searchLimit   = 20
	listPageLimit = 50
)

// Server wraps the MCP server with corpus tools.
type Server struct {
	mcp *server.MCPServer
	svc *docservice.Service
}

// New creates a new MCP server with all tools registered.
func New(svc *docservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"anyt",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_documents",
		mcp.WithDescription("Full-text search through document headlines and bodies."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 20)")),
	), s.searchDocuments)

	s.mcp.AddTool(mcp.NewTool("read_document",
		mcp.WithDescription("Read every field of a corpus document as JSON. "+
			"Absent scalar fields are null, absent lists are empty. "+
			"See the "+contractURI+" resource for the exact contract."),
		mcp.WithNumber("guid", mcp.Required(), mcp.Description("Document GUID")),
	), s.readDocument)

	s.mcp.AddTool(mcp.NewTool("describe_document",
		mcp.WithDescription("Return the one-line diagnostic rendering of a document."),
		mcp.WithNumber("guid", mcp.Required(), mcp.Description("Document GUID")),
	), s.describeDocument)

	s.mcp.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List documents, optionally filtered by online section."),
		mcp.WithString("section", mcp.Description("Online section to filter by (empty for all)")),
		mcp.WithString("sort", mcp.Description("Sort field"), mcp.Enum("guid", "date", "headline")),
		mcp.WithNumber("limit", mcp.Description("Page size (default 50)")),
		mcp.WithNumber("offset", mcp.Description("Page offset")),
	), s.listDocuments)

	s.mcp.AddTool(mcp.NewTool("list_sections",
		mcp.WithDescription("List online sections with their document counts."),
	), s.listSections)

	s.mcp.AddTool(mcp.NewTool("get_field_contract",
		mcp.WithDescription("Returns the field contract describing when each document field is absent or empty."),
	), s.getFieldContract)

	// Resource: field contract.
	s.mcp.AddResource(
		mcp.NewResource(contractURI, "Document Field Contract",
			mcp.WithResourceDescription("Absent and empty semantics of every document field."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readFieldContractResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func lookupError(guid int, err error) *mcp.CallToolResult {
	if errors.Is(err, apperr.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %d", guid))
	}
	return mcp.NewToolResultError(err.Error())
}

func (s *Server) searchDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	hits, err := s.svc.Search(ctx, query, req.GetInt("limit", searchLimit))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(hits)
}

func (s *Server) readDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	guid, err := req.RequireInt("guid")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, err := s.svc.GetDocument(ctx, guid)
	if err != nil {
		return lookupError(guid, err), nil
	}
	return jsonResult(doc)
}

func (s *Server) describeDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	guid, err := req.RequireInt("guid")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	desc, err := s.svc.Describe(ctx, guid)
	if err != nil {
		return lookupError(guid, err), nil
	}
	return mcp.NewToolResultText(desc), nil
}

func (s *Server) listDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, total, err := s.svc.ListDocuments(ctx,
		req.GetInt("limit", listPageLimit),
		req.GetInt("offset", 0),
		req.GetString("section", ""),
		req.GetString("sort", ""),
	)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"documents": items, "total": total})
}

func (s *Server) listSections(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sections, err := s.svc.Sections(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(sections) == 0 {
		return mcp.NewToolResultText("no sections indexed"), nil
	}
	lines := make([]string, len(sections))
	for i, sc := range sections {
		lines[i] = fmt.Sprintf("%s\t%d", sc.Section, sc.Count)
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) getFieldContract(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(FieldContract), nil
}

func (s *Server) readFieldContractResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      contractURI,
			MIMEType: "text/markdown",
			Text:     FieldContract,
		},
	}, nil
}
