package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Xek-YP/ya-note/internal/store"
)

// MCPServer exposes read-only note tools over the Model Context Protocol.
type MCPServer struct {
	store store.Store
}

func NewMCPServer(st store.Store) *MCPServer {
	return &MCPServer{store: st}
}

func (s *MCPServer) listNotesHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username, err := request.RequireString("username")
	if err != nil {
		return mcp.NewToolResultError("username is required"), nil
	}

	userID, err := s.store.GetUserID(username)
	if errors.Is(err, store.ErrNotFound) {
		return mcp.NewToolResultError("user not found"), nil
	} else if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("database error: %v", err)), nil
	}

	notes, err := s.store.ListNotesByAuthor(userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("database error: %v", err)), nil
	}

	if len(notes) == 0 {
		return mcp.NewToolResultText("No notes found for this user."), nil
	}

	var noteStrings []string
	for _, n := range notes {
		noteStrings = append(noteStrings, fmt.Sprintf("[%s] %s\n%s", n.Slug, n.Title, n.Text))
	}

	return mcp.NewToolResultText(fmt.Sprintf("Found %d notes:\n%s", len(notes), strings.Join(noteStrings, "\n"))), nil
}

// NewHTTPServer wires the note tools into a streamable HTTP MCP server.
func NewHTTPServer(st store.Store) *server.StreamableHTTPServer {
	s := NewMCPServer(st)

	mcpServer := server.NewMCPServer("YaNote", "1.0.0")

	tool := mcp.NewTool("list_notes",
		mcp.WithDescription("List all notes belonging to a user."),
		mcp.WithString("username", mcp.Required(), mcp.Description("The username to fetch notes for")),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	mcpServer.AddTool(tool, s.listNotesHandler)

	return server.NewStreamableHTTPServer(mcpServer, server.WithStateLess(true))
}
