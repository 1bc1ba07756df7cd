package mcp

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Xek-YP/ya-note/internal/store/sqlstore"
)

func TestListNotesTool(t *testing.T) {
	st, err := sqlstore.New("sqlite3", filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	defer st.Close()

	srv := NewMCPServer(st)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	userID, err := st.CreateUser("mcpuser", string(hashedPassword))
	require.NoError(t, err)

	_, err = st.CreateNote(userID, "Первая", "Текст первой", "pervaia")
	require.NoError(t, err)
	_, err = st.CreateNote(userID, "Вторая", "Текст второй", "vtoraia")
	require.NoError(t, err)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"username": "mcpuser",
			},
		},
	}

	result, err := srv.listNotesHandler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, result.IsError, "result: %v", result)

	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent")
	assert.True(t, strings.Contains(textContent.Text, "Первая"))
	assert.True(t, strings.Contains(textContent.Text, "Вторая"))
	assert.True(t, strings.Contains(textContent.Text, "pervaia"))

	// Unknown user
	req = mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"username": "nonexistent",
			},
		},
	}
	result, err = srv.listNotesHandler(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.IsError, "expected error for nonexistent user")
}
