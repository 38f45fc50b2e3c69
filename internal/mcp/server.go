package mcp

import (
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sanonone/kektorkv/pkg/core"
)

// NewMCPServer exposes the store as three MCP tools.
func NewMCPServer(store core.Store) *mcp.Server {
	service := NewService(store)

	s := mcp.NewServer(&mcp.Implementation{
		Name:    "kektorkv",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "kv_set",
		Description: "Store a text value under a key, replacing any previous value.",
	}, service.Set)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "kv_get",
		Description: "Read the value stored under a key. Reports found=false when the key is absent.",
	}, service.Get)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "kv_remove",
		Description: "Delete a key. Removing a missing key succeeds.",
	}, service.Remove)

	return s
}

// NewHTTPHandler serves a single shared MCP server over streamable HTTP.
func NewHTTPHandler(store core.Store) http.Handler {
	s := NewMCPServer(store)
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s
	}, nil)
}
