package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sanonone/kektorkv/pkg/core"
	"github.com/sanonone/kektorkv/pkg/metrics"
)

// Service adapts Store operations to MCP tool handlers.
// Every handler makes exactly one Store call.
type Service struct {
	store core.Store
}

// NewService creates a Service backed by store.
func NewService(store core.Store) *Service {
	return &Service{store: store}
}

// --- Tool Handlers ---

// Set handles kv_set.
func (s *Service) Set(ctx context.Context, req *mcp.CallToolRequest, args KVSetArgs) (*mcp.CallToolResult, KVStatusResult, error) {
	s.store.Set(args.Key, args.Value)
	metrics.ObserveSet()
	return nil, KVStatusResult{Status: "Value set"}, nil
}

// Get handles kv_get with a single lookup.
func (s *Service) Get(ctx context.Context, req *mcp.CallToolRequest, args KVKeyArgs) (*mcp.CallToolResult, KVGetResult, error) {
	value, found := s.store.Get(args.Key)
	metrics.ObserveGet(found)
	return nil, KVGetResult{Found: found, Value: value}, nil
}

// Remove handles kv_remove.
func (s *Service) Remove(ctx context.Context, req *mcp.CallToolRequest, args KVKeyArgs) (*mcp.CallToolResult, KVStatusResult, error) {
	s.store.Remove(args.Key)
	metrics.ObserveRemove()
	return nil, KVStatusResult{Status: "Value removed"}, nil
}
