// Package mcp provides a Model Context Protocol server for quill.
// It exposes diary search and writing as MCP tools that any MCP-capable
// agent can use.
package mcp

import (
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/quill/internal/search"
	"github.com/gorewood/quill/internal/store"
)

// Deps holds what the tools operate on.
type Deps struct {
	Store  *store.Store
	Search *search.Engine
	// Now returns the current time; nil uses time.Now.
	Now func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// NewServer creates an MCP server with all quill tools registered.
func NewServer(version string, deps Deps) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "quill",
		Version: version,
	}, nil)
	registerTools(server, deps)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for write_entry. Writing the same
// entry twice leaves the partition unchanged.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(false),
	}
}

func registerTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_entries",
		Description: "Find diary entries for one day. Returns each entry's day name, mood, body and side notes.",
		Annotations: readOnlyAnnotations(),
	}, handleFindEntries(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_partitions",
		Description: "List the monthly diary files in chronological order.",
		Annotations: readOnlyAnnotations(),
	}, handleListPartitions(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_moods",
		Description: "List the mood markers an entry can carry, with their emoji and matching keywords.",
		Annotations: readOnlyAnnotations(),
	}, handleListMoods())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "write_entry",
		Description: "Write a diary entry for a day with an optional mood and up to two side notes. Identical entries are stored once.",
		Annotations: writeAnnotations(),
	}, handleWriteEntry(deps))
}
