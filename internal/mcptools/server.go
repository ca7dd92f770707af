package mcptools

import (
	"context"
	"time"

	"github.com/chris-regnier/mindary/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewDiaryMCPServer creates an in-memory MCP server exposing diary tools.
// Returns the server and a client transport for connecting to it.
func NewDiaryMCPServer(store storage.Storage, loc *time.Location) (*mcp.Server, mcp.Transport) {
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	server := CreateMCPServer(store, loc)

	go func() {
		_, _ = server.Connect(context.Background(), serverTransport, nil)
	}()

	return server, clientTransport
}

// CreateMCPServer creates an MCP server with registered diary tools.
// An empty date argument means today in loc.
func CreateMCPServer(store storage.Storage, loc *time.Location) *mcp.Server {
	if loc == nil {
		loc = time.UTC
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "mindary",
		Version: "1.0.0",
	}, nil)

	// Read tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_diary",
		Description: "Get the memos (chats) and records written on a day",
	}, GetDiaryHandler(store, loc))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_record",
		Description: "Get a single record by ID",
	}, GetRecordHandler(store))

	// Write tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_record",
		Description: "Create a record on a day in one of the categories 일상, 영화, 음악, 독서, 에세이, 기타",
	}, CreateRecordHandler(store, loc))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_memo",
		Description: "Add a chat-style memo to a day",
	}, AddMemoHandler(store, loc))

	return server
}
