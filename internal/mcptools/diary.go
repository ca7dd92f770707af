package mcptools

import (
	"context"
	"time"

	"github.com/chris-regnier/mindary/internal/diary"
	"github.com/chris-regnier/mindary/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GetDiaryHandler returns the handler function for the get_diary MCP tool.
func GetDiaryHandler(store storage.Storage, loc *time.Location) func(ctx context.Context, req *mcp.CallToolRequest, input GetDiaryInput) (*mcp.CallToolResult, GetDiaryOutput, error) {
	src := diary.LocalSource{Store: store}
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetDiaryInput) (*mcp.CallToolResult, GetDiaryOutput, error) {
		day, err := resolveDay(input.Date, loc)
		if err != nil {
			return nil, GetDiaryOutput{}, err
		}

		snap, err := src.Fetch(ctx, day)
		if err != nil {
			return nil, GetDiaryOutput{}, err
		}

		return nil, GetDiaryOutput{Date: day, Chats: snap.Chats, Records: snap.Records}, nil
	}
}

// GetRecordHandler returns the handler function for the get_record MCP tool.
func GetRecordHandler(store storage.Storage) func(ctx context.Context, req *mcp.CallToolRequest, input GetRecordInput) (*mcp.CallToolResult, RecordResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetRecordInput) (*mcp.CallToolResult, RecordResult, error) {
		r, err := store.GetRecord(input.ID)
		if err != nil {
			return nil, RecordResult{}, err
		}
		return nil, toRecordResult(r), nil
	}
}
