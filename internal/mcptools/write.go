package mcptools

import (
	"context"
	"time"

	"github.com/chris-regnier/mindary/internal/diary"
	"github.com/chris-regnier/mindary/internal/record"
	"github.com/chris-regnier/mindary/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CreateRecordHandler returns the handler function for the create_record MCP tool.
func CreateRecordHandler(store storage.Storage, loc *time.Location) func(ctx context.Context, req *mcp.CallToolRequest, input CreateRecordInput) (*mcp.CallToolResult, RecordResult, error) {
	src := diary.LocalSource{Store: store}
	return func(ctx context.Context, req *mcp.CallToolRequest, input CreateRecordInput) (*mcp.CallToolResult, RecordResult, error) {
		day, err := resolveDay(input.Date, loc)
		if err != nil {
			return nil, RecordResult{}, err
		}
		category, err := record.ParseCategory(input.Category)
		if err != nil {
			return nil, RecordResult{}, err
		}

		r, err := src.CreateRecord(ctx, diary.Draft{
			Day:      day,
			Category: category,
			Title:    input.Title,
			Content:  input.Content,
		})
		if err != nil {
			return nil, RecordResult{}, err
		}
		return nil, toRecordResult(r), nil
	}
}

// AddMemoHandler returns the handler function for the add_memo MCP tool.
func AddMemoHandler(store storage.Storage, loc *time.Location) func(ctx context.Context, req *mcp.CallToolRequest, input AddMemoInput) (*mcp.CallToolResult, MemoResult, error) {
	src := diary.LocalSource{Store: store}
	return func(ctx context.Context, req *mcp.CallToolRequest, input AddMemoInput) (*mcp.CallToolResult, MemoResult, error) {
		day, err := resolveDay(input.Date, loc)
		if err != nil {
			return nil, MemoResult{}, err
		}

		m, err := src.CreateMemo(ctx, day, input.Role, input.Content)
		if err != nil {
			return nil, MemoResult{}, err
		}
		return nil, MemoResult{
			ID:      m.ID,
			Date:    m.Date,
			Role:    m.Role,
			Preview: truncate(m.Content, 100),
		}, nil
	}
}
