package mcptools

import "github.com/chris-regnier/mindary/internal/record"

// GetDiaryInput is the input schema for the get_diary MCP tool.
type GetDiaryInput struct {
	Date string `json:"date,omitempty" jsonschema-description:"Day as YYYY-MM-DD (default today)"`
}

// GetDiaryOutput is the output schema for the get_diary MCP tool.
type GetDiaryOutput struct {
	Date    string          `json:"date"`
	Chats   []record.Memo   `json:"chats"`
	Records []record.Record `json:"records"`
}

// GetRecordInput is the input schema for the get_record MCP tool.
type GetRecordInput struct {
	ID string `json:"id" jsonschema-description:"Record ID"`
}

// CreateRecordInput is the input schema for the create_record MCP tool.
type CreateRecordInput struct {
	Date     string `json:"date,omitempty" jsonschema-description:"Day as YYYY-MM-DD (default today)"`
	Category string `json:"category" jsonschema-description:"One of 일상, 영화, 음악, 독서, 에세이, 기타"`
	Title    string `json:"title,omitempty" jsonschema-description:"Record title"`
	Content  string `json:"content,omitempty" jsonschema-description:"Record body"`
}

// AddMemoInput is the input schema for the add_memo MCP tool.
type AddMemoInput struct {
	Date    string `json:"date,omitempty" jsonschema-description:"Day as YYYY-MM-DD (default today)"`
	Role    string `json:"role,omitempty" jsonschema-description:"Speaker, e.g. user or assistant"`
	Content string `json:"content" jsonschema-description:"Memo text"`
}

// RecordResult is the output format for record-returning MCP tools.
type RecordResult struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

// MemoResult is the output format for add_memo.
type MemoResult struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Role    string `json:"role,omitempty"`
	Preview string `json:"preview"`
}

func toRecordResult(r record.Record) RecordResult {
	return RecordResult{
		ID:       r.ID,
		Date:     r.Date,
		Category: string(r.Category),
		Title:    r.Title,
		Content:  r.Content,
	}
}
