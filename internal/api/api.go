// Package api defines the JSON contract of the /mindary endpoints shared
// by the server and the HTTP client.
package api

import "github.com/chris-regnier/mindary/internal/record"

// DiaryPath is the date-scoped read endpoint: GET /mindary?date=YYYY-MM-DD.
const DiaryPath = "/mindary"

// RecordsPath accepts POST CreateRecordRequest.
const RecordsPath = "/mindary/records"

// ChatsPath accepts POST CreateMemoRequest.
const ChatsPath = "/mindary/chats"

// DiaryResponse is the body of GET /mindary.
type DiaryResponse struct {
	Chats   []record.Memo   `json:"chats"`
	Records []record.Record `json:"records"`
}

// CreateRecordRequest is the body of POST /mindary/records.
type CreateRecordRequest struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Category string `json:"category" validate:"required,oneof=일상 영화 음악 독서 에세이 기타"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

// CreateMemoRequest is the body of POST /mindary/chats.
type CreateMemoRequest struct {
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Role    string `json:"role,omitempty" validate:"max=32"`
	Content string `json:"content" validate:"required"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}
