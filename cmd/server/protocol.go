// Package main provides a TCP server for the database editor.
package main

import (
	"encoding/json"
)

// Request represents a statement from the client.
type Request struct {
	Query string `json:"query"`
}

// Response represents the server's answer to one line.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Type    string          `json:"type,omitempty"` // "query", "commit", "status" or "auth"
	Result  json.RawMessage `json:"result,omitempty"`
}

// QueryResponse contains tabular query results.
type QueryResponse struct {
	Columns     []string         `json:"columns"`
	Rows        []map[string]any `json:"rows"`
	RecordsRead int              `json:"records_read"`
	TimeMs      float64          `json:"time_ms"`
}

// CommitResponse contains mutation results and the journal commit id.
type CommitResponse struct {
	Commit         string  `json:"commit,omitempty"`
	Table          string  `json:"table,omitempty"`
	RecordsWritten int     `json:"records_written,omitempty"`
	RecordsDeleted int     `json:"records_deleted,omitempty"`
	TimeMs         float64 `json:"time_ms"`
}

// StatusResponse reports a refused statement, such as a DELETE without a
// WHERE clause.
type StatusResponse struct {
	Message string  `json:"message"`
	TimeMs  float64 `json:"time_ms"`
}

// AuthResponse reports an authentication attempt.
type AuthResponse struct {
	Authenticated bool   `json:"authenticated"`
	Identity      string `json:"identity,omitempty"`
	ExpiresIn     int    `json:"expires_in,omitempty"`
}

// EncodeResponse serializes a Response to JSON with a newline.
func EncodeResponse(resp Response) ([]byte, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// DecodeRequest parses a JSON request from a byte slice.
func DecodeRequest(data []byte) (Request, error) {
	var req Request
	err := json.Unmarshal(data, &req)
	return req, err
}
