package common

import "github.com/Rana718/ddlview/internal/parser"

// Response is a standard API response
type Response struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message,omitempty"`
	Data        any                 `json:"data,omitempty"`
	Diagnostics []parser.Diagnostic `json:"diagnostics,omitempty"`
}

// ParseResult is what a parse store returns and what the Redis store persists.
type ParseResult struct {
	Checksum    string              `json:"checksum"`
	Document    parser.Document     `json:"document"`
	Diagnostics []parser.Diagnostic `json:"diagnostics,omitempty"`
	Cached      bool                `json:"-"`
}

// ParseRequest is the JSON form of a parse request body
type ParseRequest struct {
	SQL string `json:"sql"`
}

// TableSummary represents basic table information
type TableSummary struct {
	Name       string `json:"name"`
	FieldCount int    `json:"field_count"`
}

type Health struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
}
