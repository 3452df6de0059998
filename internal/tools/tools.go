// Package tools contains the handler implementations for snowgate's tool catalog.
package tools

import (
	"context"
	"fmt"

	"github.com/snowgate/snowgate/internal/config"
	"github.com/snowgate/snowgate/internal/sqlwrite"
	"gorm.io/gorm"
)

// Content is a single text item in a tool's result.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NewTextContent creates a text Content item.
func NewTextContent(text string) Content {
	return Content{Type: "text", Text: text}
}

// Request carries the arguments and collaborator handles for one tool invocation.
// The dispatch gateway populates it according to the tool's calling convention:
// Exclusions is set only for enumeration tools.
type Request struct {
	Args map[string]any

	DB       *gorm.DB
	Detector *sqlwrite.Detector
	Memo     *Memo

	AllowWrite         bool
	Exclusions         *config.ExclusionPatterns
	ExcludeJSONResults bool
}

// HandlerFunc executes one tool invocation.
// It returns either a []Content sequence or a scalar value;
// the dispatch gateway normalizes both into the wire shape.
type HandlerFunc func(ctx context.Context, req *Request) (any, error)

// stringArg extracts a required string argument from the request.
func stringArg(req *Request, name string) (string, error) {
	v, ok := req.Args[name]
	if !ok {
		return "", fmt.Errorf("missing required argument: %s", name)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("argument %s must be a non-empty string", name)
	}
	return s, nil
}
