package types

// ToolInputSchema defines the schema for the input parameters of a tool
type ToolInputSchema struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
	Required   []string       `json:"required,omitempty"`
}

// Tool represents a tool exposed by the snowgate registry.
// It is the projection of a catalog entry that crosses the API boundary:
// the handler reference and policy tags are internal-only and never leave the server.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema ToolInputSchema `json:"input_schema"`
}

// ToolListResponse is the response body of the tool listing endpoint.
type ToolListResponse struct {
	Tools []Tool `json:"tools"`
}

// ToolInvokeResult represents the outcome of a Tool call.
// It is designed to be passed down to the end user.
// Exactly one of Result and Error is populated: a failed invocation carries its
// message in Error and is still delivered with a normal HTTP status, so clients
// have a single envelope to parse.
type ToolInvokeResult struct {
	// Result is either a single string or a list of strings,
	// depending on what the tool handler returned.
	Result any `json:"result,omitempty"`

	Error string `json:"error,omitempty"`
}
