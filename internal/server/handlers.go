package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/seamtest/internal/imaging"
	"github.com/ironsheep/seamtest/internal/seam"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_info", "check_seam").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.log.Error(err, "Tool execution failed", "tool", params.Name)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_info":
		return s.handleImageInfo(args)
	case "check_seam":
		return s.handleCheckSeam(ctx, args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type imageInfoArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type checkSeamArgs struct {
	seam.Params
	Path         string  `json:"path"`
	Blur         float64 `json:"blur"`
	IncludeSteps bool    `json:"include_steps"`
}

// CheckSeamResult is the check_seam tool output.
type CheckSeamResult struct {
	SeamDetected bool         `json:"seam_detected"`
	Result       *seam.Result `json:"result"`
}

func (s *Server) handleCheckSeam(ctx context.Context, args json.RawMessage) (interface{}, error) {
	a := checkSeamArgs{
		Params: seam.Params{TileSize: 1, StepSize: 1, Orientation: seam.Horizontal},
	}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	img, err := s.cache.LoadPrepared(a.Path, a.Blur)
	if err != nil {
		return nil, err
	}

	checker := seam.NewChecker(img, s.store, s.log.WithValues("path", a.Path))
	res, err := checker.CheckOffset(ctx, a.Params)
	if err != nil {
		return nil, err
	}

	if !a.IncludeSteps {
		res.Steps = nil
	}
	return &CheckSeamResult{
		SeamDetected: res.SeamDetected(),
		Result:       res,
	}, nil
}
