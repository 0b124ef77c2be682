package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_info",
			Description: "Load a texture and return its dimensions, format, alpha channel presence and file size. Use it to pick a seam offset and tile size that fit the image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "check_seam",
			Description: "Scan a tileable texture for a visible seam. Tiles just before and at the seam offset are compared step by step along the chosen axis; colour and brightness differences above 10% are significant. Two visualisation images are written and their locations returned.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"seam_offset": map[string]interface{}{
						"type":        "integer",
						"description": "Seam position in pixels along the seam normal (0 = image edge)",
					},
					"tile_size": map[string]interface{}{
						"type":        "integer",
						"description": "Side of the square sampling tile in pixels. Default 1",
						"default":     1,
					},
					"step_size": map[string]interface{}{
						"type":        "integer",
						"description": "Divisor of the scanned axis length giving the number of steps. Default 1",
						"default":     1,
					},
					"orientation": map[string]interface{}{
						"type":        "string",
						"description": "Scan axis: horizontal (along the width) or vertical (along the height)",
						"enum":        []string{"horizontal", "vertical"},
						"default":     "horizontal",
					},
					"wrap": map[string]interface{}{
						"type":        "boolean",
						"description": "Treat the texture as tiled: positions outside the image wrap around instead of being ignored",
						"default":     false,
					},
					"blur": map[string]interface{}{
						"type":        "number",
						"description": "Gaussian blur radius applied before scanning to suppress grain. Default 0 (off)",
						"default":     0,
					},
					"color_output": map[string]interface{}{
						"type":        "string",
						"description": "Name of the colour difference visualisation. Default colorDiffVisual.png",
					},
					"brightness_output": map[string]interface{}{
						"type":        "string",
						"description": "Name of the brightness difference visualisation. Default brightDiffVisual.png",
					},
					"include_steps": map[string]interface{}{
						"type":        "boolean",
						"description": "Include per-step differences in the result",
						"default":     false,
					},
				},
				"required": []string{"path", "seam_offset"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
