package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// cropProperties returns the detector parameters shared by the content
// tools, merged with extra.
func cropProperties(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"path": pathProperty(),
		"padding": map[string]interface{}{
			"type":        "integer",
			"minimum":     0,
			"description": "Pixels of margin added on every side of the content box, clamped to the image. Defaults to the server configuration (0).",
		},
		"tolerance": map[string]interface{}{
			"type":        "integer",
			"minimum":     0,
			"description": "Maximum summed |dR|+|dG|+|dB| difference still treated as background for opaque images. Ignored for images with alpha. Defaults to the server configuration (0).",
		},
		"background": map[string]interface{}{
			"type":        "string",
			"description": "Optional background color (#RRGGBB) overriding corner inference for opaque images.",
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and color mode (L, RGB or RGBA).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Content Detection
		{
			Name:        "image_content_bounds",
			Description: "Detect the bounding box of the image content without cropping. RGBA images use transparency; other images compare each pixel against the background color inferred from the four corners.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": cropProperties(nil),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_autocrop",
			Description: "Crop an image to its content and write the result to a file. When no content is found nothing is written unless write_uncropped is set.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": cropProperties(map[string]interface{}{
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Output path. Defaults to <name>_cropped<ext> next to the input. The extension selects the format.",
					},
					"write_uncropped": map[string]interface{}{
						"type":        "boolean",
						"description": "Write the original image when no content is found.",
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_autocrop_preview",
			Description: "Return the image as base64-encoded PNG with the detected content box outlined and its top-left coordinate labeled.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": cropProperties(map[string]interface{}{
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Outline color as hex (default: #FF0000)",
						"default":     "#FF0000",
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_background",
			Description: "Report the four corner colors (top-left, bottom-left, top-right, bottom-right) and the background color voted from them.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Region Operations
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region from an image and return it as base64-encoded PNG. Use this to zoom into areas that need detailed examination.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "image_select_export",
			Description: "Export manually selected rectangles as cropped_<i>.png files. Each rectangle is a drag from (x1,y1) to (x2,y2) in any direction; it is clamped to the image and dropped if it covers no pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"rectangles": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x1": map[string]interface{}{"type": "integer", "description": "Press X"},
								"y1": map[string]interface{}{"type": "integer", "description": "Press Y"},
								"x2": map[string]interface{}{"type": "integer", "description": "Release X"},
								"y2": map[string]interface{}{"type": "integer", "description": "Release Y"},
							},
							"required": []string{"x1", "y1", "x2", "y2"},
						},
						"description": "Rectangles in selection order",
					},
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Existing directory that receives the exported files",
					},
				},
				"required": []string{"path", "rectangles", "output_dir"},
			},
		},

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
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
