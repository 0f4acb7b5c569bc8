// Package server implements the MCP (Model Context Protocol) server for the
// autocrop tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata, including the color mode
//   - image_dimensions: Get width and height
//
// Content Detection:
//   - image_content_bounds: Detect the content box without cropping
//   - image_autocrop: Crop to content and write the result file
//   - image_autocrop_preview: Outline the content box on a PNG
//   - image_background: Show the corner colors and the voted background
//
// Region Operations:
//   - image_crop: Extract rectangular region
//   - image_select_export: Export manual rectangle selections
//
// Color Operations:
//   - image_sample_color: Get color at pixel
//
// Padding, tolerance and background default to the values in the
// configuration passed to New; per-call arguments override them.
//
// # Image Caching
//
// Images are cached by path and reused across tool calls. Files written by
// image_autocrop and image_select_export are evicted so a later load reads
// the new content.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// Lines that are not valid JSON get a -32700 parse error with a null id.
//
// # Usage
//
//	srv := server.New(cfg, logger)
//	if err := srv.Run(); err != nil {
//	    logger.Fatal("server error", zap.Error(err))
//	}
package server
