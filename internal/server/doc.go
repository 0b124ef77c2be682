// Package server implements the MCP (Model Context Protocol) server for seam checks.
//
// The server exposes the seam scanner as JSON-RPC 2.0 tools so that an MCP
// client can inspect a texture and run a check without the command line.
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
//   - image_info: Dimensions, format, alpha presence and file size
//   - check_seam: Scan a texture at a seam offset and write both visualisations
//
// # Image Caching
//
// Images are cached by path and blur radius for the lifetime of the server
// process, so repeated checks of the same texture read it from disk once.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(store, logger)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
