/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mcp exposes token index queries as Model Context Protocol tools.
package mcp

import (
	"context"
	"errors"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"bennypowers.dev/tokenindex/internal/version"
	"bennypowers.dev/tokenindex/token"
)

// ErrNotReady is reported by tools called before the first build completes.
var ErrNotReady = errors.New("token index is still building")

// Index is the query surface the server needs. *index.Index satisfies it.
type Index interface {
	IsReady() bool
	FindByValue(key string) []token.Record
	FindByReferencedVariable(name string) []token.Record
	AllFileSummaries() []token.FileSummary
	Values() []string
}

// Server is an MCP server over a token index.
type Server struct {
	server *sdk.Server
	index  Index
}

// NewServer creates a server and registers its tools.
func NewServer(idx Index) *Server {
	s := &Server{
		index: idx,
		server: sdk.NewServer(&sdk.Implementation{
			Name:    version.Name,
			Version: version.Get(),
		}, nil),
	}

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "find_by_value",
		Description: "Find design tokens whose value normalizes to the given CSS value",
	}, s.findByValue)
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "find_by_referenced_variable",
		Description: "Find design tokens whose value is var() of the given custom property",
	}, s.findByReferencedVariable)
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "list_files",
		Description: "List indexed files with their header comment and token count",
	}, s.listFiles)
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "nearest_color",
		Description: "Find the color tokens perceptually closest to a CSS color",
	}, s.nearestColor)

	return s
}

// Run serves on stdin/stdout until the client disconnects or ctx is done.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &sdk.StdioTransport{})
}

// Connect serves a single session over transport.
func (s *Server) Connect(ctx context.Context, transport sdk.Transport) (*sdk.ServerSession, error) {
	return s.server.Connect(ctx, transport, nil)
}
