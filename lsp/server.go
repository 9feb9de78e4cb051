/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package lsp serves token lookups to editors over the Language Server Protocol.
package lsp

import (
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	tifs "bennypowers.dev/tokenindex/fs"
	"bennypowers.dev/tokenindex/internal/logger"
	"bennypowers.dev/tokenindex/internal/version"
	"bennypowers.dev/tokenindex/token"
)

// Index is what the server reads from and notifies. *index.Index satisfies it.
type Index interface {
	IsReady() bool
	OnFileChange(path string)
	FindByValue(key string) []token.Record
}

// Filter decides which saved files are token sources. *config.Config satisfies it.
type Filter interface {
	Matches(path string) bool
}

// Server is a language server backed by a token index.
type Server struct {
	index   Index
	filter  Filter
	fs      tifs.FileSystem
	handler protocol.Handler

	mu   sync.RWMutex
	docs map[protocol.DocumentUri]string
}

// NewServer creates a language server. Saved files matching filter are reindexed.
func NewServer(idx Index, filter Filter, filesystem tifs.FileSystem) *Server {
	s := &Server{
		index:  idx,
		filter: filter,
		fs:     filesystem,
		docs:   make(map[protocol.DocumentUri]string),
	}
	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           func(*glsp.Context, *protocol.InitializedParams) error { return nil },
		Shutdown:              func(*glsp.Context) error { return nil },
		SetTrace:              func(*glsp.Context, *protocol.SetTraceParams) error { return nil },
		TextDocumentDidOpen:   s.didOpen,
		TextDocumentDidChange: s.didChange,
		TextDocumentDidClose:  s.didClose,
		TextDocumentDidSave:   s.didSave,
		TextDocumentHover:     s.hover,
	}
	return s
}

// RunStdio serves on stdin/stdout until the client exits.
func (s *Server) RunStdio() error {
	return server.NewServer(&s.handler, version.Name, false).RunStdio()
}

func (s *Server) initialize(_ *glsp.Context, _ *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()
	full := protocol.TextDocumentSyncKindFull
	openClose := true
	capabilities.TextDocumentSync = protocol.TextDocumentSyncOptions{
		OpenClose: &openClose,
		Change:    &full,
		Save:      &protocol.SaveOptions{},
	}

	v := version.Get()
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    version.Name,
			Version: &v,
		},
	}, nil
}

func (s *Server) didOpen(_ *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[params.TextDocument.URI] = params.TextDocument.Text
	return nil
}

func (s *Server) didChange(_ *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, change := range params.ContentChanges {
		if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.docs[params.TextDocument.URI] = whole.Text
		}
	}
	return nil
}

func (s *Server) didClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, params.TextDocument.URI)
	return nil
}

func (s *Server) didSave(_ *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		logger.Debug("didSave: %v", err)
		return nil
	}
	if s.filter.Matches(path) {
		s.index.OnFileChange(path)
	}
	return nil
}

func (s *Server) hover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	if !s.index.IsReady() {
		return nil, nil
	}
	text, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	line, ok := lineAt(text, params.Position.Line)
	if !ok {
		return nil, nil
	}
	content, ok := hoverMarkdown(line, s.index)
	if !ok {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: content,
		},
	}, nil
}

// document returns the open buffer for uri, or the file on disk.
func (s *Server) document(uri protocol.DocumentUri) (string, bool) {
	s.mu.RLock()
	text, ok := s.docs[uri]
	s.mu.RUnlock()
	if ok {
		return text, true
	}

	path, err := uriToPath(uri)
	if err != nil {
		return "", false
	}
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}
