/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package lsp

import (
	"errors"
	"strings"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"bennypowers.dev/tokenindex/config"
	"bennypowers.dev/tokenindex/internal/mapfs"
	"bennypowers.dev/tokenindex/token"
)

type fakeIndex struct {
	ready   bool
	records map[string][]token.Record
	changed []string
}

func (f *fakeIndex) IsReady() bool { return f.ready }

func (f *fakeIndex) OnFileChange(path string) { f.changed = append(f.changed, path) }

func (f *fakeIndex) FindByValue(key string) []token.Record { return f.records[key] }

func newFakeIndex() *fakeIndex {
	return &fakeIndex{
		ready: true,
		records: map[string][]token.Record{
			"#ff0000": {
				{Name: "--color-primary", RawValue: "#FF0000", File: "/project/tokens.css", Line: 3, Selector: ":root", Alias: "primary", Pattern: "theme(colors.{})"},
				{Name: "--color-danger", RawValue: "#f00", File: "/project/tokens.css", Line: 9, Selector: "[data-theme]"},
			},
		},
	}
}

func newTestServer(idx *fakeIndex) (*Server, *mapfs.MapFileSystem) {
	mfs := mapfs.New()
	cfg := (&config.Config{Files: []string{"**/*.css"}, Roots: []string{"/project"}}).WithDefaults()
	return NewServer(idx, cfg, mfs), mfs
}

func TestHoverMarkdown(t *testing.T) {
	idx := newFakeIndex()

	tests := []struct {
		name string
		line string
		want []string
		ok   bool
	}{
		{"plain property", "  color: #f00;", []string{"`var(--color-primary)`", "alias `theme(colors.primary)`", "(tokens.css:4)", "`var(--color-danger)`"}, true},
		{"important", "color: #FF0000 !important;", []string{"--color-primary"}, true},
		{"own declaration is skipped", "  --color-primary: #FF0000;", []string{"--color-danger"}, true},
		{"unknown value", "color: blue;", nil, false},
		{"not a declaration", ":root {", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := hoverMarkdown(tt.line, idx)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v (%q)", ok, tt.ok, got)
			}
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("hover %q missing %q", got, want)
				}
			}
		})
	}
}

func TestHoverMarkdown_SkipsOnlySelf(t *testing.T) {
	idx := &fakeIndex{ready: true, records: map[string][]token.Record{
		"1px": {{Name: "--hairline", RawValue: "1px", File: "/a.css"}},
	}}
	if _, ok := hoverMarkdown("--hairline: 1px;", idx); ok {
		t.Error("a declaration should not hover itself")
	}
}

func TestUriToPath(t *testing.T) {
	path, err := uriToPath("file:///project/styles/a%20b.css")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/project/styles/a b.css" {
		t.Errorf("unexpected path %q", path)
	}

	if _, err := uriToPath("untitled:Untitled-1"); !errors.Is(err, ErrNotFileURI) {
		t.Errorf("expected ErrNotFileURI, got %v", err)
	}
}

func TestLineAt(t *testing.T) {
	text := "a\r\nb\nc"
	if got, ok := lineAt(text, 0); !ok || got != "a" {
		t.Errorf("lineAt(0) = %q, %v", got, ok)
	}
	if got, ok := lineAt(text, 2); !ok || got != "c" {
		t.Errorf("lineAt(2) = %q, %v", got, ok)
	}
	if _, ok := lineAt(text, 3); ok {
		t.Error("expected out of range")
	}
}

func TestDidSave(t *testing.T) {
	idx := newFakeIndex()
	s, _ := newTestServer(idx)

	for _, uri := range []string{
		"file:///project/tokens.css",
		"file:///project/readme.md",
		"file:///elsewhere/tokens.css",
		"untitled:Untitled-1",
	} {
		params := &protocol.DidSaveTextDocumentParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		}
		if err := s.didSave(nil, params); err != nil {
			t.Fatalf("didSave(%s): %v", uri, err)
		}
	}

	if len(idx.changed) != 1 || idx.changed[0] != "/project/tokens.css" {
		t.Errorf("unexpected reindexed files: %v", idx.changed)
	}
}

func TestHover(t *testing.T) {
	idx := newFakeIndex()
	s, mfs := newTestServer(idx)
	mfs.AddFile("/project/app.css", ".btn {\n  color: #f00;\n}\n", 0644)

	params := func(uri string, line uint32) *protocol.HoverParams {
		return &protocol.HoverParams{
			TextDocumentPositionParams: protocol.TextDocumentPositionParams{
				TextDocument: protocol.TextDocumentIdentifier{URI: uri},
				Position:     protocol.Position{Line: line, Character: 4},
			},
		}
	}

	hover, err := s.hover(nil, params("file:///project/app.css", 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hover == nil {
		t.Fatal("expected hover from file on disk")
	}
	markup, ok := hover.Contents.(protocol.MarkupContent)
	if !ok || markup.Kind != protocol.MarkupKindMarkdown {
		t.Fatalf("unexpected contents %#v", hover.Contents)
	}

	// Open buffers take precedence over disk.
	if err := s.didOpen(nil, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: "file:///project/app.css", Text: ".btn {\n  color: blue;\n}\n"},
	}); err != nil {
		t.Fatal(err)
	}
	if hover, _ := s.hover(nil, params("file:///project/app.css", 1)); hover != nil {
		t.Error("expected no hover for the edited buffer")
	}

	if err := s.didClose(nil, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///project/app.css"},
	}); err != nil {
		t.Fatal(err)
	}
	if hover, _ := s.hover(nil, params("file:///project/app.css", 1)); hover == nil {
		t.Error("expected hover after closing the buffer")
	}

	idx.ready = false
	if hover, _ := s.hover(nil, params("file:///project/app.css", 1)); hover != nil {
		t.Error("expected no hover before the index is ready")
	}
}

func TestDidChange(t *testing.T) {
	s, _ := newTestServer(newFakeIndex())
	uri := protocol.DocumentUri("file:///project/app.css")

	_ = s.didOpen(nil, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "old"},
	})
	_ = s.didChange(nil, &protocol.DidChangeTextDocumentParams{
		TextDocument:   protocol.VersionedTextDocumentIdentifier{TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri}, Version: 2},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "new"}},
	})

	if text, _ := s.document(uri); text != "new" {
		t.Errorf("document = %q, want new", text)
	}
}

func TestInitialize(t *testing.T) {
	s, _ := newTestServer(newFakeIndex())

	result, err := s.initialize(nil, &protocol.InitializeParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	init, ok := result.(protocol.InitializeResult)
	if !ok {
		t.Fatalf("unexpected result %T", result)
	}
	if init.Capabilities.HoverProvider == nil {
		t.Error("hover capability not advertised")
	}
	if init.ServerInfo == nil || init.ServerInfo.Name != "tokenindex" {
		t.Errorf("unexpected server info %+v", init.ServerInfo)
	}
}
