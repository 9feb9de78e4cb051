/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package mcp

import (
	"context"
	"strings"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"bennypowers.dev/tokenindex/colors"
	"bennypowers.dev/tokenindex/normalize"
	"bennypowers.dev/tokenindex/token"
)

// FindByValueInput is the input of find_by_value.
type FindByValueInput struct {
	Value    string `json:"value" jsonschema:"CSS value, normalized before lookup"`
	AnyColor bool   `json:"anyColor,omitempty" jsonschema:"also match the hex and rgb() forms of a color"`
}

// FindByReferenceInput is the input of find_by_referenced_variable.
type FindByReferenceInput struct {
	Name string `json:"name" jsonschema:"custom property name, with or without the leading dashes"`
}

// ListFilesInput is the input of list_files.
type ListFilesInput struct{}

// NearestColorInput is the input of nearest_color.
type NearestColorInput struct {
	Color string `json:"color" jsonschema:"CSS color to compare against"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of values, default 5"`
}

// Token is a token record as reported to clients.
type Token struct {
	Name               string `json:"name"`
	Value              string `json:"value"`
	File               string `json:"file"`
	Line               int    `json:"line"`
	Column             int    `json:"column"`
	Selector           string `json:"selector"`
	Scope              string `json:"scope"`
	Alias              string `json:"alias,omitempty"`
	Replacement        string `json:"replacement,omitempty"`
	ReferencedVariable string `json:"referencedVariable,omitempty"`
}

// TokensOutput lists matching tokens.
type TokensOutput struct {
	Keys   []string `json:"keys"`
	Tokens []Token  `json:"tokens"`
}

// File is a file summary as reported to clients.
type File struct {
	Path          string `json:"path"`
	HeaderComment string `json:"headerComment,omitempty"`
	TokenCount    int    `json:"tokenCount"`
	LastModified  string `json:"lastModified"`
}

// FilesOutput lists indexed files.
type FilesOutput struct {
	Files []File `json:"files"`
}

// NearestColorOutput lists the closest color values and their tokens.
type NearestColorOutput struct {
	Matches []ColorMatch `json:"matches"`
}

// ColorMatch is one color value near the query.
type ColorMatch struct {
	Value    string  `json:"value"`
	Distance float64 `json:"distance"`
	Tokens   []Token `json:"tokens"`
}

const defaultNearestLimit = 5

func (s *Server) findByValue(_ context.Context, _ *sdk.CallToolRequest, in FindByValueInput) (*sdk.CallToolResult, TokensOutput, error) {
	out := TokensOutput{Keys: []string{}, Tokens: []Token{}}
	if !s.index.IsReady() {
		return nil, out, ErrNotReady
	}

	if in.AnyColor {
		keys, err := colors.Keys(in.Value)
		if err != nil {
			return nil, out, err
		}
		out.Keys = keys
	} else if key, ok := normalize.Value(in.Value); ok {
		out.Keys = []string{key}
	}

	for _, key := range out.Keys {
		out.Tokens = append(out.Tokens, toTokens(s.index.FindByValue(key))...)
	}
	return nil, out, nil
}

func (s *Server) findByReferencedVariable(_ context.Context, _ *sdk.CallToolRequest, in FindByReferenceInput) (*sdk.CallToolResult, TokensOutput, error) {
	out := TokensOutput{Keys: []string{}, Tokens: []Token{}}
	if !s.index.IsReady() {
		return nil, out, ErrNotReady
	}

	name := strings.TrimSpace(in.Name)
	if !strings.HasPrefix(name, token.CustomPropertyPrefix) {
		name = token.CustomPropertyPrefix + name
	}
	out.Keys = []string{name}
	out.Tokens = toTokens(s.index.FindByReferencedVariable(name))
	return nil, out, nil
}

func (s *Server) listFiles(_ context.Context, _ *sdk.CallToolRequest, _ ListFilesInput) (*sdk.CallToolResult, FilesOutput, error) {
	out := FilesOutput{Files: []File{}}
	if !s.index.IsReady() {
		return nil, out, ErrNotReady
	}

	for _, f := range s.index.AllFileSummaries() {
		out.Files = append(out.Files, File{
			Path:          f.Path,
			HeaderComment: f.HeaderComment,
			TokenCount:    f.TokenCount,
			LastModified:  f.LastModified.UTC().Format(time.RFC3339),
		})
	}
	return nil, out, nil
}

func (s *Server) nearestColor(_ context.Context, _ *sdk.CallToolRequest, in NearestColorInput) (*sdk.CallToolResult, NearestColorOutput, error) {
	out := NearestColorOutput{Matches: []ColorMatch{}}
	if !s.index.IsReady() {
		return nil, out, ErrNotReady
	}

	limit := in.Limit
	if limit <= 0 {
		limit = defaultNearestLimit
	}
	matches, err := colors.Nearest(in.Color, s.index.Values(), limit)
	if err != nil {
		return nil, out, err
	}
	for _, m := range matches {
		out.Matches = append(out.Matches, ColorMatch{
			Value:    m.Value,
			Distance: m.Distance,
			Tokens:   toTokens(s.index.FindByValue(m.Value)),
		})
	}
	return nil, out, nil
}

func toTokens(records []token.Record) []Token {
	result := make([]Token, 0, len(records))
	for _, r := range records {
		t := Token{
			Name:               r.Name,
			Value:              r.RawValue,
			File:               r.File,
			Line:               int(r.Line) + 1,
			Column:             int(r.Column) + 1,
			Selector:           r.Selector,
			Scope:              string(r.Scope),
			Alias:              r.Alias,
			ReferencedVariable: r.ReferencedVariable,
		}
		if r.Alias != "" {
			t.Replacement = r.Apply()
		}
		result = append(result, t)
	}
	return result
}
