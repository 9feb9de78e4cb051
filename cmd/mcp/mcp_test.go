/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/tokenindex/internal/mapfs"
	"bennypowers.dev/tokenindex/load"
	mcpserver "bennypowers.dev/tokenindex/mcp"
)

// gatedFS holds stylesheet reads until opened.
type gatedFS struct {
	*mapfs.MapFileSystem
	gate chan struct{}
	once sync.Once
}

func (g *gatedFS) ReadFile(name string) ([]byte, error) {
	if strings.HasSuffix(name, ".css") {
		<-g.gate
	}
	return g.MapFileSystem.ReadFile(name)
}

func (g *gatedFS) open() {
	g.once.Do(func() { close(g.gate) })
}

func findByValue(t *testing.T, session *sdk.ClientSession, value string) (mcpserver.TokensOutput, *sdk.CallToolResult) {
	t.Helper()
	var out mcpserver.TokensOutput
	res, err := session.CallTool(context.Background(), &sdk.CallToolParams{
		Name:      "find_by_value",
		Arguments: map[string]any{"value": value},
	})
	require.NoError(t, err)
	if res.IsError || res.StructuredContent == nil {
		return out, res
	}
	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &out))
	return out, res
}

func TestStart_ServesWhileBuilding(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/project/tokens.css", ":root { --brand: #ff0000; }\n", 0644)
	fsys := &gatedFS{MapFileSystem: mfs, gate: make(chan struct{})}
	t.Cleanup(fsys.open)

	idx, built, stop, err := start(load.Options{Root: "/project", FS: fsys}, false)
	require.NoError(t, err)
	t.Cleanup(stop)
	assert.False(t, idx.IsReady(), "start must not wait for the build")

	ctx := context.Background()
	clientTransport, serverTransport := sdk.NewInMemoryTransports()
	serverSession, err := mcpserver.NewServer(idx).Connect(ctx, serverTransport)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := sdk.NewClient(&sdk.Implementation{Name: "test", Version: "v0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	_, res := findByValue(t, session, "#ff0000")
	assert.True(t, res.IsError, "lookups fail until the first build completes")

	fsys.open()
	<-built
	require.True(t, idx.IsReady())

	out, res := findByValue(t, session, "#ff0000")
	require.False(t, res.IsError)
	require.Len(t, out.Tokens, 1)
	assert.Equal(t, "--brand", out.Tokens[0].Name)
}

func TestStart_InvalidWhitelist(t *testing.T) {
	_, _, _, err := start(load.Options{Root: "/project", FS: mapfs.New(), ClassWhitelist: []string{"("}}, false)
	assert.ErrorContains(t, err, "error loading index")
}
