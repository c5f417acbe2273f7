package mcp

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

// TestListenOn drives the stdio transport over in-memory pipes.
func TestListenOn(t *testing.T) {
	srv, _ := setupTestServer(t, nil)

	inR, inW := io.Pipe()
	outR, outW := io.Pipe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- listenOn(ctx, srv.mcp, srv.logger, inR, outW)
	}()
	t.Cleanup(func() {
		cancel()
		inW.Close()
		outR.Close()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("listener did not stop")
		}
	})

	lines := make(chan string, 8)
	go func() {
		scanner := bufio.NewScanner(outR)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	send := func(msg string) {
		t.Helper()
		if _, err := io.WriteString(inW, msg+"\n"); err != nil {
			t.Fatalf("failed to write request: %v", err)
		}
	}
	await := func(id string) string {
		t.Helper()
		timeout := time.After(2 * time.Second)
		for {
			select {
			case line, ok := <-lines:
				if !ok {
					t.Fatalf("output closed while waiting for response %s", id)
				}
				if strings.Contains(line, `"id":`+id) {
					return line
				}
			case <-timeout:
				t.Fatalf("timed out waiting for response %s", id)
			}
		}
	}

	send(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`)
	initResp := await("1")
	if !strings.Contains(initResp, `"name":"pantry-mcp"`) {
		t.Errorf("expected server name in initialize response, got %s", initResp)
	}

	send(`{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	send(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)
	listResp := await("2")
	for _, name := range []string{"getBasket", "postBasket", "putBasket", "deleteBasket"} {
		if !strings.Contains(listResp, name) {
			t.Errorf("expected %s in tools/list response", name)
		}
	}
}
