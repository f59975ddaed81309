package mcpserver

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func connect(t *testing.T) *mcp.ClientSession {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	server := New("test")
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		cancel()
		t.Fatalf("connect client: %v", err)
	}

	t.Cleanup(func() {
		session.Close()
		cancel()
		select {
		case <-serveErr:
		case <-time.After(2 * time.Second):
			t.Error("server did not stop after cancel")
		}
	})
	return session
}

func decodeStructuredContent[T any](t *testing.T, value any) T {
	t.Helper()

	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var output T
	if err := json.Unmarshal(data, &output); err != nil {
		t.Fatalf("unmarshal structured content: %v", err)
	}
	return output
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("call %s: %v", name, err)
	}
	return result
}

func TestListTools(t *testing.T) {
	session := connect(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	names := make(map[string]bool)
	for _, tool := range res.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"is_translated", "remove_language_postfix", "language_info", "list_languages"} {
		if !names[want] {
			t.Errorf("tool %s not registered", want)
		}
	}
}

func TestIsTranslatedTool(t *testing.T) {
	session := connect(t)

	result := callTool(t, session, "is_translated", map[string]any{"title": "Pacman (Русский)"})
	if result.IsError {
		t.Fatalf("unexpected tool error: %+v", result)
	}
	out := decodeStructuredContent[IsTranslatedResult](t, result.StructuredContent)
	if !out.Translated || out.LanguageKey != "Russian" {
		t.Fatalf("unexpected output %+v", out)
	}

	result = callTool(t, session, "is_translated", map[string]any{"title": "Pacman"})
	out = decodeStructuredContent[IsTranslatedResult](t, result.StructuredContent)
	if out.Translated {
		t.Fatalf("unexpected output %+v", out)
	}
}

func TestRemoveLanguagePostfixTool(t *testing.T) {
	session := connect(t)

	result := callTool(t, session, "remove_language_postfix", map[string]any{"title": "Main page (Русский)/Sub (Русский)"})
	out := decodeStructuredContent[StripResult](t, result.StructuredContent)
	if out.Title != "Main page/Sub" {
		t.Fatalf("unexpected title %q", out.Title)
	}
}

func TestLanguageInfoTool(t *testing.T) {
	session := connect(t)

	result := callTool(t, session, "language_info", map[string]any{"key": "ChineseSimplified"})
	out := decodeStructuredContent[LanguageResult](t, result.StructuredContent)
	if out.Subtag != "zh-hans" || out.Postfix != "(简体中文)" {
		t.Fatalf("unexpected output %+v", out)
	}

	result = callTool(t, session, "language_info", map[string]any{"key": "DoesNotExist"})
	if !result.IsError {
		t.Fatalf("expected tool error for unknown key, got %+v", result)
	}
}

func TestListLanguagesTool(t *testing.T) {
	session := connect(t)

	result := callTool(t, session, "list_languages", map[string]any{"sorted": true})
	out := decodeStructuredContent[ListLanguagesResult](t, result.StructuredContent)
	if len(out.Languages) != 40 || out.Languages[0].Key != "Arabic" {
		t.Fatalf("unexpected languages %+v", out.Languages)
	}
}

func TestServeWithoutServer(t *testing.T) {
	var s *Server
	if err := s.serveWithTransport(context.Background(), &mcp.StdioTransport{}); err == nil {
		t.Fatal("expected error for nil server")
	}
}
