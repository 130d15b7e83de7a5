package mcpserver

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/verlow/clientele/internal/logic"
	"github.com/verlow/clientele/internal/snapshot"
	"github.com/verlow/clientele/internal/store"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	fsp, err := snapshot.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	l, err := logic.New(store.New(), fsp, logger)
	if err != nil {
		t.Fatal(err)
	}
	return New(l)
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so we call the tool
	// handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "execute_command":
		result, err = srv.executeCommand(ctx, req)
	case "list_contacts":
		result, err = srv.listContacts(ctx, req)
	case "list_meetings":
		result, err = srv.listMeetings(ctx, req)
	case "list_reminders":
		result, err = srv.listReminders(ctx, req)
	case "list_sales":
		result, err = srv.listSales(ctx, req)
	case "monthly_stats":
		result, err = srv.monthlyStats(ctx, req)
	case "get_command_reference":
		result, err = srv.getCommandReference(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestExecuteCommandAndList(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "execute_command", map[string]interface{}{
		"command": "contact add n/Amy Bell p/91234567 e/amy@example.com",
	})
	if r.IsError {
		t.Fatalf("execute error: %q", resultText(r))
	}
	if resultText(r) == "" {
		t.Error("expected feedback text")
	}

	r = callTool(t, srv, "list_contacts", map[string]interface{}{})
	text := resultText(r)
	if !strings.HasPrefix(text, "1. ") || !strings.Contains(text, "Amy Bell") {
		t.Errorf("list_contacts = %q", text)
	}
}

func TestExecuteCommandRejectsUnknown(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "execute_command", map[string]interface{}{
		"command": "borrow book",
	})
	if !r.IsError {
		t.Error("expected error result for unknown command")
	}

	r = callTool(t, srv, "execute_command", map[string]interface{}{})
	if !r.IsError {
		t.Error("expected error result for missing argument")
	}
}

func TestListToolsEmptyStore(t *testing.T) {
	srv := testServer(t)

	for tool, want := range map[string]string{
		"list_contacts":  "no contacts",
		"list_meetings":  "no meetings",
		"list_reminders": "no reminders",
		"list_sales":     "no sales",
	} {
		r := callTool(t, srv, tool, map[string]interface{}{})
		if got := resultText(r); got != want {
			t.Errorf("%s = %q, want %q", tool, got, want)
		}
	}
}

func TestListSalesShowsEverySale(t *testing.T) {
	srv := testServer(t)

	callTool(t, srv, "execute_command", map[string]interface{}{
		"command": "contact add n/Amy Bell p/91234567 e/amy@example.com",
	})
	callTool(t, srv, "execute_command", map[string]interface{}{
		"command": "sale add i/1 n/Notebook d/2023-08-01 p/12.50 q/3",
	})

	r := callTool(t, srv, "list_sales", map[string]interface{}{})
	text := resultText(r)
	if !strings.Contains(text, "Notebook") {
		t.Errorf("list_sales = %q", text)
	}
}

func TestMonthlyStats(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "monthly_stats", map[string]interface{}{
		"months": float64(3),
	})
	if r.IsError {
		t.Fatalf("monthly_stats error: %q", resultText(r))
	}
	if lines := strings.Count(resultText(r), "\n"); lines != 3 {
		t.Errorf("report lines = %d, want 3", lines)
	}

	r = callTool(t, srv, "monthly_stats", map[string]interface{}{
		"months": float64(13),
	})
	if !r.IsError {
		t.Error("expected error for months out of range")
	}

	r = callTool(t, srv, "monthly_stats", map[string]interface{}{
		"months": float64(2), "kind": "bogus",
	})
	if !r.IsError {
		t.Error("expected error for unknown kind")
	}
}

func TestCommandReference(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "get_command_reference", map[string]interface{}{})
	text := resultText(r)
	if !strings.Contains(text, "contact add") || !strings.Contains(text, "sale stats") {
		t.Errorf("reference missing commands: %q", text[:min(len(text), 200)])
	}
}
