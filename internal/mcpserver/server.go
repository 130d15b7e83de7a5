// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Clientele tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/verlow/clientele/internal/logic"
	"github.com/verlow/clientele/internal/stats"
)

// Server wraps the MCP server with Clientele tools.
type Server struct {
	mcp   *server.MCPServer
	logic *logic.Logic
}

// New creates a new MCP server with all Clientele tools registered.
func New(l *logic.Logic) *Server {
	s := &Server{logic: l}

	s.mcp = server.NewMCPServer(
		"Clientele",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("execute_command",
		mcp.WithDescription("Run one Clientele command line (e.g. \"contact add n/Amy p/91234567 e/amy@example.com\"). "+
			"Read the command reference first via the get_command_reference tool or the "+
			"clientele://command-reference resource."),
		mcp.WithString("command", mcp.Required(), mcp.Description("Command line to execute")),
	), s.executeCommand)

	s.mcp.AddTool(mcp.NewTool("list_contacts",
		mcp.WithDescription("List contacts as currently displayed (filtered and sorted)."),
	), s.listContacts)

	s.mcp.AddTool(mcp.NewTool("list_meetings",
		mcp.WithDescription("List meetings in date order."),
	), s.listMeetings)

	s.mcp.AddTool(mcp.NewTool("list_reminders",
		mcp.WithDescription("List reminders in date order."),
	), s.listReminders)

	s.mcp.AddTool(mcp.NewTool("list_sales",
		mcp.WithDescription("List every sale in date order."),
	), s.listSales)

	s.mcp.AddTool(mcp.NewTool("monthly_stats",
		mcp.WithDescription("Count sales or meetings per month for the trailing N months."),
		mcp.WithString("kind", mcp.Description("\"sale\" (default) or \"meeting\"")),
		mcp.WithNumber("months", mcp.Required(), mcp.Description("Number of trailing months, 1 to 12")),
	), s.monthlyStats)

	s.mcp.AddTool(mcp.NewTool("get_command_reference",
		mcp.WithDescription("Returns the Clientele command language reference. "+
			"Call this before executing commands to ensure correct syntax."),
	), s.getCommandReference)

	// Resource: command reference.
	s.mcp.AddResource(
		mcp.NewResource("clientele://command-reference", "Command Reference",
			mcp.WithResourceDescription("Command language accepted by the execute_command tool."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readCommandReferenceResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) executeCommand(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	line, err := req.RequireString("command")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.logic.Execute(ctx, line)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out := res.Feedback
	if res.Report != nil {
		out += "\n" + res.Report.String()
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) listContacts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	persons := s.logic.Store().Persons()
	if len(persons) == 0 {
		return mcp.NewToolResultText("no contacts"), nil
	}
	var lines []string
	for i, p := range persons {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, p))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) listMeetings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	meetings := s.logic.Store().Meetings()
	if len(meetings) == 0 {
		return mcp.NewToolResultText("no meetings"), nil
	}
	var lines []string
	for i, m := range meetings {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, m))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) listReminders(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reminders := s.logic.Store().Reminders()
	if len(reminders) == 0 {
		return mcp.NewToolResultText("no reminders"), nil
	}
	var lines []string
	for i, r := range reminders {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, r))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) listSales(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sales := s.logic.Store().AllSales()
	if len(sales) == 0 {
		return mcp.NewToolResultText("no sales"), nil
	}
	var lines []string
	for i, sale := range sales {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, sale))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) monthlyStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	months, err := req.RequireInt("months")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if months < stats.MinMonths || months > stats.MaxMonths {
		return mcp.NewToolResultError(fmt.Sprintf("months must be between %d and %d", stats.MinMonths, stats.MaxMonths)), nil
	}

	kind := req.GetString("kind", "sale")
	st := s.logic.Store()
	var set stats.MonthlyCountSet
	switch kind {
	case "sale":
		set = stats.CountSales(st.AllSales(), months, time.Now())
	case "meeting":
		set = stats.CountMeetings(st.Meetings(), months, time.Now())
	default:
		return mcp.NewToolResultError("kind must be sale or meeting"), nil
	}
	return mcp.NewToolResultText(set.String()), nil
}

func (s *Server) getCommandReference(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(CommandReference), nil
}

func (s *Server) readCommandReferenceResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "clientele://command-reference",
			MIMEType: "text/markdown",
			Text:     CommandReference,
		},
	}, nil
}
