package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/protocompat"
	"github.com/aretw0/protocompat/internal/presentation/graph"
	"github.com/aretw0/protocompat/internal/presentation/report"
	"github.com/aretw0/protocompat/internal/validator"
	"github.com/aretw0/protocompat/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MaxRounds bounds the rounds a single tool call may ask for.
const MaxRounds = 1000

// Analyzer defines what the MCP server needs from protocompat.
type Analyzer interface {
	Parse(data []byte) (*domain.Graph, error)
	Compute(ctx context.Context, g1, g2 *domain.Graph, rounds int) (*domain.Run, error)
}

var _ Analyzer = (*protocompat.Analyzer)(nil)

// Server wraps an Analyzer and exposes it as an MCP Server.
type Server struct {
	analyzer  Analyzer
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(analyzer Analyzer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		analyzer:  analyzer,
		logger:    logger,
		mcpServer: server.NewMCPServer("protocompat-mcp", strings.TrimSpace(protocompat.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP endpoints over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL("http://"+hostPort(addr)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func hostPort(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}

func (s *Server) registerTools() {
	// TOOL: compute_compatibility
	s.mcpServer.AddTool(mcp.NewTool("compute_compatibility",
		mcp.WithDescription("Compute the state compatibility matrices of two protocol graphs, one per round."),
		mcp.WithString("graph1", mcp.Required(), mcp.Description("First graph description (JSON or YAML)")),
		mcp.WithString("graph2", mcp.Required(), mcp.Description("Second graph description (JSON or YAML)")),
		mcp.WithNumber("rounds", mcp.Description("Number of rounds after the initial one (default 1)")),
		mcp.WithString("format", mcp.Description("Report format: text or markdown (default text)")),
	), s.handleCompute)

	// TOOL: validate_graph
	s.mcpServer.AddTool(mcp.NewTool("validate_graph",
		mcp.WithDescription("Check that a graph description is well formed and its states link up."),
		mcp.WithString("graph", mcp.Required(), mcp.Description("Graph description (JSON or YAML)")),
	), s.handleValidate)

	// TOOL: graph_mermaid
	s.mcpServer.AddTool(mcp.NewTool("graph_mermaid",
		mcp.WithDescription("Render a protocol graph as a Mermaid flowchart."),
		mcp.WithString("graph", mcp.Required(), mcp.Description("Graph description (JSON or YAML)")),
	), s.handleMermaid)
}

func (s *Server) handleCompute(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	rounds := 1
	if v, ok := args["rounds"].(float64); ok {
		rounds = int(v)
	}
	if rounds < 0 || rounds > MaxRounds {
		return mcp.NewToolResultError(fmt.Sprintf("rounds must be between 0 and %d", MaxRounds)), nil
	}

	formatName, _ := args["format"].(string)
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	g1, err := s.parseArg(args, "graph1")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	g2, err := s.parseArg(args, "graph2")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	run, err := s.analyzer.Compute(ctx, g1, g2, rounds)
	if err != nil {
		s.logger.Error("MCP compute failed", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("compute failed: %v", err)), nil
	}

	var sb strings.Builder
	if run.ID != "" {
		fmt.Fprintf(&sb, "run %s\n\n", run.ID)
	}
	if err := report.Write(&sb, format, run.Matrices); err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, err := s.parseArg(request.GetArguments(), "graph")
	if err == nil {
		return mcp.NewToolResultText("valid"), nil
	}

	lines := []string{err.Error()}
	if details := validator.ValidationErrors(err); len(details) > 0 {
		lines = lines[:0]
		for _, e := range details {
			lines = append(lines, e.Error())
		}
	}
	return mcp.NewToolResultError(strings.Join(lines, "\n")), nil
}

func (s *Server) handleMermaid(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, err := s.parseArg(request.GetArguments(), "graph")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(g, nil)), nil
}

func (s *Server) parseArg(args map[string]any, key string) (*domain.Graph, error) {
	raw, ok := args[key].(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%s: %w: description is required", key, domain.ErrMalformedDescription)
	}
	g, err := s.analyzer.Parse([]byte(raw))
	if err != nil {
		if !errors.Is(err, domain.ErrMalformedDescription) {
			s.logger.Warn("MCP description rejected", "arg", key, "error", err)
		}
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return g, nil
}
