package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/validator"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/editor"
	"github.com/aretw0/automata/pkg/traversal"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// AlgorithmsURI is the resource listing the algorithms and their pseudo-code.
const AlgorithmsURI = "automata://algorithms"

// RunArgs are the arguments of the run_algorithm tool.
type RunArgs struct {
	Graph     string `json:"graph"`
	Algorithm string `json:"algorithm"`
	Frontier  string `json:"frontier"`
}

// RunResponse is the structured result of run_algorithm.
type RunResponse struct {
	Algorithm domain.Algorithm `json:"algorithm" jsonschema_description:"The algorithm that was run"`
	Result    []string         `json:"result" jsonschema_description:"The computed state set, in discovery order"`
	StepCount int              `json:"stepCount" jsonschema_description:"Number of animation steps"`
	Steps     []domain.Step    `json:"steps" jsonschema_description:"Every step of the run"`
}

// ExportArgs are the arguments of the export_automaton tool.
type ExportArgs struct {
	Graph    string `json:"graph"`
	Alphabet string `json:"alphabet"`
	Reduce   string `json:"reduce"`
}

// ValidateArgs are the arguments of the validate_graph tool.
type ValidateArgs struct {
	Graph    string `json:"graph"`
	Alphabet string `json:"alphabet"`
}

// Server exposes step generation and export as an MCP server.
type Server struct {
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(opts ...Option) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer("automata-mcp", automata.VersionString()),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	baseURL := "http://localhost" + addr
	if !strings.HasPrefix(addr, ":") {
		baseURL = "http://" + addr
	}
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

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
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
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

func (s *Server) registerTools() {
	graphDesc := mcp.Description(`Graph as JSON or YAML: {"nodes":[{"id":"S0","isInitial":true}],"edges":[{"source":"S0","target":"S1","label":"a"}]}`)

	s.mcpServer.AddTool(mcp.NewTool("run_algorithm",
		mcp.WithDescription("Run the accessible or co-accessible state computation on a graph and return every animation step."),
		mcp.WithString("graph", mcp.Required(), graphDesc),
		mcp.WithString("algorithm", mcp.Description("accessible (default) or co-accessible")),
		mcp.WithString("frontier", mcp.Description("lifo (default) or fifo")),
		mcp.WithOutputSchema[RunResponse](),
	), mcp.NewStructuredToolHandler(s.handleRunAlgorithm))

	s.mcpServer.AddTool(mcp.NewTool("export_automaton",
		mcp.WithDescription("Convert a drawn graph into the automaton description (alphabet, states, initial, finals, transitions)."),
		mcp.WithString("graph", mcp.Required(), graphDesc),
		mcp.WithString("alphabet", mcp.Description("Comma separated symbols; derived from the labels when omitted")),
		mcp.WithString("reduce", mcp.Description("Restrict the automaton: accessible, co-accessible or trim")),
	), s.handleExport)

	s.mcpServer.AddTool(mcp.NewTool("validate_graph",
		mcp.WithDescription("Report structural problems of a graph (dangling edges, missing initial state, unreachable states...)."),
		mcp.WithString("graph", mcp.Required(), graphDesc),
		mcp.WithString("alphabet", mcp.Description("Comma separated symbols to check labels against")),
		mcp.WithOutputSchema[validator.Report](),
	), mcp.NewStructuredToolHandler(s.handleValidate))
}

func (s *Server) handleRunAlgorithm(ctx context.Context, request mcp.CallToolRequest, args RunArgs) (RunResponse, error) {
	gf, err := config.ParseGraph([]byte(args.Graph))
	if err != nil {
		return RunResponse{}, err
	}
	alg, err := domain.ParseAlgorithm(args.Algorithm)
	if err != nil {
		return RunResponse{}, err
	}
	frontier, err := traversal.ParseFrontier(args.Frontier)
	if err != nil {
		return RunResponse{}, err
	}

	steps, err := automata.Generate(alg, gf.Graph, traversal.WithFrontier(frontier))
	if err != nil {
		return RunResponse{}, err
	}
	s.logger.Debug("MCP run_algorithm", "algorithm", alg, "steps", len(steps))
	return RunResponse{
		Algorithm: alg,
		Result:    traversal.Result(steps),
		StepCount: len(steps),
		Steps:     steps,
	}, nil
}

func (s *Server) handleExport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExportArgs{
		Graph:    request.GetString("graph", ""),
		Alphabet: request.GetString("alphabet", ""),
		Reduce:   request.GetString("reduce", ""),
	}
	gf, err := config.ParseGraph([]byte(args.Graph))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	reduction, err := traversal.ParseReduction(args.Reduce)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	alphabet := gf.Alphabet
	if symbols := splitSymbols(args.Alphabet); len(symbols) > 0 {
		alphabet = symbols
	}

	jsonBytes, err := json.Marshal(traversal.Reduce(editor.Export(gf.Graph, alphabet), reduction))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args ValidateArgs) (validator.Report, error) {
	gf, err := config.ParseGraph([]byte(args.Graph))
	if err != nil {
		return validator.Report{}, err
	}
	return validator.Validate(gf.Graph, splitSymbols(args.Alphabet)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(AlgorithmsURI, "Algorithms",
		mcp.WithResourceDescription("Available algorithms with their pseudo-code listings"),
		mcp.WithMIMEType("application/json"),
	), s.readAlgorithms)
}

func (s *Server) readAlgorithms(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(domain.Catalog())
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      AlgorithmsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

func splitSymbols(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
