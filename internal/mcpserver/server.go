package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"

	"github.com/solagent-io/solagent/internal/chain"
	"github.com/solagent-io/solagent/internal/metrics"
	"github.com/solagent-io/solagent/pkg/agent"
)

const serverName = "solagent"

// Server exposes the agent registry over the Model Context Protocol. It is
// stateless per request: all agent state lives in the registry, and every
// failure is returned as an error-flagged tool result rather than killing
// the process.
type Server struct {
	registry *agent.Registry
	chain    chain.Reader
	network  chain.Network
	metrics  *metrics.Metrics

	mcp      *server.MCPServer
	schemas  map[string]*gojsonschema.Schema
	handlers map[string]server.ToolHandlerFunc
}

// New creates a Server and registers the five agent-management tools.
func New(registry *agent.Registry, reader chain.Reader, network chain.Network, m *metrics.Metrics, version string) (*Server, error) {
	s := &Server{
		registry: registry,
		chain:    reader,
		network:  network,
		metrics:  m,
		schemas:  make(map[string]*gojsonschema.Schema),
		handlers: make(map[string]server.ToolHandlerFunc),
	}

	s.mcp = server.NewMCPServer(serverName, version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	registrations := []struct {
		tool    mcp.Tool
		handler server.ToolHandlerFunc
	}{
		{toolCreateAgent, s.handleCreateAgent},
		{toolListAgents, s.handleListAgents},
		{toolTransferFunds, s.handleTransferFunds},
		{toolGetBalance, s.handleGetBalance},
		{toolHealthCheck, s.handleHealthCheck},
	}
	for _, r := range registrations {
		if err := s.register(r.tool, r.handler); err != nil {
			return nil, err
		}
	}

	log.Info().
		Str("network", string(network)).
		Int("tools", s.ToolCount()).
		Msg("MCP server initialized")

	return s, nil
}

// Serve handles MCP requests on stdin/stdout until the client disconnects.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

// ToolCount returns the number of registered tools.
func (s *Server) ToolCount() int {
	return len(s.handlers)
}

// register compiles the tool's declared input schema and installs the handler
// behind the validation and instrumentation wrapper.
func (s *Server) register(tool mcp.Tool, handler server.ToolHandlerFunc) error {
	schema, err := compileInputSchema(tool)
	if err != nil {
		return fmt.Errorf("compile input schema for %s: %w", tool.Name, err)
	}

	wrapped := s.instrument(tool.Name, handler)
	s.schemas[tool.Name] = schema
	s.handlers[tool.Name] = wrapped
	s.mcp.AddTool(tool, wrapped)

	return nil
}

// instrument validates the argument bag against the tool's declared shape
// before the handler body runs, and records invocation metrics.
func (s *Server) instrument(name string, handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		args := req.GetArguments()
		if args == nil {
			args = map[string]any{}
		}
		if err := validateArguments(s.schemas[name], args); err != nil {
			s.observe(name, "invalid", start)
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %s", err)), nil
		}

		result, err := handler(ctx, req)
		if err != nil {
			s.observe(name, "error", start)
			return nil, err
		}

		status := "ok"
		if result != nil && result.IsError {
			status = "error"
		}
		s.observe(name, status, start)

		log.Debug().
			Str("tool", name).
			Str("status", status).
			Dur("elapsed", time.Since(start)).
			Msg("Tool invoked")

		return result, nil
	}
}

func (s *Server) observe(tool, status string, start time.Time) {
	s.metrics.ToolInvocationsTotal.WithLabelValues(tool, status).Inc()
	s.metrics.ToolInvocationDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())
}

// compileInputSchema turns a tool's declared input schema into a compiled
// JSON Schema validator.
func compileInputSchema(tool mcp.Tool) (*gojsonschema.Schema, error) {
	raw, err := json.Marshal(tool.InputSchema)
	if err != nil {
		return nil, err
	}

	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
}

// validateArguments validates an argument bag against a compiled schema
func validateArguments(schema *gojsonschema.Schema, args map[string]any) error {
	if schema == nil {
		return nil
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return err
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return errors.New(strings.Join(msgs, "; "))
	}

	return nil
}
