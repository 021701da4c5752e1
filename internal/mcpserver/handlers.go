package mcpserver

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/solagent-io/solagent/pkg/agent"
)

func (s *Server) handleCreateAgent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, _ := args["name"].(string)
	capabilities := toStringSlice(args["capabilities"])
	initialBalance, _ := args["initialBalance"].(float64)

	created, err := s.registry.Create(name, capabilities, initialBalance)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.metrics.AgentsCreatedTotal.Inc()

	var b strings.Builder
	b.WriteString("Agent created\n")
	fmt.Fprintf(&b, "ID: %s\n", created.ID)
	fmt.Fprintf(&b, "Name: %s\n", created.Name)
	fmt.Fprintf(&b, "Capabilities: %s\n", strings.Join(created.Capabilities, ", "))
	fmt.Fprintf(&b, "Balance: %s SOL\n", formatSOL(created.Balance))
	fmt.Fprintf(&b, "Wallet: %s\n", created.WalletAddress)
	fmt.Fprintf(&b, "Created: %s", created.CreatedAt.Format(time.RFC3339))

	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleListAgents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agents := s.registry.List()

	var b strings.Builder
	fmt.Fprintf(&b, "Registered agents: %d", len(agents))
	for _, a := range agents {
		fmt.Fprintf(&b, "\n\nID: %s\n", a.ID)
		fmt.Fprintf(&b, "Name: %s\n", a.Name)
		fmt.Fprintf(&b, "Capabilities: %s\n", strings.Join(a.Capabilities, ", "))
		fmt.Fprintf(&b, "Balance: %s SOL\n", formatSOL(a.Balance))
		fmt.Fprintf(&b, "Created: %s", a.CreatedAt.Format(time.RFC3339))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleTransferFunds(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	fromID, _ := args["fromAgentId"].(string)
	toID, _ := args["toAgentId"].(string)
	amount, _ := args["amount"].(float64)
	message, _ := args["message"].(string)

	result, err := s.registry.Transfer(fromID, toID, amount)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.metrics.TransfersTotal.Inc()
	s.metrics.TransferredSOL.Add(result.Amount)

	var b strings.Builder
	fmt.Fprintf(&b, "Transferred %s SOL from %s (%s) to %s (%s)\n",
		formatSOL(result.Amount), result.From.Name, result.From.ID, result.To.Name, result.To.ID)
	fmt.Fprintf(&b, "%s balance: %s SOL\n", result.From.Name, formatSOL(result.From.Balance))
	fmt.Fprintf(&b, "%s balance: %s SOL", result.To.Name, formatSOL(result.To.Balance))
	if message != "" {
		fmt.Fprintf(&b, "\nMessage: %s", message)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleGetBalance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, _ := args["agentId"].(string)

	a, ok := s.registry.Get(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %s", agent.ErrAgentNotFound, id)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "ID: %s\n", a.ID)
	fmt.Fprintf(&b, "Name: %s\n", a.Name)
	fmt.Fprintf(&b, "Balance: %s SOL\n", formatSOL(a.Balance))
	fmt.Fprintf(&b, "Wallet: %s\n", a.WalletAddress)
	fmt.Fprintf(&b, "Updated: %s", a.UpdatedAt.Format(time.RFC3339))

	return mcp.NewToolResultText(b.String()), nil
}

// toStringSlice decodes a JSON array argument into a string slice. Shape
// violations are caught by schema validation before handlers run; this only
// unwraps the decoded values.
func toStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil
		}
		out = append(out, s)
	}

	return out
}

// formatSOL renders a balance at lamport precision (9 decimal places), with
// trailing zeros trimmed, so float noise never leaks into responses.
func formatSOL(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e9)/1e9, 'f', -1, 64)
}
