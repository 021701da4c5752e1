package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions for the solagent MCP server.
// Descriptions are what the LLM reads to decide which tool to use.

var toolCreateAgent = mcp.NewTool("create-agent",
	mcp.WithDescription(
		"Register a new agent with a name, capability tags, and an initial SOL balance. "+
			"Returns the generated agent ID and wallet display address."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.MinLength(1),
		mcp.Description("Display name for the agent")),
	mcp.WithArray("capabilities",
		mcp.Required(),
		mcp.MinItems(1),
		mcp.Items(map[string]any{"type": "string"}),
		mcp.Description("Capability tags, in order (e.g. ['trading', 'analysis'])")),
	mcp.WithNumber("initialBalance",
		mcp.Required(),
		mcp.Min(0),
		mcp.Description("Starting balance in SOL, zero or more")),
)

var toolListAgents = mcp.NewTool("list-agents",
	mcp.WithDescription(
		"List every registered agent with its ID, name, capabilities, and balance, "+
			"in registration order."),
)

var toolTransferFunds = mcp.NewTool("transfer-funds",
	mcp.WithDescription(
		"Move SOL between two registered agents. The transfer is atomic: it either "+
			"applies in full or not at all, and never overdraws the source."),
	mcp.WithString("fromAgentId",
		mcp.Required(),
		mcp.MinLength(1),
		mcp.Description("ID of the agent to debit")),
	mcp.WithString("toAgentId",
		mcp.Required(),
		mcp.MinLength(1),
		mcp.Description("ID of the agent to credit")),
	mcp.WithNumber("amount",
		mcp.Required(),
		mcp.Min(0),
		mcp.Description("Amount in SOL, must be greater than zero")),
	mcp.WithString("message",
		mcp.Description("Optional note echoed back in the result")),
)

var toolGetBalance = mcp.NewTool("get-balance",
	mcp.WithDescription(
		"Look up one agent's current balance, wallet display address, and last update time."),
	mcp.WithString("agentId",
		mcp.Required(),
		mcp.MinLength(1),
		mcp.Description("ID of the agent to inspect")),
)

var toolHealthCheck = mcp.NewTool("health-check",
	mcp.WithDescription(
		"Report server health: Solana RPC connectivity (current slot and block time), "+
			"registry aggregates, and the number of available tools."),
)
