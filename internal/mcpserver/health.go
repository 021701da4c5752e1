package mcpserver

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog/log"
)

// handleHealthCheck combines one chain read with registry aggregates. Only a
// failed slot read makes the report unhealthy; a slot without a recorded
// block time is reported as N/A.
func (s *Server) handleHealthCheck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := "healthy"
	slotText := "N/A"
	blockTimeText := "N/A"
	var probeErr error

	slot, err := s.chain.Slot(ctx)
	if err != nil {
		status = "unhealthy"
		probeErr = err
		log.Warn().Err(err).Str("network", string(s.network)).Msg("Health probe failed")
	} else {
		slotText = strconv.FormatUint(slot, 10)
		if t, err := s.chain.BlockTime(ctx, slot); err == nil && t != nil {
			blockTimeText = t.UTC().Format(time.RFC3339)
		}
	}

	stats := s.registry.Aggregate()
	s.metrics.HealthChecksTotal.WithLabelValues(status).Inc()

	var b strings.Builder
	fmt.Fprintf(&b, "Status: %s\n", status)
	fmt.Fprintf(&b, "Network: %s\n", s.network)
	fmt.Fprintf(&b, "Slot: %s\n", slotText)
	fmt.Fprintf(&b, "Block time: %s\n", blockTimeText)
	fmt.Fprintf(&b, "Agents: %d\n", stats.Count)
	fmt.Fprintf(&b, "Total balance: %s SOL\n", formatSOL(stats.TotalBalance))
	fmt.Fprintf(&b, "Average balance: %s SOL\n", formatSOL(stats.MeanBalance))
	fmt.Fprintf(&b, "Tools: %d", s.ToolCount())
	if probeErr != nil {
		fmt.Fprintf(&b, "\nError: %s", probeErr)
	}

	return mcp.NewToolResultText(b.String()), nil
}
