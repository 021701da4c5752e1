package chain

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds every RPC round trip so a slow endpoint degrades the
// health report instead of hanging the caller.
const DefaultTimeout = 10 * time.Second

// Reader is the read-only view of the cluster the health check consumes.
type Reader interface {
	// Slot returns the current slot at finalized commitment.
	Slot(ctx context.Context) (uint64, error)

	// BlockTime returns the estimated production time of a slot, or nil
	// when the cluster has no timestamp for it.
	BlockTime(ctx context.Context, slot uint64) (*time.Time, error)
}

// Client is a Reader backed by a Solana JSON-RPC endpoint.
type Client struct {
	rpc     *rpc.Client
	timeout time.Duration
}

// NewClient creates a Client for the given endpoint. A non-positive timeout
// falls back to DefaultTimeout.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	log.Debug().
		Str("endpoint", endpoint).
		Dur("timeout", timeout).
		Msg("Chain client initialized")

	return &Client{
		rpc:     rpc.New(endpoint),
		timeout: timeout,
	}
}

// Slot returns the current finalized slot.
func (c *Client) Slot(ctx context.Context) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	slot, err := c.rpc.GetSlot(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return 0, fmt.Errorf("get slot: %w", err)
	}

	return slot, nil
}

// BlockTime returns the block time for a slot, or nil when unavailable.
func (c *Client) BlockTime(ctx context.Context, slot uint64) (*time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	blockTime, err := c.rpc.GetBlockTime(ctx, slot)
	if err != nil {
		return nil, fmt.Errorf("get block time: %w", err)
	}
	if blockTime == nil {
		return nil, nil
	}

	t := blockTime.Time().UTC()
	return &t, nil
}
