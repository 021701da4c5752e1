package agent

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Registry owns the agent records for one running process. All reads and
// writes to agent state go through it; state lives only for the process
// lifetime and agents are never deleted.
type Registry struct {
	agents  map[string]*Agent
	order   []string
	mu      sync.RWMutex
	newID   TokenSource
	newAddr TokenSource
}

// Option configures a Registry.
type Option func(*Registry)

// WithIDSource overrides the agent ID generator.
func WithIDSource(src TokenSource) Option {
	return func(r *Registry) {
		r.newID = src
	}
}

// WithAddressSource overrides the wallet address generator.
func WithAddressSource(src TokenSource) Option {
	return func(r *Registry) {
		r.newAddr = src
	}
}

// NewRegistry creates an empty Registry
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		agents:  make(map[string]*Agent),
		newID:   UUIDToken,
		newAddr: WalletToken,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create registers a new agent and returns a copy of its record.
func (r *Registry) Create(name string, capabilities []string, initialBalance float64) (*Agent, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(capabilities) == 0 {
		return nil, ErrCapabilitiesRequired
	}
	if initialBalance < 0 {
		return nil, ErrNegativeBalance
	}

	// Keep the caller's tag order but never alias the caller's slice.
	caps := make([]string, len(capabilities))
	copy(caps, capabilities)

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	agent := &Agent{
		ID:            r.newID(),
		Name:          name,
		Capabilities:  caps,
		Balance:       initialBalance,
		WalletAddress: r.newAddr(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	r.agents[agent.ID] = agent
	r.order = append(r.order, agent.ID)

	log.Info().
		Str("agentId", agent.ID).
		Str("name", agent.Name).
		Int("capabilities", len(agent.Capabilities)).
		Float64("balance", agent.Balance).
		Msg("Agent registered")

	agentCopy := *agent
	return &agentCopy, nil
}

// Get retrieves an agent by ID. Absence is a normal outcome, not an error.
func (r *Registry) Get(id string) (*Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	agent, exists := r.agents[id]
	if !exists {
		return nil, false
	}

	// Return a copy to prevent external modifications
	agentCopy := *agent
	return &agentCopy, true
}

// List returns copies of all registered agents in insertion order.
func (r *Registry) List() []*Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Agent, 0, len(r.order))
	for _, id := range r.order {
		agentCopy := *r.agents[id]
		result = append(result, &agentCopy)
	}

	return result
}

// SetBalance overwrites the balance of an existing agent and refreshes its
// UpdatedAt. It is a low-level setter: the value is applied as given, with no
// non-negativity check. Balance invariants belong to the callers that compose
// it, such as Transfer; new callers must not use SetBalance to bypass them.
// Returns false if the agent does not exist.
func (r *Registry) SetBalance(id string, balance float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	agent, exists := r.agents[id]
	if !exists {
		return false
	}

	agent.Balance = balance
	agent.UpdatedAt = time.Now().UTC()

	return true
}

// Transfer moves amount from one agent to another as a single indivisible
// step under the registry lock: no observer can see the debit without the
// credit. On any precondition failure nothing is mutated. A self-transfer is
// allowed when the balance covers the amount; it leaves the balance unchanged
// and refreshes UpdatedAt exactly once.
func (r *Registry) Transfer(fromID, toID string, amount float64) (*TransferResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	from, exists := r.agents[fromID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrAgentNotFound, fromID)
	}
	to, exists := r.agents[toID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrAgentNotFound, toID)
	}

	if from.Balance < amount {
		return nil, fmt.Errorf("%w: balance %v, requested %v", ErrInsufficientFunds, from.Balance, amount)
	}

	now := time.Now().UTC()
	if fromID == toID {
		from.UpdatedAt = now
	} else {
		from.Balance -= amount
		to.Balance += amount
		from.UpdatedAt = now
		to.UpdatedAt = now
	}

	log.Info().
		Str("fromId", fromID).
		Str("toId", toID).
		Float64("amount", amount).
		Msg("Transfer applied")

	return &TransferResult{From: *from, To: *to, Amount: amount}, nil
}

// Aggregate returns registry-wide balance statistics. The mean is zero for an
// empty registry.
func (r *Registry) Aggregate() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{Count: len(r.agents)}
	for _, agent := range r.agents {
		stats.TotalBalance += agent.Balance
	}
	if stats.Count > 0 {
		stats.MeanBalance = stats.TotalBalance / float64(stats.Count)
	}

	return stats
}
