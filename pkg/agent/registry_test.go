package agent

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Create(t *testing.T) {
	registry := NewRegistry()

	agent, err := registry.Create("Alice", []string{"trading", "analysis"}, 1.5)
	require.NoError(t, err)

	assert.NotEmpty(t, agent.ID)
	assert.NotEmpty(t, agent.WalletAddress)
	assert.NotEqual(t, agent.ID, agent.WalletAddress)
	assert.Equal(t, "Alice", agent.Name)
	assert.Equal(t, []string{"trading", "analysis"}, agent.Capabilities)
	assert.Equal(t, 1.5, agent.Balance)
	assert.False(t, agent.CreatedAt.IsZero())
	assert.Equal(t, agent.CreatedAt, agent.UpdatedAt)
}

func TestRegistry_Create_Validation(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		name         string
		agentName    string
		capabilities []string
		balance      float64
		expectedErr  error
	}{
		{
			name:         "missing name",
			capabilities: []string{"trading"},
			balance:      1.0,
			expectedErr:  ErrNameRequired,
		},
		{
			name:        "missing capabilities",
			agentName:   "Alice",
			balance:     1.0,
			expectedErr: ErrCapabilitiesRequired,
		},
		{
			name:         "negative balance",
			agentName:    "Alice",
			capabilities: []string{"trading"},
			balance:      -0.1,
			expectedErr:  ErrNegativeBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent, err := registry.Create(tt.agentName, tt.capabilities, tt.balance)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, agent)
		})
	}

	assert.Empty(t, registry.List(), "failed creates must not register anything")
}

func TestRegistry_Create_CapabilityOrderPreserved(t *testing.T) {
	registry := NewRegistry()

	caps := []string{"b", "a", "b", "c"}
	agent, err := registry.Create("Alice", caps, 0)
	require.NoError(t, err)

	// Order-preserving and not deduplicated.
	assert.Equal(t, []string{"b", "a", "b", "c"}, agent.Capabilities)

	// Mutating the caller's slice must not reach the stored record.
	caps[0] = "mutated"
	stored, ok := registry.Get(agent.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a", "b", "c"}, stored.Capabilities)
}

func TestRegistry_Create_DistinctIDs(t *testing.T) {
	registry := NewRegistry()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		agent, err := registry.Create(fmt.Sprintf("agent-%d", i), []string{"x"}, 0)
		require.NoError(t, err)
		assert.False(t, seen[agent.ID], "duplicate agent ID: %s", agent.ID)
		seen[agent.ID] = true
	}
}

func TestRegistry_InjectedTokenSources(t *testing.T) {
	var ids, addrs int
	registry := NewRegistry(
		WithIDSource(func() string {
			ids++
			return fmt.Sprintf("id-%d", ids)
		}),
		WithAddressSource(func() string {
			addrs++
			return fmt.Sprintf("wallet-%d", addrs)
		}),
	)

	agent, err := registry.Create("Alice", []string{"trading"}, 0)
	require.NoError(t, err)
	assert.Equal(t, "id-1", agent.ID)
	assert.Equal(t, "wallet-1", agent.WalletAddress)

	agent, err = registry.Create("Bob", []string{"trading"}, 0)
	require.NoError(t, err)
	assert.Equal(t, "id-2", agent.ID)
	assert.Equal(t, "wallet-2", agent.WalletAddress)
}

func TestRegistry_Get(t *testing.T) {
	registry := NewRegistry()

	created, err := registry.Create("Alice", []string{"trading"}, 2.0)
	require.NoError(t, err)

	agent, ok := registry.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, created.ID, agent.ID)
	assert.Equal(t, 2.0, agent.Balance)

	_, ok = registry.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_Get_ReturnsCopy(t *testing.T) {
	registry := NewRegistry()

	created, err := registry.Create("Alice", []string{"trading"}, 2.0)
	require.NoError(t, err)

	agent, ok := registry.Get(created.ID)
	require.True(t, ok)
	agent.Balance = 99.0

	stored, ok := registry.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, 2.0, stored.Balance)
}

func TestRegistry_List_InsertionOrder(t *testing.T) {
	registry := NewRegistry()

	names := []string{"Charlie", "Alice", "Bob"}
	for _, name := range names {
		_, err := registry.Create(name, []string{"x"}, 0)
		require.NoError(t, err)
	}

	agents := registry.List()
	require.Len(t, agents, 3)
	for i, agent := range agents {
		assert.Equal(t, names[i], agent.Name)
	}
}

func TestRegistry_SetBalance(t *testing.T) {
	registry := NewRegistry()

	created, err := registry.Create("Alice", []string{"trading"}, 1.0)
	require.NoError(t, err)

	ok := registry.SetBalance(created.ID, 5.0)
	require.True(t, ok)

	agent, found := registry.Get(created.ID)
	require.True(t, found)
	assert.Equal(t, 5.0, agent.Balance)
	assert.True(t, !agent.UpdatedAt.Before(created.UpdatedAt))

	assert.False(t, registry.SetBalance("missing", 5.0))
}

func TestRegistry_SetBalance_IsPermissive(t *testing.T) {
	registry := NewRegistry()

	created, err := registry.Create("Alice", []string{"trading"}, 1.0)
	require.NoError(t, err)

	// The low-level setter applies the value as given; only Transfer
	// enforces non-negativity.
	require.True(t, registry.SetBalance(created.ID, -3.0))

	agent, found := registry.Get(created.ID)
	require.True(t, found)
	assert.Equal(t, -3.0, agent.Balance)
}

func TestRegistry_Transfer(t *testing.T) {
	registry := NewRegistry()

	alice, err := registry.Create("Alice", []string{"trading"}, 1.0)
	require.NoError(t, err)
	bob, err := registry.Create("Bob", []string{"trading"}, 0.0)
	require.NoError(t, err)

	result, err := registry.Transfer(alice.ID, bob.ID, 0.4)
	require.NoError(t, err)

	assert.InDelta(t, 0.6, result.From.Balance, 1e-9)
	assert.InDelta(t, 0.4, result.To.Balance, 1e-9)
	assert.Equal(t, 0.4, result.Amount)

	stored, _ := registry.Get(alice.ID)
	assert.InDelta(t, 0.6, stored.Balance, 1e-9)
	stored, _ = registry.Get(bob.ID)
	assert.InDelta(t, 0.4, stored.Balance, 1e-9)
}

func TestRegistry_Transfer_ExactBalance(t *testing.T) {
	registry := NewRegistry()

	alice, err := registry.Create("Alice", []string{"trading"}, 1.0)
	require.NoError(t, err)
	bob, err := registry.Create("Bob", []string{"trading"}, 0.0)
	require.NoError(t, err)

	result, err := registry.Transfer(alice.ID, bob.ID, 1.0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.From.Balance)
	assert.Equal(t, 1.0, result.To.Balance)
}

func TestRegistry_Transfer_Failures(t *testing.T) {
	registry := NewRegistry()

	alice, err := registry.Create("Alice", []string{"trading"}, 1.0)
	require.NoError(t, err)
	bob, err := registry.Create("Bob", []string{"trading"}, 2.0)
	require.NoError(t, err)

	tests := []struct {
		name        string
		fromID      string
		toID        string
		amount      float64
		expectedErr error
	}{
		{
			name:        "insufficient funds",
			fromID:      alice.ID,
			toID:        bob.ID,
			amount:      5.0,
			expectedErr: ErrInsufficientFunds,
		},
		{
			name:        "unknown source",
			fromID:      "missing",
			toID:        bob.ID,
			amount:      0.5,
			expectedErr: ErrAgentNotFound,
		},
		{
			name:        "unknown destination",
			fromID:      alice.ID,
			toID:        "missing",
			amount:      0.5,
			expectedErr: ErrAgentNotFound,
		},
		{
			name:        "zero amount",
			fromID:      alice.ID,
			toID:        bob.ID,
			amount:      0,
			expectedErr: ErrInvalidAmount,
		},
		{
			name:        "negative amount",
			fromID:      alice.ID,
			toID:        bob.ID,
			amount:      -0.5,
			expectedErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := registry.Transfer(tt.fromID, tt.toID, tt.amount)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, result)

			// No partial application on any failure.
			stored, _ := registry.Get(alice.ID)
			assert.Equal(t, 1.0, stored.Balance)
			stored, _ = registry.Get(bob.ID)
			assert.Equal(t, 2.0, stored.Balance)
		})
	}
}

func TestRegistry_Transfer_SelfTransfer(t *testing.T) {
	registry := NewRegistry()

	alice, err := registry.Create("Alice", []string{"trading"}, 1.0)
	require.NoError(t, err)

	result, err := registry.Transfer(alice.ID, alice.ID, 0.7)
	require.NoError(t, err)

	// Debit and credit cancel; the record is touched exactly once, so both
	// returned copies carry the same UpdatedAt.
	assert.Equal(t, 1.0, result.From.Balance)
	assert.Equal(t, 1.0, result.To.Balance)
	assert.Equal(t, result.From.UpdatedAt, result.To.UpdatedAt)
	assert.True(t, !result.From.UpdatedAt.Before(alice.UpdatedAt))

	stored, _ := registry.Get(alice.ID)
	assert.Equal(t, 1.0, stored.Balance)
}

func TestRegistry_Transfer_SelfTransferInsufficient(t *testing.T) {
	registry := NewRegistry()

	alice, err := registry.Create("Alice", []string{"trading"}, 1.0)
	require.NoError(t, err)

	_, err = registry.Transfer(alice.ID, alice.ID, 2.0)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestRegistry_Transfer_DisjointPairsCommute(t *testing.T) {
	registry := NewRegistry()

	const pairs = 8
	const transfersPerPair = 50

	sources := make([]string, pairs)
	sinks := make([]string, pairs)
	for i := 0; i < pairs; i++ {
		src, err := registry.Create(fmt.Sprintf("src-%d", i), []string{"x"}, 100.0)
		require.NoError(t, err)
		dst, err := registry.Create(fmt.Sprintf("dst-%d", i), []string{"x"}, 0.0)
		require.NoError(t, err)
		sources[i] = src.ID
		sinks[i] = dst.ID
	}

	var wg sync.WaitGroup
	for i := 0; i < pairs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < transfersPerPair; j++ {
				_, err := registry.Transfer(sources[i], sinks[i], 1.0)
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < pairs; i++ {
		src, _ := registry.Get(sources[i])
		dst, _ := registry.Get(sinks[i])
		assert.InDelta(t, 100.0-transfersPerPair, src.Balance, 1e-9)
		assert.InDelta(t, float64(transfersPerPair), dst.Balance, 1e-9)
	}
}

func TestRegistry_Aggregate(t *testing.T) {
	registry := NewRegistry()

	stats := registry.Aggregate()
	assert.Equal(t, 0, stats.Count)
	assert.Equal(t, 0.0, stats.TotalBalance)
	assert.Equal(t, 0.0, stats.MeanBalance)

	_, err := registry.Create("Alice", []string{"x"}, 1.0)
	require.NoError(t, err)
	_, err = registry.Create("Bob", []string{"x"}, 3.0)
	require.NoError(t, err)

	stats = registry.Aggregate()
	assert.Equal(t, 2, stats.Count)
	assert.InDelta(t, 4.0, stats.TotalBalance, 1e-9)
	assert.InDelta(t, 2.0, stats.MeanBalance, 1e-9)
}
