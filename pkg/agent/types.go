package agent

import (
	"time"
)

// Agent represents a registered agent in the system
type Agent struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Capabilities  []string  `json:"capabilities"`
	Balance       float64   `json:"balance"`
	WalletAddress string    `json:"walletAddress"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TransferResult holds the post-transfer state of both sides of a completed
// transfer.
type TransferResult struct {
	From   Agent   `json:"from"`
	To     Agent   `json:"to"`
	Amount float64 `json:"amount"`
}

// Stats are registry-wide balance aggregates.
type Stats struct {
	Count        int     `json:"count"`
	TotalBalance float64 `json:"totalBalance"`
	MeanBalance  float64 `json:"meanBalance"`
}
