package agent

import "errors"

var (
	// ErrNameRequired is returned when an agent is created without a name
	ErrNameRequired = errors.New("agent name is required")

	// ErrCapabilitiesRequired is returned when an agent is created without capabilities
	ErrCapabilitiesRequired = errors.New("at least one capability is required")

	// ErrNegativeBalance is returned when an agent is created with a negative balance
	ErrNegativeBalance = errors.New("initial balance must not be negative")

	// ErrAgentNotFound is returned when a referenced agent ID does not exist
	ErrAgentNotFound = errors.New("agent not found")

	// ErrInvalidAmount is returned when a transfer amount is zero or negative
	ErrInvalidAmount = errors.New("transfer amount must be greater than zero")

	// ErrInsufficientFunds is returned when the source balance cannot cover a transfer
	ErrInsufficientFunds = errors.New("insufficient funds")
)
