package chain

import (
	"github.com/gagliardetto/solana-go/rpc"
)

// Network identifies a named Solana cluster.
type Network string

const (
	MainnetBeta Network = "mainnet-beta"
	Devnet      Network = "devnet"
	Testnet     Network = "testnet"
	Localnet    Network = "localnet"
)

// Networks returns the fixed set of supported clusters.
func Networks() []Network {
	return []Network{MainnetBeta, Devnet, Testnet, Localnet}
}

// Valid reports whether n names a supported cluster.
func (n Network) Valid() bool {
	switch n {
	case MainnetBeta, Devnet, Testnet, Localnet:
		return true
	}
	return false
}

// Endpoint returns the default RPC endpoint for the cluster. Unknown names
// fall back to mainnet-beta, matching the configuration default.
func (n Network) Endpoint() string {
	switch n {
	case Devnet:
		return rpc.DevNet_RPC
	case Testnet:
		return rpc.TestNet_RPC
	case Localnet:
		return rpc.LocalNet_RPC
	default:
		return rpc.MainNetBeta_RPC
	}
}
