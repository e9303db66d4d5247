package config

// This is the global app config for the ledger.
type AppConfig struct {
	// How many leading zero hex digits to form a valid block hash.
	DIFFICULTY int
	// Address of the IPFS daemon HTTP API, e.g. "127.0.0.1:5001".
	IPFS_API string
	// Where to persist the chain between runs. Empty means in-memory only.
	CHAIN_PATH string
}
