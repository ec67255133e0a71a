package utils

const (
	DefaultConfigPath = "config.json"

	LamportsPerSol = 1_000_000_000

	// FeeBufferLamports is kept aside for the transaction fee when
	// checking whether a wallet can afford a purchase.
	FeeBufferLamports = 5000
)

var (
	Seedphrase string
)
