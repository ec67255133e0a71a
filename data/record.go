package data

import "time"

// Instruction is one instruction of a fetched transaction, reduced to
// the fields the parser needs.
type Instruction struct {
	Program string
	Data    []byte
}

// TransactionRecord is the typed, validated form of a raw transaction
// fetched from the ledger. BalanceDeltas maps an account address to its
// post-minus-pre lamport change within the transaction.
type TransactionRecord struct {
	Signature         string
	Instructions      []Instruction
	InnerInstructions []Instruction
	BalanceDeltas     map[string]int64
	BlockTime         time.Time
	Signer            string
}

// TransferTo returns the lamports received by address within the
// transaction, zero if the address was untouched or only debited.
func (r *TransactionRecord) TransferTo(address string) int64 {
	delta := r.BalanceDeltas[address]
	if delta < 0 {
		return 0
	}

	return delta
}
