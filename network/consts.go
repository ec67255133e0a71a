package network

import (
	"errors"

	"github.com/gagliardetto/solana-go"
)

const (
	seasonSeed     = "season"
	commissionSeed = "commission"
)

var (
	errInvalidRecord  = errors.New("invalid transaction record")
	errInvalidAccount = errors.New("invalid season account data")

	memoProgramID = solana.MustPublicKeyFromBase58("MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr")
)
