package network

import (
	"context"
	"time"

	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/solotto/solotto-bot/data"
)

var log = logger.GetOrCreate("network")

// Manager - talks to the Solana RPC endpoint on behalf of the rest of
// the application: account fetches, history listing, transaction
// decoding and submission
type Manager struct {
	cfg    *data.AppConfig
	client *rpc.Client

	programID solana.PublicKey
	treasury  solana.PublicKey
	feeWallet solana.PublicKey
}

// NewManager - creates a new Manager object
func NewManager(cfg *data.AppConfig) (*Manager, error) {
	programID, err := solana.PublicKeyFromBase58(cfg.Lottery.ProgramID)
	if err != nil {
		log.Error("invalid program id in config", "error", err)
		return nil, err
	}

	treasury, err := solana.PublicKeyFromBase58(cfg.Lottery.TreasuryAddress)
	if err != nil {
		log.Error("invalid treasury address in config", "error", err)
		return nil, err
	}

	feeWallet, err := solana.PublicKeyFromBase58(cfg.Lottery.FeeAddress)
	if err != nil {
		log.Error("invalid fee address in config", "error", err)
		return nil, err
	}

	manager := &Manager{
		cfg:       cfg,
		client:    rpc.New(cfg.Network.Endpoint),
		programID: programID,
		treasury:  treasury,
		feeWallet: feeWallet,
	}

	return manager, nil
}

// GetBalance returns the lamport balance of an address.
func (m *Manager) GetBalance(ctx context.Context, address string) (int64, error) {
	pubkey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		log.Error("getBalance - invalid address", "address", address, "error", err)
		return 0, err
	}

	res, err := m.client.GetBalance(ctx, pubkey, rpc.CommitmentConfirmed)
	if err != nil {
		log.Error("getBalance", "address", address, "error", err)
		return 0, err
	}

	return int64(res.Value), nil
}

// GetSignaturesForAddress lists the most recent transaction signatures
// touching an address, newest first.
func (m *Manager) GetSignaturesForAddress(ctx context.Context, address string, limit int) ([]string, error) {
	pubkey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		log.Error("getSignaturesForAddress - invalid address", "address", address, "error", err)
		return nil, err
	}

	res, err := m.client.GetSignaturesForAddressWithOpts(ctx, pubkey, &rpc.GetSignaturesForAddressOpts{
		Limit:      &limit,
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		log.Error("getSignaturesForAddress", "address", address, "error", err)
		return nil, err
	}

	signatures := make([]string, 0, len(res))
	for _, entry := range res {
		if entry == nil {
			continue
		}
		signatures = append(signatures, entry.Signature.String())
	}

	return signatures, nil
}

// GetTransactionRecord fetches one transaction and reduces it to the
// typed record the parser works on. A pruned or unknown transaction
// yields (nil, nil); a transaction whose shape cannot be validated is
// an error, never a partial record.
func (m *Manager) GetTransactionRecord(ctx context.Context, signature string) (*data.TransactionRecord, error) {
	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return nil, err
	}

	maxVersion := uint64(0)
	res, err := m.client.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
		Encoding:                       solana.EncodingBase64,
		Commitment:                     rpc.CommitmentConfirmed,
		MaxSupportedTransactionVersion: &maxVersion,
	})
	if err != nil {
		if err == rpc.ErrNotFound {
			return nil, nil
		}
		log.Debug("getTransaction", "signature", signature, "error", err)
		return nil, err
	}
	if res == nil {
		return nil, nil
	}

	return decodeRecord(signature, res)
}

func decodeRecord(signature string, res *rpc.GetTransactionResult) (*data.TransactionRecord, error) {
	if res.Meta == nil || res.Transaction == nil {
		return nil, errInvalidRecord
	}

	tx, err := res.Transaction.GetTransaction()
	if err != nil || tx == nil {
		return nil, errInvalidRecord
	}

	msg := &tx.Message
	keys := msg.AccountKeys
	if len(keys) == 0 {
		return nil, errInvalidRecord
	}
	if len(res.Meta.PreBalances) != len(keys) || len(res.Meta.PostBalances) != len(keys) {
		return nil, errInvalidRecord
	}

	deltas := make(map[string]int64, len(keys))
	for i, key := range keys {
		deltas[key.String()] = int64(res.Meta.PostBalances[i]) - int64(res.Meta.PreBalances[i])
	}

	instructions := make([]data.Instruction, 0, len(msg.Instructions))
	for _, compiled := range msg.Instructions {
		program, err := msg.Program(compiled.ProgramIDIndex)
		if err != nil {
			return nil, errInvalidRecord
		}
		instructions = append(instructions, data.Instruction{
			Program: program.String(),
			Data:    compiled.Data,
		})
	}

	inner := make([]data.Instruction, 0)
	for _, group := range res.Meta.InnerInstructions {
		for _, compiled := range group.Instructions {
			program, err := msg.Program(compiled.ProgramIDIndex)
			if err != nil {
				return nil, errInvalidRecord
			}
			inner = append(inner, data.Instruction{
				Program: program.String(),
				Data:    compiled.Data,
			})
		}
	}

	blockTime := time.Time{}
	if res.BlockTime != nil {
		blockTime = res.BlockTime.Time()
	}

	return &data.TransactionRecord{
		Signature:         signature,
		Instructions:      instructions,
		InnerInstructions: inner,
		BalanceDeltas:     deltas,
		BlockTime:         blockTime,
		Signer:            keys[0].String(),
	}, nil
}
