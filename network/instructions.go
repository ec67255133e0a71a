package network

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
)

type compactNote struct {
	T string `json:"t"`
	S uint32 `json:"s"`
}

func instructionDiscriminator(name string) []byte {
	hash := sha256.Sum256([]byte("global:" + name))

	return hash[:8]
}

func seasonIDArg(seasonID uint32) []byte {
	arg := make([]byte, 4)
	binary.LittleEndian.PutUint32(arg, seasonID)

	return arg
}

// BuildBuyTicket assembles the purchase payload: the gross transfer to
// the treasury, the instant commission transfer to the fee wallet and
// the compact purchase note the reconciler reads back later.
func (m *Manager) BuildBuyTicket(buyer solana.PublicKey, seasonID uint32, quantity int64) []solana.Instruction {
	gross := quantity * m.cfg.Lottery.GrossTicketLamports
	commission := gross * m.cfg.Lottery.CommissionPercent / 100
	note, _ := json.Marshal(compactNote{T: "TIX", S: seasonID})

	return []solana.Instruction{
		system.NewTransferInstruction(uint64(gross), buyer, m.treasury).Build(),
		system.NewTransferInstruction(uint64(commission), buyer, m.feeWallet).Build(),
		solana.NewInstruction(memoProgramID, solana.AccountMetaSlice{
			solana.NewAccountMeta(buyer, false, true),
		}, note),
	}
}

// PurchaseCostLamports is the total a wallet must pay for a purchase,
// before the transaction fee.
func (m *Manager) PurchaseCostLamports(quantity int64) int64 {
	gross := quantity * m.cfg.Lottery.GrossTicketLamports

	return gross + gross*m.cfg.Lottery.CommissionPercent/100
}

// BuildStartSeason assembles the program call creating the season
// account at its PDA.
func (m *Manager) BuildStartSeason(admin solana.PublicKey, seasonID uint32) ([]solana.Instruction, error) {
	seasonPda, err := m.SeasonAddress(seasonID)
	if err != nil {
		return nil, err
	}

	payload := append(instructionDiscriminator("start_season"), seasonIDArg(seasonID)...)
	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(admin, true, true),
		solana.NewAccountMeta(m.treasury, true, false),
		solana.NewAccountMeta(seasonPda, true, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
	}

	return []solana.Instruction{solana.NewInstruction(m.programID, accounts, payload)}, nil
}

// BuildEndSeason assembles the program call closing an active season.
func (m *Manager) BuildEndSeason(admin solana.PublicKey, seasonID uint32) ([]solana.Instruction, error) {
	seasonPda, err := m.SeasonAddress(seasonID)
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(admin, true, true),
		solana.NewAccountMeta(seasonPda, true, false),
	}

	return []solana.Instruction{solana.NewInstruction(m.programID, accounts, instructionDiscriminator("end_season"))}, nil
}

// BuildClaimCommission assembles the program call moving the accrued
// commission from the treasury to the admin wallet.
func (m *Manager) BuildClaimCommission(admin solana.PublicKey) []solana.Instruction {
	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(admin, true, true),
		solana.NewAccountMeta(m.treasury, true, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
	}

	return []solana.Instruction{solana.NewInstruction(m.programID, accounts, instructionDiscriminator("claim_commission"))}
}

// SubmitTransaction signs the instructions with the given key and
// submits them, returning the transaction signature.
func (m *Manager) SubmitTransaction(ctx context.Context, instructions []solana.Instruction, signer solana.PrivateKey) (string, error) {
	recent, err := m.client.GetLatestBlockhash(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		log.Error("can not get recent blockhash", "error", err)
		return "", err
	}

	tx, err := solana.NewTransaction(instructions, recent.Value.Blockhash, solana.TransactionPayer(signer.PublicKey()))
	if err != nil {
		log.Error("can not build transaction", "error", err)
		return "", err
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(signer.PublicKey()) {
			return &signer
		}
		return nil
	})
	if err != nil {
		log.Error("unable to sign transaction", "error", err)
		return "", err
	}

	signature, err := m.client.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		log.Error("unable to send transaction", "error", err)
		return "", err
	}

	return signature.String(), nil
}
