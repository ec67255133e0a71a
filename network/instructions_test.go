package network

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func transferLamports(t *testing.T, instruction solana.Instruction) uint64 {
	require.Equal(t, solana.SystemProgramID, instruction.ProgramID())
	payload, err := instruction.Data()
	require.NoError(t, err)
	require.Len(t, payload, 12)
	// u32 instruction index + u64 lamports
	return binary.LittleEndian.Uint64(payload[4:])
}

func TestBuildBuyTicket(t *testing.T) {
	manager := testManager(t)
	buyer := solana.NewWallet().PublicKey()

	instructions := manager.BuildBuyTicket(buyer, 5, 2)
	require.Len(t, instructions, 3)

	require.Equal(t, uint64(2_000_000), transferLamports(t, instructions[0]))
	require.Equal(t, uint64(200_000), transferLamports(t, instructions[1]))

	memo := instructions[2]
	require.Equal(t, memoProgramID, memo.ProgramID())
	payload, err := memo.Data()
	require.NoError(t, err)
	require.JSONEq(t, `{"t":"TIX","s":5}`, string(payload))
}

func TestPurchaseCostLamports(t *testing.T) {
	manager := testManager(t)

	require.Equal(t, int64(1_100_000), manager.PurchaseCostLamports(1))
	require.Equal(t, int64(3_300_000), manager.PurchaseCostLamports(3))
}

func TestBuildStartSeason(t *testing.T) {
	manager := testManager(t)
	admin := solana.NewWallet().PublicKey()

	instructions, err := manager.BuildStartSeason(admin, 4)
	require.NoError(t, err)
	require.Len(t, instructions, 1)
	require.Equal(t, manager.programID, instructions[0].ProgramID())

	payload, err := instructions[0].Data()
	require.NoError(t, err)
	require.Len(t, payload, 12)
	require.Equal(t, instructionDiscriminator("start_season"), payload[:8])
	require.Equal(t, uint32(4), binary.LittleEndian.Uint32(payload[8:]))

	accounts := instructions[0].Accounts()
	require.Len(t, accounts, 4)
	require.Equal(t, admin, accounts[0].PublicKey)
	require.True(t, accounts[0].IsSigner)
	require.Equal(t, solana.SystemProgramID, accounts[3].PublicKey)
}

func TestBuildEndSeason(t *testing.T) {
	manager := testManager(t)
	admin := solana.NewWallet().PublicKey()

	instructions, err := manager.BuildEndSeason(admin, 4)
	require.NoError(t, err)
	require.Len(t, instructions, 1)

	payload, err := instructions[0].Data()
	require.NoError(t, err)
	require.Equal(t, instructionDiscriminator("end_season"), payload)

	seasonPda, err := manager.SeasonAddress(4)
	require.NoError(t, err)
	require.Equal(t, seasonPda, instructions[0].Accounts()[1].PublicKey)
}

func TestBuildClaimCommission(t *testing.T) {
	manager := testManager(t)
	admin := solana.NewWallet().PublicKey()

	instructions := manager.BuildClaimCommission(admin)
	require.Len(t, instructions, 1)

	payload, err := instructions[0].Data()
	require.NoError(t, err)
	require.Equal(t, instructionDiscriminator("claim_commission"), payload)
}

func TestInstructionDiscriminator(t *testing.T) {
	require.Len(t, instructionDiscriminator("start_season"), 8)
	require.NotEqual(t, instructionDiscriminator("start_season"), instructionDiscriminator("end_season"))
}
