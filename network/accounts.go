package network

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/solotto/solotto-bot/data"
	"github.com/solotto/solotto-bot/reconcile"
)

// seasonAccount is the borsh layout of the program's season account,
// minus the 8-byte anchor discriminator.
type seasonAccount struct {
	SeasonID         uint32
	TotalTicketsSold uint32
	TotalPrizePool   uint64
	IsActive         bool
	EndTime          int64
	Winner           *solana.PublicKey `bin:"optional"`
	WinnerTicketID   *string           `bin:"optional"`
	Admin            solana.PublicKey
}

// Historical deployments exposed the account under both casings, so
// both discriminators must be accepted when reading.
var seasonDiscriminators = [][8]byte{
	accountDiscriminator("Season"),
	accountDiscriminator("season"),
}

func accountDiscriminator(name string) [8]byte {
	hash := sha256.Sum256([]byte("account:" + name))
	discriminator := [8]byte{}
	copy(discriminator[:], hash[:8])

	return discriminator
}

// SeasonAddress derives the season PDA: ["season", u32 LE season id].
func (m *Manager) SeasonAddress(seasonID uint32) (solana.PublicKey, error) {
	return deriveAddress(seasonSeed, seasonID, m.programID)
}

// CommissionVaultAddress derives the commission vault PDA:
// ["commission", u32 LE season id].
func (m *Manager) CommissionVaultAddress(seasonID uint32) (solana.PublicKey, error) {
	return deriveAddress(commissionSeed, seasonID, m.programID)
}

func deriveAddress(seed string, seasonID uint32, programID solana.PublicKey) (solana.PublicKey, error) {
	id := make([]byte, 4)
	binary.LittleEndian.PutUint32(id, seasonID)

	address, _, err := solana.FindProgramAddress([][]byte{[]byte(seed), id}, programID)

	return address, err
}

// GetCommissionVaultBalance returns the lamports sitting in the
// season's commission vault PDA. An absent vault is simply empty.
func (m *Manager) GetCommissionVaultBalance(ctx context.Context, seasonID uint32) (int64, error) {
	address, err := m.CommissionVaultAddress(seasonID)
	if err != nil {
		return 0, err
	}

	res, err := m.client.GetBalance(ctx, address, rpc.CommitmentConfirmed)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return int64(res.Value), nil
}

// GetSeasonAccount fetches and decodes the structured season account.
// An absent account, and an account whose data cannot be validated,
// both surface as reconcile.ErrSeasonNotFound - the adapter fails
// closed rather than handing partial state to the reconciler.
func (m *Manager) GetSeasonAccount(ctx context.Context, seasonID uint32) (*data.Season, error) {
	address, err := m.SeasonAddress(seasonID)
	if err != nil {
		return nil, err
	}

	res, err := m.client.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, reconcile.ErrSeasonNotFound
		}
		log.Error("getSeasonAccount", "season", seasonID, "error", err)
		return nil, err
	}
	if res == nil || res.Value == nil {
		return nil, reconcile.ErrSeasonNotFound
	}

	season, err := decodeSeasonAccount(res.Value.Data.GetBinary())
	if err != nil {
		log.Warn("undecodable season account", "address", address.String(), "error", err)
		return nil, reconcile.ErrSeasonNotFound
	}

	return season, nil
}

func decodeSeasonAccount(raw []byte) (*data.Season, error) {
	if len(raw) < 8 {
		return nil, errInvalidAccount
	}

	discriminator := [8]byte{}
	copy(discriminator[:], raw[:8])
	known := false
	for _, candidate := range seasonDiscriminators {
		if discriminator == candidate {
			known = true
			break
		}
	}
	if !known {
		return nil, errInvalidAccount
	}

	account := &seasonAccount{}
	if err := bin.NewBorshDecoder(raw[8:]).Decode(account); err != nil {
		return nil, err
	}
	if account.TotalPrizePool > uint64(1<<62) {
		return nil, errInvalidAccount
	}

	season := &data.Season{
		SeasonID:               account.SeasonID,
		TotalTicketsSold:       account.TotalTicketsSold,
		TotalPrizePoolLamports: int64(account.TotalPrizePool),
		IsActive:               account.IsActive,
		EndTime:                time.Unix(account.EndTime, 0),
		Admin:                  account.Admin.String(),
	}
	if account.Winner != nil {
		season.Winner = account.Winner.String()
	}
	if account.WinnerTicketID != nil {
		season.WinnerTicketID = *account.WinnerTicketID
	}

	return season, nil
}
