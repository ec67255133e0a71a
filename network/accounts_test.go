package network

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/solotto/solotto-bot/data"
	"github.com/stretchr/testify/require"
)

func testManager(t *testing.T) *Manager {
	cfg := &data.AppConfig{}
	cfg.Lottery.ProgramID = solana.NewWallet().PublicKey().String()
	cfg.Lottery.TreasuryAddress = solana.NewWallet().PublicKey().String()
	cfg.Lottery.FeeAddress = solana.NewWallet().PublicKey().String()
	cfg.Lottery.GrossTicketLamports = 1_000_000
	cfg.Lottery.CommissionPercent = 10
	cfg.Network.Endpoint = "http://localhost:8899"

	manager, err := NewManager(cfg)
	require.NoError(t, err)

	return manager
}

func encodeSeasonAccount(discriminator [8]byte, winner *solana.PublicKey, winnerTicketID *string) []byte {
	buf := make([]byte, 0, 128)
	buf = append(buf, discriminator[:]...)

	u32 := make([]byte, 4)
	binary.LittleEndian.PutUint32(u32, 4)
	buf = append(buf, u32...) // season id
	binary.LittleEndian.PutUint32(u32, 10)
	buf = append(buf, u32...) // tickets sold

	u64 := make([]byte, 8)
	binary.LittleEndian.PutUint64(u64, 10_000_000)
	buf = append(buf, u64...) // prize pool

	buf = append(buf, 1) // active

	binary.LittleEndian.PutUint64(u64, uint64(time.Unix(1800000000, 0).Unix()))
	buf = append(buf, u64...) // end time

	if winner != nil {
		buf = append(buf, 1)
		buf = append(buf, winner[:]...)
	} else {
		buf = append(buf, 0)
	}

	if winnerTicketID != nil {
		buf = append(buf, 1)
		binary.LittleEndian.PutUint32(u32, uint32(len(*winnerTicketID)))
		buf = append(buf, u32...)
		buf = append(buf, []byte(*winnerTicketID)...)
	} else {
		buf = append(buf, 0)
	}

	admin := solana.NewWallet().PublicKey()
	buf = append(buf, admin[:]...)

	return buf
}

func TestDecodeSeasonAccount(t *testing.T) {
	t.Run("active season, no winner yet", func(t *testing.T) {
		raw := encodeSeasonAccount(accountDiscriminator("Season"), nil, nil)
		season, err := decodeSeasonAccount(raw)
		require.NoError(t, err)
		require.Equal(t, uint32(4), season.SeasonID)
		require.Equal(t, uint32(10), season.TotalTicketsSold)
		require.Equal(t, int64(10_000_000), season.TotalPrizePoolLamports)
		require.True(t, season.IsActive)
		require.Equal(t, int64(1800000000), season.EndTime.Unix())
		require.Empty(t, season.Winner)
		require.Empty(t, season.WinnerTicketID)
		require.NotEmpty(t, season.Admin)
	})

	t.Run("ended season with winner", func(t *testing.T) {
		winner := solana.NewWallet().PublicKey()
		ticketID := "TKT-000007"
		raw := encodeSeasonAccount(accountDiscriminator("Season"), &winner, &ticketID)
		season, err := decodeSeasonAccount(raw)
		require.NoError(t, err)
		require.Equal(t, winner.String(), season.Winner)
		require.Equal(t, ticketID, season.WinnerTicketID)
	})

	t.Run("lowercase discriminator is accepted too", func(t *testing.T) {
		raw := encodeSeasonAccount(accountDiscriminator("season"), nil, nil)
		_, err := decodeSeasonAccount(raw)
		require.NoError(t, err)
	})

	t.Run("unknown discriminator is rejected", func(t *testing.T) {
		raw := encodeSeasonAccount(accountDiscriminator("NotASeason"), nil, nil)
		_, err := decodeSeasonAccount(raw)
		require.ErrorIs(t, err, errInvalidAccount)
	})

	t.Run("truncated data is rejected", func(t *testing.T) {
		_, err := decodeSeasonAccount([]byte{1, 2, 3})
		require.ErrorIs(t, err, errInvalidAccount)

		raw := encodeSeasonAccount(accountDiscriminator("Season"), nil, nil)
		_, err = decodeSeasonAccount(raw[:20])
		require.Error(t, err)
	})

	t.Run("absurd prize pool is rejected", func(t *testing.T) {
		raw := encodeSeasonAccount(accountDiscriminator("Season"), nil, nil)
		// overwrite the prize pool field with an impossible value
		binary.LittleEndian.PutUint64(raw[16:24], uint64(1)<<63)
		_, err := decodeSeasonAccount(raw)
		require.ErrorIs(t, err, errInvalidAccount)
	})
}

func TestAddressDerivation(t *testing.T) {
	manager := testManager(t)

	t.Run("deterministic", func(t *testing.T) {
		first, err := manager.SeasonAddress(4)
		require.NoError(t, err)
		second, err := manager.SeasonAddress(4)
		require.NoError(t, err)
		require.Equal(t, first, second)
	})

	t.Run("seasons derive distinct addresses", func(t *testing.T) {
		a, err := manager.SeasonAddress(4)
		require.NoError(t, err)
		b, err := manager.SeasonAddress(5)
		require.NoError(t, err)
		require.NotEqual(t, a, b)
	})

	t.Run("season and commission vault differ", func(t *testing.T) {
		season, err := manager.SeasonAddress(4)
		require.NoError(t, err)
		vault, err := manager.CommissionVaultAddress(4)
		require.NoError(t, err)
		require.NotEqual(t, season, vault)
	})
}
