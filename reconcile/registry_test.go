package reconcile

import (
	"fmt"
	"testing"
	"time"

	"github.com/solotto/solotto-bot/data"
	"github.com/stretchr/testify/require"
)

const (
	testTreasury = "TreasuryWallet"
	testFee      = "FeeWallet"
	testBuyer    = "BuyerWallet"
	testPrice    = int64(1_000_000)
)

func testParams() Params {
	return Params{
		TreasuryAddress:     testTreasury,
		FeeAddress:          testFee,
		GrossTicketLamports: testPrice,
		LegacySeasonID:      1,
	}
}

func purchaseRecord(signature string, treasuryDelta int64, feeDelta int64, memos ...string) *data.TransactionRecord {
	instructions := make([]data.Instruction, 0, len(memos))
	for _, memo := range memos {
		instructions = append(instructions, data.Instruction{Program: memoProgram, Data: []byte(memo)})
	}

	return &data.TransactionRecord{
		Signature:     signature,
		Instructions:  instructions,
		BalanceDeltas: map[string]int64{testTreasury: treasuryDelta, testFee: feeDelta, testBuyer: -treasuryDelta - feeDelta},
		BlockTime:     time.Unix(1700000000, 0),
		Signer:        testBuyer,
	}
}

func TestRegistry_CompactNote(t *testing.T) {
	registry := NewRegistry(testParams())

	t.Run("quantity inferred from treasury delta", func(t *testing.T) {
		rec := purchaseRecord("sig1", 3*testPrice, 0, `{"t":"TIX","s":7}`)
		event := registry.Parse(rec)
		require.NotNil(t, event)
		require.Equal(t, uint32(7), event.SeasonID)
		require.Equal(t, uint32(3), event.Quantity)
		require.Equal(t, testBuyer, event.BuyerAddress)
		require.Equal(t, 3*testPrice, event.GrossLamports)
	})

	t.Run("note without matching payment is no purchase", func(t *testing.T) {
		rec := purchaseRecord("sig2", 0, 0, `{"t":"TIX","s":7}`)
		require.Nil(t, registry.Parse(rec))
	})

	t.Run("partial payment rounds down to zero", func(t *testing.T) {
		rec := purchaseRecord("sig3", testPrice-1, 0, `{"t":"TIX","s":7}`)
		require.Nil(t, registry.Parse(rec))
	})

	t.Run("memo on an inner instruction is recognized too", func(t *testing.T) {
		rec := purchaseRecord("sig4", testPrice, 0)
		rec.InnerInstructions = []data.Instruction{{Program: memoProgram, Data: []byte(`{"t":"TIX","s":2}`)}}
		event := registry.Parse(rec)
		require.NotNil(t, event)
		require.Equal(t, uint32(2), event.SeasonID)
		require.Equal(t, uint32(1), event.Quantity)
	})
}

func TestRegistry_VerboseNote(t *testing.T) {
	registry := NewRegistry(testParams())

	t.Run("explicit fields are taken as-is", func(t *testing.T) {
		memo := fmt.Sprintf(`{"type":"TICKET_PURCHASE","seasonId":4,"quantity":2,"buyer":"%s","ticketNumbers":["TKT-000001","TKT-000002"],"timestamp":1700000000}`, testBuyer)
		rec := purchaseRecord("sig5", 2*testPrice, 0, memo)
		event := registry.Parse(rec)
		require.NotNil(t, event)
		require.Equal(t, uint32(4), event.SeasonID)
		require.Equal(t, uint32(2), event.Quantity)
		require.Equal(t, testBuyer, event.BuyerAddress)
	})

	t.Run("buyer differing from the signer is rejected", func(t *testing.T) {
		memo := `{"type":"TICKET_PURCHASE","seasonId":4,"quantity":2,"buyer":"SomeoneElse","timestamp":1700000000}`
		rec := purchaseRecord("sig6", 2*testPrice, 0, memo)
		require.Nil(t, registry.Parse(rec))
	})
}

func TestRegistry_DelimitedNote(t *testing.T) {
	registry := NewRegistry(testParams())

	t.Run("all fields present", func(t *testing.T) {
		rec := purchaseRecord("sig7", 0, 0, "SOLOTTO:1;season=4;qty=2;lamports=2000000")
		event := registry.Parse(rec)
		require.NotNil(t, event)
		require.Equal(t, uint32(4), event.SeasonID)
		require.Equal(t, uint32(2), event.Quantity)
		require.Equal(t, int64(2000000), event.GrossLamports)
	})

	t.Run("missing quantity is rejected", func(t *testing.T) {
		rec := purchaseRecord("sig8", 0, 0, "SOLOTTO:1;season=4;lamports=2000000")
		require.Nil(t, registry.Parse(rec))
	})

	t.Run("zero quantity is rejected", func(t *testing.T) {
		rec := purchaseRecord("sig9", 0, 0, "SOLOTTO:1;season=4;qty=0;lamports=0")
		require.Nil(t, registry.Parse(rec))
	})
}

func TestRegistry_AmountOnly(t *testing.T) {
	t.Run("fires only for the legacy season", func(t *testing.T) {
		registry := NewRegistry(testParams())
		rec := purchaseRecord("sig10", 2*testPrice, 0)
		event := registry.Parse(rec)
		require.NotNil(t, event)
		require.Equal(t, uint32(1), event.SeasonID)
		require.Equal(t, uint32(2), event.Quantity)
	})

	t.Run("disabled when no legacy season is configured", func(t *testing.T) {
		params := testParams()
		params.LegacySeasonID = 0
		registry := NewRegistry(params)
		rec := purchaseRecord("sig11", 2*testPrice, 0)
		require.Nil(t, registry.Parse(rec))
	})

	t.Run("never fires when any memo is present", func(t *testing.T) {
		registry := NewRegistry(testParams())
		rec := purchaseRecord("sig12", 2*testPrice, 0, "just a message")
		require.Nil(t, registry.Parse(rec))
	})

	t.Run("transfers below one ticket are ignored", func(t *testing.T) {
		registry := NewRegistry(testParams())
		rec := purchaseRecord("sig13", testPrice-1, 0)
		require.Nil(t, registry.Parse(rec))
	})
}

func TestRegistry_FormatsAgreeOnTheSamePurchase(t *testing.T) {
	registry := NewRegistry(testParams())

	compact := purchaseRecord("sigA", 2*testPrice, 0, `{"t":"TIX","s":4}`)
	verbose := purchaseRecord("sigB", 2*testPrice, 0,
		fmt.Sprintf(`{"type":"TICKET_PURCHASE","seasonId":4,"quantity":2,"buyer":"%s","timestamp":1700000000}`, testBuyer))
	delimited := purchaseRecord("sigC", 2*testPrice, 0, "SOLOTTO:1;season=4;qty=2;lamports=2000000")

	for _, rec := range []*data.TransactionRecord{compact, verbose, delimited} {
		event := registry.Parse(rec)
		require.NotNil(t, event, rec.Signature)
		require.Equal(t, uint32(4), event.SeasonID, rec.Signature)
		require.Equal(t, uint32(2), event.Quantity, rec.Signature)
		require.Equal(t, testBuyer, event.BuyerAddress, rec.Signature)
		require.Equal(t, 2*testPrice, event.GrossLamports, rec.Signature)
	}
}

func TestRegistry_NilRecord(t *testing.T) {
	registry := NewRegistry(testParams())
	require.Nil(t, registry.Parse(nil))
}
