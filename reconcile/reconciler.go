package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/solotto/solotto-bot/data"
)

var log = logger.GetOrCreate("reconcile")

const (
	seasonHistoryLimit = 1000
	walletHistoryLimit = 100

	defaultSeasonDuration = 7 * 24 * time.Hour
)

// Ledger is the read side of the ledger query adapter the reconciler
// depends on. Implementations must return ErrSeasonNotFound when the
// structured account is absent and a nil record for pruned
// transactions.
type Ledger interface {
	GetSeasonAccount(ctx context.Context, seasonID uint32) (*data.Season, error)
	GetCommissionVaultBalance(ctx context.Context, seasonID uint32) (int64, error)
	GetSignaturesForAddress(ctx context.Context, address string, limit int) ([]string, error)
	GetTransactionRecord(ctx context.Context, signature string) (*data.TransactionRecord, error)
}

// TicketCache is the local, best-effort ticket bookkeeping the
// reconciler falls back to when the ledger yields nothing.
type TicketCache interface {
	WalletTickets(wallet string) []*data.Ticket
	SeasonTickets(seasonID uint32) []*data.Ticket
	SeasonEndTime(seasonID uint32) (time.Time, bool)
	SetSeasonEndTime(seasonID uint32, end time.Time)
}

// Reconciler produces a single coherent season/ticket view out of the
// structured season account, the raw transaction history and the local
// cache, in that order of trust.
type Reconciler struct {
	ledger   Ledger
	cache    TicketCache
	registry *Registry
	params   Params
}

func NewReconciler(ledger Ledger, cache TicketCache, params Params) *Reconciler {
	return &Reconciler{
		ledger:   ledger,
		cache:    cache,
		registry: NewRegistry(params),
		params:   params,
	}
}

// GetSeasonState returns the reconciled snapshot for one season. It
// never fails: when the structured account is absent the transaction
// history is aggregated instead, and when even that is impossible a
// zero-state snapshot is returned so the caller always has something to
// render.
func (r *Reconciler) GetSeasonState(ctx context.Context, seasonID uint32) *data.SeasonSnapshot {
	season, err := r.ledger.GetSeasonAccount(ctx, seasonID)
	if err == nil && season != nil {
		if !season.EndTime.IsZero() {
			r.cache.SetSeasonEndTime(seasonID, season.EndTime)
		}
		commission, err := r.ledger.GetCommissionVaultBalance(ctx, seasonID)
		if err != nil {
			log.Debug("commission vault balance unavailable", "season", seasonID, "error", err)
			commission = 0
		}
		return &data.SeasonSnapshot{Season: *season, CommissionLamports: commission, Source: data.SourceAccount}
	}
	if err != nil && !errors.Is(err, ErrSeasonNotFound) {
		log.Warn("season account fetch failed, scanning history", "season", seasonID, "error", err)
	}

	snapshot, err := r.aggregateSeason(ctx, seasonID)
	if err != nil {
		log.Warn("season aggregation failed", "season", seasonID, "error", err)
		return r.defaultSnapshot(seasonID)
	}

	if snapshot.TotalTicketsSold == 0 {
		if cached := r.cache.SeasonTickets(seasonID); len(cached) > 0 {
			snapshot.TotalTicketsSold = uint32(len(cached))
			snapshot.TotalPrizePoolLamports = int64(len(cached)) * r.params.GrossTicketLamports
			snapshot.Source = data.SourceCache
		}
	}

	return snapshot
}

// aggregateSeason rebuilds the season totals from the transaction
// histories of the treasury and the fee address. The union of both
// histories is deduplicated by signature before parsing, since a
// purchase touches both accounts. Individual record fetches may fail
// without aborting the whole scan; the per-event sums are commutative,
// so the result does not depend on history ordering.
func (r *Reconciler) aggregateSeason(ctx context.Context, seasonID uint32) (*data.SeasonSnapshot, error) {
	treasurySigs, err := r.ledger.GetSignaturesForAddress(ctx, r.params.TreasuryAddress, seasonHistoryLimit)
	if err != nil {
		return nil, err
	}
	feeSigs, err := r.ledger.GetSignaturesForAddress(ctx, r.params.FeeAddress, seasonHistoryLimit)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(treasurySigs)+len(feeSigs))
	signatures := make([]string, 0, len(treasurySigs)+len(feeSigs))
	for _, sig := range append(treasurySigs, feeSigs...) {
		if sig == "" || seen[sig] {
			continue
		}
		seen[sig] = true
		signatures = append(signatures, sig)
	}

	events := make(map[string]*data.PurchaseEvent)
	records := make([]*data.TransactionRecord, 0, len(signatures))
	for _, sig := range signatures {
		rec, err := r.ledger.GetTransactionRecord(ctx, sig)
		if err != nil {
			log.Debug("skipping unreadable transaction", "signature", sig, "error", err)
			continue
		}
		if rec == nil {
			continue
		}
		records = append(records, rec)

		event := r.registry.Parse(rec)
		if event == nil || event.SeasonID != seasonID {
			continue
		}
		if _, duplicate := events[event.TransactionSignature]; duplicate {
			continue
		}
		events[event.TransactionSignature] = event
	}

	totalTickets := int64(0)
	for _, event := range events {
		totalTickets += int64(event.Quantity)
	}

	snapshot := &data.SeasonSnapshot{
		Season: data.Season{
			SeasonID:               seasonID,
			TotalTicketsSold:       uint32(totalTickets),
			TotalPrizePoolLamports: totalTickets * r.params.GrossTicketLamports,
			IsActive:               true,
			EndTime:                r.seasonEndTime(seasonID),
		},
		CommissionLamports: AccumulateCommission(records, events, r.params.FeeAddress, seasonID),
		Source:             data.SourceHistory,
	}

	return snapshot, nil
}

// GetUserTickets returns the wallet's tickets from its transaction
// history, or the locally cached ones when the ledger yields none. The
// two sources are never merged: a non-empty ledger result fully
// replaces the cache view.
func (r *Reconciler) GetUserTickets(ctx context.Context, wallet string) []*data.Ticket {
	signatures, err := r.ledger.GetSignaturesForAddress(ctx, wallet, walletHistoryLimit)
	if err != nil {
		log.Warn("wallet history fetch failed, using cached tickets", "wallet", wallet, "error", err)
		return r.cache.WalletTickets(wallet)
	}

	tickets := make([]*data.Ticket, 0)
	seen := make(map[string]bool, len(signatures))
	for _, sig := range signatures {
		if sig == "" || seen[sig] {
			continue
		}
		seen[sig] = true

		rec, err := r.ledger.GetTransactionRecord(ctx, sig)
		if err != nil {
			log.Debug("skipping unreadable transaction", "signature", sig, "error", err)
			continue
		}
		if rec == nil {
			continue
		}

		event := r.registry.Parse(rec)
		if event == nil || event.BuyerAddress != wallet {
			continue
		}

		for i := uint32(0); i < event.Quantity; i++ {
			tickets = append(tickets, &data.Ticket{
				ID:            fmt.Sprintf("%s_%v", event.TransactionSignature, i),
				SeasonID:      event.SeasonID,
				WalletAddress: wallet,
				PurchaseTime:  event.Timestamp,
				TicketNumber:  synthesizeTicketNumber(event, i),
			})
		}
	}

	if len(tickets) == 0 {
		return r.cache.WalletTickets(wallet)
	}

	return tickets
}

// synthesizeTicketNumber builds a display label for ledger-derived
// tickets; the program assigns no numbering, so the signature has to do.
func synthesizeTicketNumber(event *data.PurchaseEvent, index uint32) string {
	sig := event.TransactionSignature
	if len(sig) > 6 {
		sig = sig[:6]
	}
	if index == 0 {
		return "TKT-" + strings.ToUpper(sig)
	}

	return fmt.Sprintf("TKT-%s-%v", strings.ToUpper(sig), index+1)
}

func (r *Reconciler) seasonEndTime(seasonID uint32) time.Time {
	if end, ok := r.cache.SeasonEndTime(seasonID); ok {
		return end
	}

	return time.Now().Add(defaultSeasonDuration)
}

func (r *Reconciler) defaultSnapshot(seasonID uint32) *data.SeasonSnapshot {
	return &data.SeasonSnapshot{
		Season: data.Season{
			SeasonID: seasonID,
			IsActive: true,
			EndTime:  time.Now().Add(defaultSeasonDuration),
		},
		Source: data.SourceDefault,
	}
}

// SeasonLabel is a small display helper shared by the consumers.
func SeasonLabel(seasonID uint32) string {
	return fmt.Sprintf("Season #%v", seasonID)
}
