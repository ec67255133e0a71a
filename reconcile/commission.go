package reconcile

import "github.com/solotto/solotto-bot/data"

// AccumulateCommission sums the lamports received by the fee address
// across the given records, counting only transactions that
// independently produced a purchase event for the queried season. A
// transfer to the fee address with no recognizable purchase note in the
// same transaction contributes nothing, so manual top-ups never inflate
// the realized commission.
func AccumulateCommission(records []*data.TransactionRecord, events map[string]*data.PurchaseEvent, feeAddress string, seasonID uint32) int64 {
	total := int64(0)
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		if rec == nil || seen[rec.Signature] {
			continue
		}
		seen[rec.Signature] = true

		event, ok := events[rec.Signature]
		if !ok || event.SeasonID != seasonID {
			continue
		}
		total += rec.TransferTo(feeAddress)
	}

	return total
}
