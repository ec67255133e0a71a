package data

import "time"

// Ticket is a user-facing numbered lottery entry. Tickets come either
// from parsed transaction history or from the local cache; the two
// sources are never mixed in one result.
type Ticket struct {
	ID            string    `json:"id"`
	SeasonID      uint32    `json:"seasonId"`
	WalletAddress string    `json:"walletAddress"`
	PurchaseTime  time.Time `json:"purchaseTime"`
	TicketNumber  string    `json:"ticketNumber"`
}

// PurchaseEvent is one reconciled ticket purchase derived from a
// transaction record. The transaction signature is the sole identity:
// at most one event may exist per signature.
type PurchaseEvent struct {
	TransactionSignature string
	SeasonID             uint32
	Quantity             uint32
	BuyerAddress         string
	GrossLamports        int64
	Timestamp            time.Time
}
