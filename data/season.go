package data

import "time"

// Season mirrors the on-chain season account of the lottery program.
// Lamport amounts stay integral; conversion to SOL or USD happens only
// at presentation boundaries.
type Season struct {
	SeasonID               uint32
	TotalTicketsSold       uint32
	TotalPrizePoolLamports int64
	IsActive               bool
	EndTime                time.Time
	Winner                 string
	WinnerTicketID         string
	Admin                  string
}

// SeasonSnapshot is the reconciled view of a season, produced either
// directly from the structured account or by aggregating transaction
// history. Source tells which path produced it.
type SeasonSnapshot struct {
	Season
	CommissionLamports int64
	Source             SnapshotSource
}

type SnapshotSource int

const (
	// SourceAccount - the structured season account was found and trusted
	SourceAccount SnapshotSource = iota
	// SourceHistory - totals aggregated from scanned transaction records
	SourceHistory
	// SourceCache - totals taken from the local ticket cache
	SourceCache
	// SourceDefault - reconciliation failed, zero-state placeholder
	SourceDefault
)
