package reconcile

import "errors"

const (
	// memoProgram is the SPL memo program; purchase notes ride on its
	// instructions.
	memoProgram = "MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr"

	compactNoteTag  = "TIX"
	verboseNoteType = "TICKET_PURCHASE"
	delimitedTag    = "SOLOTTO"
)

// ErrSeasonNotFound is returned by Ledger implementations when no
// structured season account exists for the requested id.
var ErrSeasonNotFound = errors.New("season account not found")
