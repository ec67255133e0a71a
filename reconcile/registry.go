package reconcile

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/solotto/solotto-bot/data"
)

// Params configures the purchase-note recognizers.
type Params struct {
	TreasuryAddress     string
	FeeAddress          string
	GrossTicketLamports int64
	// LegacySeasonID is the only season the amount-only recognizer may
	// attribute purchases to. Zero disables it.
	LegacySeasonID uint32
}

// Recognizer attempts to extract a purchase event from one transaction
// record. It returns nil when the record does not match its format.
type Recognizer func(rec *data.TransactionRecord, memos []string, p *Params) *data.PurchaseEvent

// Registry holds the ordered recognizer chain. The order is fixed:
// compact note, verbose note, legacy delimited note, amount-only
// inference. The first recognizer that matches wins and the rest are
// skipped, so a transaction can never be counted twice.
type Registry struct {
	params      Params
	recognizers []Recognizer
}

func NewRegistry(params Params) *Registry {
	return &Registry{
		params: params,
		recognizers: []Recognizer{
			recognizeCompact,
			recognizeVerbose,
			recognizeDelimited,
			recognizeAmountOnly,
		},
	}
}

// Parse runs the record through the recognizer chain and returns the
// first structurally valid purchase event, or nil if no format matches.
func (r *Registry) Parse(rec *data.TransactionRecord) *data.PurchaseEvent {
	if rec == nil {
		return nil
	}

	memos := collectMemos(rec)
	for _, recognize := range r.recognizers {
		if event := recognize(rec, memos, &r.params); event != nil {
			return event
		}
	}

	return nil
}

func collectMemos(rec *data.TransactionRecord) []string {
	memos := make([]string, 0)
	for _, instr := range rec.Instructions {
		if instr.Program == memoProgram && len(instr.Data) > 0 {
			memos = append(memos, string(instr.Data))
		}
	}
	for _, instr := range rec.InnerInstructions {
		if instr.Program == memoProgram && len(instr.Data) > 0 {
			memos = append(memos, string(instr.Data))
		}
	}

	return memos
}

type compactNote struct {
	T string  `json:"t"`
	S *uint32 `json:"s"`
}

// recognizeCompact handles the current note format: {"t":"TIX","s":N}.
// The note carries no quantity; it is inferred from the lamports that
// reached the treasury, floor-divided by the gross ticket price.
func recognizeCompact(rec *data.TransactionRecord, memos []string, p *Params) *data.PurchaseEvent {
	for _, memo := range memos {
		note := compactNote{}
		if err := json.Unmarshal([]byte(memo), &note); err != nil {
			continue
		}
		if note.T != compactNoteTag || note.S == nil {
			continue
		}

		gross := rec.TransferTo(p.TreasuryAddress)
		if p.GrossTicketLamports <= 0 {
			return nil
		}
		quantity := gross / p.GrossTicketLamports
		if quantity <= 0 {
			// note present but no matching payment, let the other
			// recognizers have a look
			return nil
		}

		return &data.PurchaseEvent{
			TransactionSignature: rec.Signature,
			SeasonID:             *note.S,
			Quantity:             uint32(quantity),
			BuyerAddress:         rec.Signer,
			GrossLamports:        gross,
			Timestamp:            rec.BlockTime,
		}
	}

	return nil
}

type verboseNote struct {
	Type          string   `json:"type"`
	SeasonID      uint32   `json:"seasonId"`
	Quantity      uint32   `json:"quantity"`
	Buyer         string   `json:"buyer"`
	TicketNumbers []string `json:"ticketNumbers"`
	Timestamp     int64    `json:"timestamp"`
}

// recognizeVerbose handles the historical JSON format carrying explicit
// fields. The note's buyer must be the transaction's signer, otherwise
// the note cannot be trusted and the record is treated as a non-match.
func recognizeVerbose(rec *data.TransactionRecord, memos []string, p *Params) *data.PurchaseEvent {
	for _, memo := range memos {
		note := verboseNote{}
		if err := json.Unmarshal([]byte(memo), &note); err != nil {
			continue
		}
		if note.Type != verboseNoteType || note.Quantity == 0 {
			continue
		}
		if note.Buyer != rec.Signer {
			return nil
		}

		return &data.PurchaseEvent{
			TransactionSignature: rec.Signature,
			SeasonID:             note.SeasonID,
			Quantity:             note.Quantity,
			BuyerAddress:         note.Buyer,
			GrossLamports:        rec.TransferTo(p.TreasuryAddress),
			Timestamp:            rec.BlockTime,
		}
	}

	return nil
}

// recognizeDelimited handles the oldest note format:
// "SOLOTTO:<version>;season=<N>;qty=<N>;lamports=<N>".
func recognizeDelimited(rec *data.TransactionRecord, memos []string, p *Params) *data.PurchaseEvent {
	for _, memo := range memos {
		if !strings.HasPrefix(memo, delimitedTag+":") {
			continue
		}

		fields := make(map[string]string)
		for _, part := range strings.Split(memo, ";")[1:] {
			kv := strings.SplitN(part, "=", 2)
			if len(kv) != 2 {
				continue
			}
			fields[kv[0]] = kv[1]
		}

		season, err := strconv.ParseUint(fields["season"], 10, 32)
		if err != nil {
			continue
		}
		quantity, err := strconv.ParseUint(fields["qty"], 10, 32)
		if err != nil || quantity == 0 {
			continue
		}
		lamports, err := strconv.ParseInt(fields["lamports"], 10, 64)
		if err != nil || lamports < 0 {
			continue
		}

		return &data.PurchaseEvent{
			TransactionSignature: rec.Signature,
			SeasonID:             uint32(season),
			Quantity:             uint32(quantity),
			BuyerAddress:         rec.Signer,
			GrossLamports:        lamports,
			Timestamp:            rec.BlockTime,
		}
	}

	return nil
}

// recognizeAmountOnly is the last-resort recognizer for the earliest
// purchases, which carried no note at all. It only ever fires for the
// configured legacy season, otherwise plain transfers to the treasury
// would be misread as ticket sales.
func recognizeAmountOnly(rec *data.TransactionRecord, memos []string, p *Params) *data.PurchaseEvent {
	if p.LegacySeasonID == 0 || len(memos) > 0 {
		return nil
	}
	if p.GrossTicketLamports <= 0 {
		return nil
	}

	gross := rec.TransferTo(p.TreasuryAddress)
	if gross < p.GrossTicketLamports {
		return nil
	}

	return &data.PurchaseEvent{
		TransactionSignature: rec.Signature,
		SeasonID:             p.LegacySeasonID,
		Quantity:             uint32(gross / p.GrossTicketLamports),
		BuyerAddress:         rec.Signer,
		GrossLamports:        gross,
		Timestamp:            rec.BlockTime,
	}
}
