package price

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/solotto/solotto-bot/utils"
)

var log = logger.GetOrCreate("price")

const (
	cacheDuration = 5 * time.Minute

	// used when no quote was ever fetched successfully
	fallbackSolPriceUSD = 100
)

// Client fetches the SOL/USD spot price, keeping the last quote for a
// few minutes so callers can ask freely.
type Client struct {
	endpoint       string
	ticketPriceUSD float64

	mut         sync.Mutex
	solPriceUSD float64
	lastUpdate  time.Time
}

type priceResponse struct {
	Solana struct {
		USD float64 `json:"usd"`
	} `json:"solana"`
}

// NewClient - creates a new price Client object
func NewClient(endpoint string, ticketPriceUSD float64) *Client {
	return &Client{
		endpoint:       endpoint,
		ticketPriceUSD: ticketPriceUSD,
	}
}

// GetSolPriceUSD returns the cached or freshly fetched SOL price. A
// failed fetch falls back to the last known quote, never to an error -
// prices are display-only and must not block anything.
func (c *Client) GetSolPriceUSD() float64 {
	c.mut.Lock()
	defer c.mut.Unlock()

	if c.solPriceUSD > 0 && time.Since(c.lastUpdate) < cacheDuration {
		return c.solPriceUSD
	}

	bytes, err := utils.GetHTTP(c.endpoint)
	if err != nil {
		log.Warn("can not fetch SOL price", "error", err)
		return c.lastKnown()
	}

	res := priceResponse{}
	if err = json.Unmarshal(bytes, &res); err != nil || res.Solana.USD <= 0 {
		log.Warn("invalid SOL price response", "error", err)
		return c.lastKnown()
	}

	c.solPriceUSD = res.Solana.USD
	c.lastUpdate = time.Now()

	return c.solPriceUSD
}

// GetTicketPriceSOL converts the configured USD ticket price at the
// current quote.
func (c *Client) GetTicketPriceSOL() float64 {
	return c.ticketPriceUSD / c.GetSolPriceUSD()
}

func (c *Client) lastKnown() float64 {
	if c.solPriceUSD > 0 {
		return c.solPriceUSD
	}

	return fallbackSolPriceUSD
}

func FormatSOL(amount float64) string {
	return fmt.Sprintf("%.4f", amount)
}

func FormatUSD(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
