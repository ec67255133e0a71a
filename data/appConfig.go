package data

// AppConfig holds the application configuration read from config.json
type AppConfig struct {
	Bot struct {
		Token   string `json:"token"`
		Owner   int64  `json:"owner"`
		Group   string `json:"group"`
		GroupID int64  `json:"groupID"`
	} `json:"bot"`
	Seedphrase string `json:"seed"`
	Lottery    struct {
		ProgramID           string  `json:"programId"`
		TreasuryAddress     string  `json:"treasuryAddress"`
		FeeAddress          string  `json:"feeAddress"`
		CurrentSeasonID     uint32  `json:"currentSeasonId"`
		LegacySeasonID      uint32  `json:"legacySeasonId"`
		TicketPriceUSD      float64 `json:"ticketPriceUsd"`
		GrossTicketLamports int64   `json:"grossTicketLamports"`
		CommissionPercent   int64   `json:"commissionPercent"`
	} `json:"lottery"`
	Network struct {
		Endpoint            string `json:"endpoint"`
		PriceEndpoint       string `json:"priceEndpoint"`
		ExplorerTransaction string `json:"explorerTransaction"`
		ExplorerAccount     string `json:"explorerAccount"`
	} `json:"network"`
	CachePath string `json:"cachePath"`
}
