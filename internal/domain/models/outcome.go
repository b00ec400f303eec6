package models

import "time"

// Cycle outcome statuses.
const (
	CycleSucceeded = "succeeded"
	CycleFailed    = "failed"
)

// CycleOutcome describes the result of one extraction cycle. Published to
// downstream consumers as a fire-and-forget event; delivery is best-effort.
type CycleOutcome struct {
	TradingDate string    `json:"trading_date"`
	ExtractTime time.Time `json:"extract_time"`
	Status      string    `json:"status"`
	TradeCount  int       `json:"trade_count"`
	Report      string    `json:"report"`
	ErrorKind   string    `json:"error_kind,omitempty"`
	Attempts    int       `json:"attempts"`
}
