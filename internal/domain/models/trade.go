package models

import "time"

// Trade is one power trade position for a trading day: an ordered list of
// period volumes, period index 1..N (N is 24 on a normal day, but DST days
// may differ, so nothing here assumes 24).
// Immutable once fetched; lives for a single extraction cycle.
type Trade struct {
	Date    time.Time
	Periods []Period
}

// Period is one hourly slot of a trade. Volume is signed.
type Period struct {
	Index  int
	Volume float64
}
