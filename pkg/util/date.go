package util

import "time"

// DefaultTradingZone is the IANA zone of the power trading region.
const DefaultTradingZone = "Europe/London"

// LoadTradingZone resolves the trading time zone by IANA name, falling back
// to UTC when the host has no zone database entry for it. The fallback keeps
// the service running on stripped-down hosts; trade dates are then computed
// in UTC.
func LoadTradingZone(name string) (*time.Location, bool) {
	if name == "" {
		name = DefaultTradingZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, false
	}
	return loc, true
}

// TradeDate returns the trading date for a wall-clock instant. The trading
// day begins at 23:00 local time the previous calendar day, so from 23:00
// onward the current trading date is tomorrow's calendar date.
func TradeDate(now time.Time) time.Time {
	d := now
	if now.Hour() >= 23 {
		d = now.AddDate(0, 0, 1)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}
