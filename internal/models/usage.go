package models

import "time"

// DailyUsage tracks the conversion counter for one local calendar day.
// A read on a stale date is treated as an implicit rollover and the record
// is replaced with a fresh one.
type DailyUsage struct {
	// Date is the local calendar day in YYYY-MM-DD form.
	Date string `json:"date"`

	// Conversions is bounded in [0, limit].
	Conversions int `json:"conversions"`

	// LastReset is the rollover time in epoch milliseconds.
	LastReset int64 `json:"lastReset"`
}

// UsageInfo is the quota summary exposed to the UI.
type UsageInfo struct {
	Used      int       `json:"used"`
	Remaining int       `json:"remaining"`
	Limit     int       `json:"limit"`
	ResetTime time.Time `json:"resetTime"`
}
