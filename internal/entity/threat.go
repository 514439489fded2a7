package entity

// FailedAttemptSummary maps an address to its number of failed attempts.
// Only addresses at or above the flagging threshold are present.
type FailedAttemptSummary map[string]int

// ThreatMapping maps an address to the free-text description scraped from the feed.
type ThreatMapping map[string]string
