package entity

import "time"

// RunReport summarizes a single pipeline run.
type RunReport struct {
	StartedAt        time.Time
	FinishedAt       time.Time
	RecordsParsed    int
	FailedAttempts   int // every record with a failed status, before thresholding
	FlaggedAddresses int
	ThreatsLoaded    int
	Matches          int
	FeedDegraded     bool // feed fetch failed and an empty mapping was used
	WriteErrors      int
}
