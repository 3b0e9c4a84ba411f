package model

import "time"

// ScoreRecord is one append-only score event for a user
type ScoreRecord struct {
	UserID     UserID
	Delta      int // always >= 0
	OccurredAt time.Time
}

// UserAggregate is the folded view of a user's score records.
// HighestScore is the historical maximum of the running cumulative total,
// so it never decreases even if future rules subtract points.
type UserAggregate struct {
	UserID       UserID
	TotalScore   int
	HighestScore int
	UpdatedAt    time.Time
}

// LeaderboardEntry pairs an aggregate with the owning username
type LeaderboardEntry struct {
	UserID       UserID
	Username     string
	HighestScore int
}
