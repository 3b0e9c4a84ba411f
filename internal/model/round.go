package model

import "time"

// RoundID uniquely identifies a live game round
type RoundID string

// RoundState tracks the lifecycle of a round
type RoundState string

const (
	// RoundStateIssued means the round has been handed to a client and may be redeemed
	RoundStateIssued RoundState = "issued"
	// RoundStateAnswered is terminal: the single submission has been consumed
	RoundStateAnswered RoundState = "answered"
	// RoundStateExpired is terminal: the TTL passed before redemption
	RoundStateExpired RoundState = "expired"
)

// Round is a single-use challenge. The solution never leaves the server;
// a round moves from issued to a terminal state at most once.
type Round struct {
	ID        RoundID
	Solution  string
	State     RoundState
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Puzzle is one challenge/solution pair from the external puzzle source
type Puzzle struct {
	// ImageBase64 is the challenge image as handed to the client
	ImageBase64 string
	// Solution is the expected answer (server-side only)
	Solution string
}
