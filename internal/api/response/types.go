package response

import "github.com/heartquiz/heartgame-go/internal/model"

// Message is a plain confirmation response
type Message struct {
	Message string `json:"message"`
}

// Login is the response for a successful login
type Login struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// Question is the response for an issued round: the puzzle image under a
// fresh question ID, never the solution
type Question struct {
	QuestionID  string `json:"question_id"`
	ImageBase64 string `json:"image_base64"`
}

// Answer is the verdict for a redeemed round
type Answer struct {
	Correct bool `json:"correct"`
}

// Score is a user's best cumulative score
type Score struct {
	UserID       string `json:"user_id"`
	HighestScore int    `json:"highest_score"`
}

// LeaderboardEntry is one row of the leaderboard
type LeaderboardEntry struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	HighestScore int    `json:"highest_score"`
}

// Leaderboard is the top highest scores
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardFromModel converts leaderboard entries to the wire shape
func LeaderboardFromModel(entries []model.LeaderboardEntry) Leaderboard {
	out := Leaderboard{Entries: make([]LeaderboardEntry, len(entries))}
	for i, e := range entries {
		out.Entries[i] = LeaderboardEntry{
			UserID:       string(e.UserID),
			Username:     e.Username,
			HighestScore: e.HighestScore,
		}
	}
	return out
}
