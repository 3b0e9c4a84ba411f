package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{"detail": err.Error()}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case MessageResult:
		fmt.Println(v.Message)
	case LoginResult:
		fmt.Printf("%s (user_id: %s)\n", v.Message, v.UserID)
	case QuestionResult:
		fmt.Printf("Question: %s\n", v.QuestionID)
		fmt.Printf("Image (base64, %d bytes)\n", len(v.ImageBase64))
	case AnswerResult:
		if v.Correct {
			fmt.Println("Correct!")
		} else {
			fmt.Println("Incorrect.")
		}
	case ScoreResult:
		fmt.Printf("Highest score for %s: %d\n", v.UserID, v.HighestScore)
	case LeaderboardResult:
		for i, e := range v.Entries {
			fmt.Printf("%2d. %-20s %d\n", i+1, e.Username, e.HighestScore)
		}
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// MessageResult is a plain confirmation response
type MessageResult struct {
	Message string `json:"message"`
}

// LoginResult is the login response
type LoginResult struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// QuestionResult is an issued round
type QuestionResult struct {
	QuestionID  string `json:"question_id"`
	ImageBase64 string `json:"image_base64"`
}

// AnswerResult is a round verdict
type AnswerResult struct {
	Correct bool `json:"correct"`
}

// ScoreResult is a user's highest score
type ScoreResult struct {
	UserID       string `json:"user_id"`
	HighestScore int    `json:"highest_score"`
}

// LeaderboardResult is the leaderboard response
type LeaderboardResult struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardEntry is one leaderboard row
type LeaderboardEntry struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	HighestScore int    `json:"highest_score"`
}

// HealthResult is the health check response
type HealthResult struct {
	Status string `json:"status"`
}
