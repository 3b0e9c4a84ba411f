package request

// AnswerRequest is the request body for submitting a round answer.
// UserID is optional: anonymous players get a verdict but no score.
type AnswerRequest struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
	UserID     string `json:"user_id,omitempty"`
}
