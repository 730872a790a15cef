package domain

import "time"

// Quiz is a user-authored quiz.
type Quiz struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Questions   []Question
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Question belongs to a quiz. CorrectIndex points into Options and is only
// exposed to the quiz owner; takers receive questions without it.
type Question struct {
	ID           string
	QuizID       string
	Position     int
	Text         string
	Options      []string
	CorrectIndex int
	Explanation  string
}

// Answer is a taker's selection for one question.
type Answer struct {
	QuestionID    string `json:"questionId"`
	SelectedIndex int    `json:"selectedOptionIndex"`
}

// Attempt records one taker's scored run through a quiz.
type Attempt struct {
	ID        string
	QuizID    string
	UserID    string
	Answers   []Answer
	Score     int
	Total     int
	CreatedAt time.Time

	// QuizTitle is populated on history listings so callers don't have to
	// fetch each quiz separately.
	QuizTitle string
}

// LeaderboardEntry is one row of a quiz's leaderboard.
type LeaderboardEntry struct {
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Score     int       `json:"score"`
	Total     int       `json:"total"`
	AttemptAt time.Time `json:"attemptAt"`
}

// QuestionResult is the per-question breakdown of a finished attempt.
type QuestionResult struct {
	QuestionID    string   `json:"questionId"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectIndex  int      `json:"correctIndex"`
	SelectedIndex int      `json:"selectedIndex"` // -1 when unanswered
	Correct       bool     `json:"correct"`
	Explanation   string   `json:"explanation,omitempty"`
}
