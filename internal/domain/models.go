package domain

import "time"

// Question is a single multiple-choice question within a topic.
// CorrectOption indexes into Options; content management guarantees
// at least two options per question.
type Question struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correctOption"`
	Explanation   string   `json:"explanation,omitempty"`
}

// Topic groups the questions for one learning unit (phishing, passwords, ...).
type Topic struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// ScoreReport is the one-shot message emitted when a session completes.
// Name rides along because the score store doubles as the leaderboard source.
type ScoreReport struct {
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	TopicID string `json:"topicId"`
	Score   int    `json:"score"`
	Total   int    `json:"total"`
}

// LeaderboardEntry is one player's best score for a topic.
type LeaderboardEntry struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
}

// RankedEntry is a LeaderboardEntry with its dense competition rank.
type RankedEntry struct {
	LeaderboardEntry
	Rank int `json:"rank"`
}

// Board is the display-ready leaderboard for a topic.
type Board struct {
	TopicID   string        `json:"topicId"`
	TopThree  []RankedEntry `json:"topThree"`
	Rest      []RankedEntry `json:"rest"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
