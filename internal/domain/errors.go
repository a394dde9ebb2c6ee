package domain

import "errors"

var (
	// ErrEmptyQuiz is returned when a session is started with no questions.
	ErrEmptyQuiz = errors.New("quiz has no questions")
	// ErrQuestionInvalid indicates malformed question content (too few options
	// or an out-of-range correct index).
	ErrQuestionInvalid = errors.New("question content is invalid")
	// ErrNoAnswerSelected is returned when advancing without a pending answer.
	ErrNoAnswerSelected = errors.New("no answer selected")
	// ErrOptionOutOfRange indicates a selected option index outside the question's options.
	ErrOptionOutOfRange = errors.New("option index out of range")
	// ErrSessionCompleted is returned on any mutation of a completed session.
	ErrSessionCompleted = errors.New("quiz session already completed")
	// ErrNoPreviousQuestion is returned when navigating back from the first question.
	ErrNoPreviousQuestion = errors.New("no previous question")
	// ErrSessionNotFound is returned when a user acts without an active session.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrTopicNotFound indicates the topic content could not be loaded.
	ErrTopicNotFound = errors.New("topic not found")
	// ErrInvalidEntry indicates a malformed leaderboard entry (blank identity or negative score).
	ErrInvalidEntry = errors.New("invalid leaderboard entry")
)
