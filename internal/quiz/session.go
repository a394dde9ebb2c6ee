// Package quiz implements the per-user quiz progression state machine:
// one ordered pass over a topic's questions with backward navigation,
// grade-at-first-advance scoring, and a one-shot score report on completion.
package quiz

import (
	"fmt"

	"cyberquiz-service/internal/domain"
)

// unanswered is the sentinel for a question slot the user has not filled yet.
const unanswered = -1

// State is the lifecycle phase of a Session.
type State int

const (
	InProgress State = iota
	Completed
)

func (s State) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Session is one user's attempt at a topic's quiz. It is a plain value
// mutated only through its transition methods; it performs no I/O and is
// owned exclusively by the user session that created it.
type Session struct {
	userID  string
	name    string
	topicID string

	questions []domain.Question
	current   int
	answers   []int
	graded    []bool
	score     int
	state     State
	reported  bool
}

// Start creates a session positioned at the first question.
// The question set is validated up front so malformed content fails loudly
// here rather than mid-quiz.
func Start(userID, name, topicID string, questions []domain.Question) (*Session, error) {
	if len(questions) == 0 {
		return nil, domain.ErrEmptyQuiz
	}
	for i, q := range questions {
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("question %d (%s) has %d options: %w", i, q.ID, len(q.Options), domain.ErrQuestionInvalid)
		}
		if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
			return nil, fmt.Errorf("question %d (%s) correct index %d: %w", i, q.ID, q.CorrectOption, domain.ErrQuestionInvalid)
		}
	}

	answers := make([]int, len(questions))
	for i := range answers {
		answers[i] = unanswered
	}
	return &Session{
		userID:    userID,
		name:      name,
		topicID:   topicID,
		questions: questions,
		answers:   answers,
		graded:    make([]bool, len(questions)),
	}, nil
}

// SelectAnswer records a pending choice for the current question without
// advancing. Re-selecting before the first advance overwrites the pending
// choice and is what gets graded.
func (s *Session) SelectAnswer(option int) error {
	if s.state == Completed {
		return domain.ErrSessionCompleted
	}
	if option < 0 || option >= len(s.questions[s.current].Options) {
		return fmt.Errorf("option %d of %d: %w", option, len(s.questions[s.current].Options), domain.ErrOptionOutOfRange)
	}
	s.answers[s.current] = option
	return nil
}

// ConfirmAndAdvance grades the current question if it has never been graded,
// then moves forward. On the last question it transitions to Completed and
// returns the score report exactly once; every other call returns nil.
//
// Grading happens at most once per question index. Returning to an earlier
// question and changing the answer never changes the score retroactively,
// and advancing past an already-graded question does not re-grade it.
func (s *Session) ConfirmAndAdvance() (*domain.ScoreReport, error) {
	if s.state == Completed {
		return nil, domain.ErrSessionCompleted
	}
	if s.answers[s.current] == unanswered {
		return nil, domain.ErrNoAnswerSelected
	}

	if !s.graded[s.current] {
		s.graded[s.current] = true
		if s.answers[s.current] == s.questions[s.current].CorrectOption {
			s.score++
		}
	}

	if s.current == len(s.questions)-1 {
		s.state = Completed
		if s.reported {
			return nil, nil
		}
		s.reported = true
		return &domain.ScoreReport{
			UserID:  s.userID,
			Name:    s.name,
			TopicID: s.topicID,
			Score:   s.score,
			Total:   len(s.questions),
		}, nil
	}

	s.current++
	return nil, nil
}

// GoToPrevious steps back one question. The previously recorded answer stays
// in place and is reported by Selected for display; score and answers are
// untouched.
func (s *Session) GoToPrevious() error {
	if s.state == Completed {
		return domain.ErrSessionCompleted
	}
	if s.current == 0 {
		return domain.ErrNoPreviousQuestion
	}
	s.current--
	return nil
}

// CurrentQuestion returns the active question.
func (s *Session) CurrentQuestion() domain.Question {
	return s.questions[s.current]
}

// CurrentIndex returns the zero-based position of the active question.
func (s *Session) CurrentIndex() int { return s.current }

// Total returns the number of questions in the session.
func (s *Session) Total() int { return len(s.questions) }

// Score returns the cumulative score. It always equals the count of graded
// questions whose graded-time answer matched the correct option.
func (s *Session) Score() int { return s.score }

// State returns the session lifecycle phase.
func (s *Session) State() State { return s.state }

// UserID returns the session owner.
func (s *Session) UserID() string { return s.userID }

// TopicID returns the topic this session is attempting.
func (s *Session) TopicID() string { return s.topicID }

// Selected returns the pending/recorded answer for the current question,
// or -1 when none has been chosen.
func (s *Session) Selected() int {
	return s.answers[s.current]
}

// Answered reports whether the current question has a pending answer,
// i.e. whether the host UI should enable its "next" control.
func (s *Session) Answered() bool {
	return s.answers[s.current] != unanswered
}

// NavigationLocked is the guard predicate the host UI consults before
// permitting navigation away: an in-progress session with at least one
// recorded answer represents unsaved work.
func (s *Session) NavigationLocked() bool {
	if s.state != InProgress {
		return false
	}
	for _, a := range s.answers {
		if a != unanswered {
			return true
		}
	}
	return false
}
