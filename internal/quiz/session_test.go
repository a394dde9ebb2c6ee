package quiz_test

import (
	"errors"
	"testing"

	"cyberquiz-service/internal/domain"
	"cyberquiz-service/internal/quiz"
)

func TestStartRejectsEmptyQuiz(t *testing.T) {
	session, err := quiz.Start("u1", "Alice", "phishing-basics", nil)
	if !errors.Is(err, domain.ErrEmptyQuiz) {
		t.Fatalf("expected ErrEmptyQuiz, got %v", err)
	}
	if session != nil {
		t.Fatalf("expected no session, got %+v", session)
	}
}

func TestStartRejectsMalformedQuestions(t *testing.T) {
	oneOption := []domain.Question{{ID: "q1", Text: "?", Options: []string{"only"}, CorrectOption: 0}}
	if _, err := quiz.Start("u1", "Alice", "t", oneOption); !errors.Is(err, domain.ErrQuestionInvalid) {
		t.Fatalf("expected ErrQuestionInvalid for one option, got %v", err)
	}

	badIndex := []domain.Question{{ID: "q1", Text: "?", Options: []string{"a", "b"}, CorrectOption: 2}}
	if _, err := quiz.Start("u1", "Alice", "t", badIndex); !errors.Is(err, domain.ErrQuestionInvalid) {
		t.Fatalf("expected ErrQuestionInvalid for bad index, got %v", err)
	}
}

func TestPerfectRunReportsOnce(t *testing.T) {
	session := mustStart(t, threeQuestions())

	var report *domain.ScoreReport
	for i := 0; i < 3; i++ {
		if err := session.SelectAnswer(1); err != nil {
			t.Fatalf("select q%d: %v", i, err)
		}
		r, err := session.ConfirmAndAdvance()
		if err != nil {
			t.Fatalf("advance q%d: %v", i, err)
		}
		if i < 2 && r != nil {
			t.Fatalf("unexpected report before last question: %+v", r)
		}
		if i == 2 {
			report = r
		}
	}

	if session.State() != quiz.Completed {
		t.Fatalf("expected completed, got %v", session.State())
	}
	if session.Score() != 3 {
		t.Fatalf("expected score 3, got %d", session.Score())
	}
	if report == nil {
		t.Fatalf("expected a score report on the terminal transition")
	}
	if report.Score != 3 || report.Total != 3 || report.TopicID != "phishing-basics" || report.UserID != "u1" {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestAdvanceRequiresPendingAnswer(t *testing.T) {
	session := mustStart(t, threeQuestions())

	if _, err := session.ConfirmAndAdvance(); !errors.Is(err, domain.ErrNoAnswerSelected) {
		t.Fatalf("expected ErrNoAnswerSelected, got %v", err)
	}
	if session.CurrentIndex() != 0 {
		t.Fatalf("failed advance must not move, index=%d", session.CurrentIndex())
	}
}

func TestSelectValidatesOptionRange(t *testing.T) {
	session := mustStart(t, threeQuestions())

	if err := session.SelectAnswer(3); !errors.Is(err, domain.ErrOptionOutOfRange) {
		t.Fatalf("expected ErrOptionOutOfRange, got %v", err)
	}
	if err := session.SelectAnswer(-1); !errors.Is(err, domain.ErrOptionOutOfRange) {
		t.Fatalf("expected ErrOptionOutOfRange for negative, got %v", err)
	}
	if session.Answered() {
		t.Fatalf("rejected selections must not be recorded")
	}
}

func TestReselectBeforeAdvanceGradesFinalChoice(t *testing.T) {
	session := mustStart(t, threeQuestions())

	// Wrong pick, corrected before the first advance: the corrected pick grades.
	if err := session.SelectAnswer(0); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := session.SelectAnswer(1); err != nil {
		t.Fatalf("reselect: %v", err)
	}
	if _, err := session.ConfirmAndAdvance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if session.Score() != 1 {
		t.Fatalf("expected score 1 after corrected answer, got %d", session.Score())
	}
}

func TestChangeAfterAdvanceDoesNotRegrade(t *testing.T) {
	questions := []domain.Question{
		{ID: "q1", Text: "first", Options: []string{"right", "wrong"}, CorrectOption: 0},
		{ID: "q2", Text: "second", Options: []string{"right", "wrong"}, CorrectOption: 0},
	}
	session := mustStart(t, questions)

	if err := session.SelectAnswer(0); err != nil { // correct
		t.Fatalf("select q1: %v", err)
	}
	if _, err := session.ConfirmAndAdvance(); err != nil {
		t.Fatalf("advance past q1: %v", err)
	}
	if err := session.SelectAnswer(1); err != nil { // wrong
		t.Fatalf("select q2: %v", err)
	}
	if _, err := session.ConfirmAndAdvance(); err != nil {
		t.Fatalf("advance past q2: %v", err)
	}
	if session.State() != quiz.Completed {
		t.Fatalf("expected completed")
	}
	if session.Score() != 1 {
		t.Fatalf("expected score 1, got %d", session.Score())
	}
}

func TestRevisitKeepsFirstAdvanceGrade(t *testing.T) {
	questions := []domain.Question{
		{ID: "q1", Text: "first", Options: []string{"right", "wrong"}, CorrectOption: 0},
		{ID: "q2", Text: "second", Options: []string{"right", "wrong"}, CorrectOption: 0},
		{ID: "q3", Text: "third", Options: []string{"right", "wrong"}, CorrectOption: 0},
	}
	session := mustStart(t, questions)

	if err := session.SelectAnswer(0); err != nil { // q1 correct
		t.Fatalf("select q1: %v", err)
	}
	if _, err := session.ConfirmAndAdvance(); err != nil {
		t.Fatalf("advance q1: %v", err)
	}

	// Back to q1, flip to the wrong option; the original grade must stand.
	if err := session.GoToPrevious(); err != nil {
		t.Fatalf("previous: %v", err)
	}
	if session.Selected() != 0 {
		t.Fatalf("expected restored selection 0, got %d", session.Selected())
	}
	if err := session.SelectAnswer(1); err != nil {
		t.Fatalf("change q1: %v", err)
	}
	if session.Score() != 1 {
		t.Fatalf("score must not change on revisit, got %d", session.Score())
	}

	// Advancing past the already-graded q1 must not re-grade it either.
	if _, err := session.ConfirmAndAdvance(); err != nil {
		t.Fatalf("re-advance q1: %v", err)
	}
	if session.Score() != 1 {
		t.Fatalf("re-advance must not re-grade, got score %d", session.Score())
	}
	if session.CurrentIndex() != 1 {
		t.Fatalf("expected to be back on q2, index=%d", session.CurrentIndex())
	}
}

func TestScoreStaysWithinBounds(t *testing.T) {
	questions := threeQuestions()
	session := mustStart(t, questions)

	picks := []int{1, 0, 1}
	for _, p := range picks {
		if got := session.Score(); got < 0 || got > len(questions) {
			t.Fatalf("score %d out of bounds", got)
		}
		if err := session.SelectAnswer(p); err != nil {
			t.Fatalf("select: %v", err)
		}
		if _, err := session.ConfirmAndAdvance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	if got := session.Score(); got < 0 || got > len(questions) {
		t.Fatalf("final score %d out of bounds", got)
	}
	if session.Score() != 2 {
		t.Fatalf("expected 2 correct, got %d", session.Score())
	}
}

func TestCompletedSessionIsTerminal(t *testing.T) {
	session := mustStart(t, threeQuestions())
	for i := 0; i < 3; i++ {
		if err := session.SelectAnswer(1); err != nil {
			t.Fatalf("select: %v", err)
		}
		if _, err := session.ConfirmAndAdvance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}

	if err := session.SelectAnswer(0); !errors.Is(err, domain.ErrSessionCompleted) {
		t.Fatalf("expected ErrSessionCompleted on select, got %v", err)
	}
	if err := session.GoToPrevious(); !errors.Is(err, domain.ErrSessionCompleted) {
		t.Fatalf("expected ErrSessionCompleted on previous, got %v", err)
	}
	report, err := session.ConfirmAndAdvance()
	if !errors.Is(err, domain.ErrSessionCompleted) {
		t.Fatalf("expected ErrSessionCompleted on advance, got %v", err)
	}
	if report != nil {
		t.Fatalf("a second report must never be emitted, got %+v", report)
	}
}

func TestPreviousFromFirstQuestionFails(t *testing.T) {
	session := mustStart(t, threeQuestions())
	if err := session.GoToPrevious(); !errors.Is(err, domain.ErrNoPreviousQuestion) {
		t.Fatalf("expected ErrNoPreviousQuestion, got %v", err)
	}
}

func TestNavigationGuard(t *testing.T) {
	session := mustStart(t, threeQuestions())
	if session.NavigationLocked() {
		t.Fatalf("fresh session must not lock navigation")
	}
	if err := session.SelectAnswer(1); err != nil {
		t.Fatalf("select: %v", err)
	}
	if !session.NavigationLocked() {
		t.Fatalf("pending answer must lock navigation")
	}
	for i := 0; i < 3; i++ {
		_ = session.SelectAnswer(1)
		if _, err := session.ConfirmAndAdvance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	if session.NavigationLocked() {
		t.Fatalf("completed session must not lock navigation")
	}
}

func mustStart(t *testing.T, questions []domain.Question) *quiz.Session {
	t.Helper()
	session, err := quiz.Start("u1", "Alice", "phishing-basics", questions)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	return session
}

func threeQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:            "q1",
			Text:          "Which link is safe to click?",
			Options:       []string{"bank-login.example.ru", "www.yourbank.com", "yourbank.secure-pay.co"},
			CorrectOption: 1,
			Explanation:   "Check the registered domain, not the prefix.",
		},
		{
			ID:            "q2",
			Text:          "An email urges you to act within 10 minutes. What is this?",
			Options:       []string{"Good customer service", "A pressure tactic", "A calendar reminder"},
			CorrectOption: 1,
		},
		{
			ID:            "q3",
			Text:          "Who should you forward a suspicious email to?",
			Options:       []string{"All colleagues", "Your security team", "The sender"},
			CorrectOption: 1,
		},
	}
}
