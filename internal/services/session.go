package services

import (
	"errors"
	"sync"
)

var (
	// ErrNoSession means the user never started a session (or the process
	// restarted; sessions are not persisted).
	ErrNoSession = errors.New("no active session for user")
	// ErrSessionComplete means every question has already been answered.
	ErrSessionComplete = errors.New("interview already completed")
	// ErrQuestionMismatch means the submitted answer does not belong to
	// the current question, e.g. a concurrent duplicate submission.
	ErrQuestionMismatch = errors.New("answer does not match the current question")
)

// AnswerRecord is one answered question with its derived evaluation.
type AnswerRecord struct {
	Question      string
	Answer        string
	Feedback      string
	CorrectAnswer string
}

// Session is live interview state for one user: a fixed question list, a
// cursor, and the answers so far. Invariant: 0 <= Index <= len(Questions);
// Index == len(Questions) signals completion.
type Session struct {
	Questions []string
	Index     int
	Answers   []AnswerRecord
}

// SessionStore tracks in-memory interview sessions keyed by user. All
// methods serialize read-modify-write on the shared map, so concurrent
// submissions for one user cannot double-advance the cursor.
type SessionStore interface {
	Start(user string, questions []string)
	CurrentQuestion(user string) (string, error)
	RecordAnswer(user string, rec AnswerRecord) (next string, done bool, err error)
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionStore() SessionStore {
	return &sessionStore{
		sessions: make(map[string]*Session),
	}
}

// Start implements SessionStore. An existing session for the user is
// replaced; earlier persisted records are unaffected.
func (s *sessionStore) Start(user string, questions []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[user] = &Session{
		Questions: questions,
	}
}

// CurrentQuestion implements SessionStore.
func (s *sessionStore) CurrentQuestion(user string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[user]
	if !ok {
		return "", ErrNoSession
	}
	if session.Index >= len(session.Questions) {
		return "", ErrSessionComplete
	}
	return session.Questions[session.Index], nil
}

// RecordAnswer implements SessionStore. The record's question must still be
// the current one; a stale submission is rejected instead of advancing the
// cursor twice.
func (s *sessionStore) RecordAnswer(user string, rec AnswerRecord) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[user]
	if !ok {
		return "", false, ErrNoSession
	}
	if session.Index >= len(session.Questions) {
		return "", false, ErrSessionComplete
	}
	if session.Questions[session.Index] != rec.Question {
		return "", false, ErrQuestionMismatch
	}

	session.Answers = append(session.Answers, rec)
	session.Index++

	if session.Index < len(session.Questions) {
		return session.Questions[session.Index], false, nil
	}
	return "", true, nil
}
