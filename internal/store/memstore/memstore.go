// Package memstore is an in-memory answer store with the same semantics as
// the SQLite store: keyed upserts, a compare-and-set defect resolution and
// session locking. It backs engine tests and the scenario harness.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	apperrors "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/errors"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/model"
)

// Store holds sessions and answers behind a single mutex. Every method is
// atomic with respect to every other.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
	answers  map[model.AnswerKey]model.Answer
}

// New returns an empty store.
func New() *Store {
	return &Store{
		sessions: map[string]model.Session{},
		answers:  map[model.AnswerKey]model.Answer{},
	}
}

// CreateSession inserts a new session. An existing id is INVALID_STATE.
func (s *Store) CreateSession(_ context.Context, sess model.Session) error {
	if !sess.Module.Valid() {
		return apperrors.Newf(apperrors.CodeValidation, "unknown module kind %q", sess.Module)
	}
	if sess.Status == "" {
		sess.Status = model.SessionInProgress
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[sess.ID]; exists {
		return apperrors.WithMetadata(apperrors.CodeInvalidState,
			fmt.Sprintf("session %q already exists", sess.ID), map[string]string{"session_id": sess.ID})
	}
	s.sessions[sess.ID] = cloneSession(sess)
	return nil
}

// GetSession returns the session with the given id.
func (s *Store) GetSession(_ context.Context, id string) (model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, err := s.session(id)
	if err != nil {
		return model.Session{}, err
	}
	return cloneSession(sess), nil
}

// ListSessions returns every session, oldest first.
func (s *Store) ListSessions(_ context.Context) ([]model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, cloneSession(sess))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// CompleteSession locks an IN_PROGRESS session.
func (s *Store) CompleteSession(_ context.Context, id string, at time.Time) (model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(id)
	if err != nil {
		return model.Session{}, err
	}
	if sess.Locked() {
		return model.Session{}, lockedErr(sess)
	}
	sess.Status = model.SessionCompleted
	completedAt := at
	sess.CompletedAt = &completedAt
	s.sessions[id] = sess
	return cloneSession(sess), nil
}

// UpsertAnswer replaces the answer stored under a.Key. The first row id
// written for a key is kept and any resolution is cleared.
func (s *Store) UpsertAnswer(_ context.Context, a model.Answer) (model.Answer, error) {
	if err := a.Key.Validate(); err != nil {
		return model.Answer{}, err
	}
	if err := a.Validate(); err != nil {
		return model.Answer{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dims, err := s.writable(a.Key)
	if err != nil {
		return model.Answer{}, err
	}
	if existing, ok := s.answers[a.Key]; ok {
		a.ID = existing.ID
	}
	if !dims.Coach {
		a.CoachID = ""
	}
	a.Resolution = nil

	s.answers[a.Key] = a
	return cloneAnswer(a), nil
}

// GetAnswer returns the answer addressed by key.
func (s *Store) GetAnswer(_ context.Context, key model.AnswerKey) (model.Answer, error) {
	if err := key.Validate(); err != nil {
		return model.Answer{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(key.SessionID)
	if err != nil {
		return model.Answer{}, err
	}
	if err := sess.Module.Dimensions().CheckKey(key); err != nil {
		return model.Answer{}, err
	}
	a, err := s.answer(key)
	if err != nil {
		return model.Answer{}, err
	}
	return cloneAnswer(a), nil
}

// ListAnswers returns the session's answers matching f, ordered by area,
// question, compartment and activity type.
func (s *Store) ListAnswers(_ context.Context, f model.AnswerFilter) ([]model.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.session(f.SessionID); err != nil {
		return nil, err
	}

	out := []model.Answer{}
	for _, a := range s.answers {
		if f.Matches(a) {
			out = append(out, cloneAnswer(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.AreaID != b.AreaID {
			return a.AreaID < b.AreaID
		}
		if a.Key.QuestionID != b.Key.QuestionID {
			return a.Key.QuestionID < b.Key.QuestionID
		}
		if a.Key.CompartmentID != b.Key.CompartmentID {
			return a.Key.CompartmentID < b.Key.CompartmentID
		}
		return a.Key.ActivityType < b.Key.ActivityType
	})
	return out, nil
}

// ResolveDefect resolves an open defect. The check and the write happen
// under one lock, so a second resolution observes the first.
func (s *Store) ResolveDefect(_ context.Context, key model.AnswerKey, res model.Resolution) (model.Answer, error) {
	if err := key.Validate(); err != nil {
		return model.Answer{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.writable(key); err != nil {
		return model.Answer{}, err
	}
	a, err := s.answer(key)
	if err != nil {
		return model.Answer{}, err
	}
	meta := map[string]string{"session_id": key.SessionID, "question_id": key.QuestionID}
	if !model.IsDeficiency(a.Outcome) {
		return model.Answer{}, apperrors.WithMetadata(apperrors.CodeInvalidState,
			fmt.Sprintf("answer %s is %s, not a defect", key, a.Outcome.Status()), meta)
	}
	if a.Resolved() {
		return model.Answer{}, apperrors.WithMetadata(apperrors.CodeInvalidState,
			fmt.Sprintf("defect %s is already resolved", key), meta)
	}

	resolution := res
	a.Resolution = &resolution
	s.answers[key] = a
	return cloneAnswer(a), nil
}

func (s *Store) session(id string) (model.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return model.Session{}, apperrors.WithMetadata(apperrors.CodeNotFound,
			fmt.Sprintf("session %q not found", id), map[string]string{"session_id": id})
	}
	return sess, nil
}

func (s *Store) answer(key model.AnswerKey) (model.Answer, error) {
	a, ok := s.answers[key]
	if !ok {
		return model.Answer{}, apperrors.WithMetadata(apperrors.CodeNotFound,
			fmt.Sprintf("answer %s not found", key), map[string]string{
				"session_id":  key.SessionID,
				"question_id": key.QuestionID,
			})
	}
	return a, nil
}

// writable rejects keys of missing or locked sessions and key parts the
// session's module does not record.
func (s *Store) writable(key model.AnswerKey) (model.Dimensions, error) {
	sess, err := s.session(key.SessionID)
	if err != nil {
		return model.Dimensions{}, err
	}
	if sess.Locked() {
		return model.Dimensions{}, lockedErr(sess)
	}
	dims := sess.Module.Dimensions()
	if err := dims.CheckKey(key); err != nil {
		return model.Dimensions{}, err
	}
	return dims, nil
}

func lockedErr(sess model.Session) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidState,
		fmt.Sprintf("session %q is %s", sess.ID, sess.Status), map[string]string{"session_id": sess.ID})
}

func cloneSession(sess model.Session) model.Session {
	if sess.CompletedAt != nil {
		t := *sess.CompletedAt
		sess.CompletedAt = &t
	}
	return sess
}

func cloneAnswer(a model.Answer) model.Answer {
	if a.Resolution != nil {
		r := *a.Resolution
		a.Resolution = &r
	}
	return a
}
