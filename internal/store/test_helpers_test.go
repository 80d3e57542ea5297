package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/model"
)

var testTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// createTestStore creates a new file-backed store for testing.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestSession inserts an IN_PROGRESS session for module m.
func createTestSession(t *testing.T, s *Store, id string, m model.ModuleKind) model.Session {
	t.Helper()
	sess := model.Session{
		ID:        id,
		CoachRef:  "COACH-" + id,
		Module:    m,
		Status:    model.SessionInProgress,
		CreatedAt: testTime,
	}
	if err := s.CreateSession(context.Background(), sess); err != nil {
		t.Fatalf("CreateSession() failed: %v", err)
	}
	return sess
}

// okAnswer creates an OK answer with minimal required fields.
func okAnswer(id string, key model.AnswerKey, areaID string) model.Answer {
	return model.Answer{
		ID:          id,
		Key:         key,
		AreaID:      areaID,
		ItemID:      "item-" + key.QuestionID,
		Outcome:     model.OK{},
		SubmittedAt: testTime,
	}
}

// defectAnswer creates an open DEFICIENCY answer.
func defectAnswer(id string, key model.AnswerKey, areaID string, reasons ...string) model.Answer {
	a := okAnswer(id, key, areaID)
	a.Outcome = model.Deficiency{Reasons: model.MustParseReasons(reasons...)}
	a.BeforePhoto = "before/" + id + ".jpg"
	return a
}
