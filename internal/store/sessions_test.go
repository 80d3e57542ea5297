package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/errors"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/model"
)

func TestCreateSession_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	want := createTestSession(t, s, "s1", model.ModuleCAI)

	got, err := s.GetSession(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCreateSession_Duplicate(t *testing.T) {
	s := createTestStore(t)
	createTestSession(t, s, "s1", model.ModuleAmenity)

	err := s.CreateSession(context.Background(), model.Session{ID: "s1", Module: model.ModuleCAI, CreatedAt: testTime})
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidState(err))

	got, err := s.GetSession(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, model.ModuleAmenity, got.Module, "existing session must not be overwritten")
}

func TestCreateSession_UnknownModule(t *testing.T) {
	s := createTestStore(t)

	err := s.CreateSession(context.Background(), model.Session{ID: "s1", Module: "ROOF", CreatedAt: testTime})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestGetSession_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.GetSession(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListSessions(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	sessions, err := s.ListSessions(ctx)
	require.NoError(t, err)
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)

	createTestSession(t, s, "b", model.ModuleAmenity)
	createTestSession(t, s, "a", model.ModuleSickline)

	sessions, err = s.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "a", sessions[0].ID)
	assert.Equal(t, "b", sessions[1].ID)
}

func TestCompleteSession(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestSession(t, s, "s1", model.ModuleAmenity)

	at := testTime.Add(90 * time.Minute)
	sess, err := s.CompleteSession(ctx, "s1", at)
	require.NoError(t, err)
	assert.Equal(t, model.SessionCompleted, sess.Status)
	require.NotNil(t, sess.CompletedAt)
	assert.True(t, at.Equal(*sess.CompletedAt))

	_, err = s.CompleteSession(ctx, "s1", at)
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidState(err))

	_, err = s.CompleteSession(ctx, "missing", at)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCompletedSession_RejectsWrites(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestSession(t, s, "s1", model.ModuleAmenity)

	key := model.AnswerKey{SessionID: "s1", QuestionID: "Q1"}
	_, err := s.UpsertAnswer(ctx, defectAnswer("a1", key, "lavatory", "Cracked"))
	require.NoError(t, err)

	_, err = s.CompleteSession(ctx, "s1", testTime)
	require.NoError(t, err)

	_, err = s.UpsertAnswer(ctx, okAnswer("a2", key, "lavatory"))
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidState(err))

	_, err = s.ResolveDefect(ctx, key, model.Resolution{AfterPhoto: "after.jpg", ResolvedAt: testTime})
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidState(err))

	got, err := s.GetAnswer(ctx, key)
	require.NoError(t, err)
	assert.True(t, got.PendingDefect(), "locked session must keep its answers unchanged")
}
