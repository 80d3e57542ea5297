package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/errors"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/model"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/testutil"
)

func TestCreateSession(t *testing.T) {
	forEachStore(t, func(t *testing.T, e *Engine) {
		ctx := context.Background()

		sess, err := e.CreateSession(ctx, "  COACH-7 ", model.ModuleCAI)
		require.NoError(t, err)
		assert.Equal(t, "id-1", sess.ID)
		assert.Equal(t, "COACH-7", sess.CoachRef)
		assert.Equal(t, model.ModuleCAI, sess.Module)
		assert.Equal(t, model.SessionInProgress, sess.Status)
		assert.True(t, testutil.Epoch.Equal(sess.CreatedAt))
		assert.Nil(t, sess.CompletedAt)

		got, err := e.GetSession(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, sess.CoachRef, got.CoachRef)
		assert.True(t, sess.CreatedAt.Equal(got.CreatedAt))
	})
}

func TestCreateSession_Validation(t *testing.T) {
	e := newTestEngine(t, storeFactories["memstore"](t))

	tests := []struct {
		name     string
		coachRef string
		module   model.ModuleKind
	}{
		{"empty coach", "", model.ModuleAmenity},
		{"blank coach", "   ", model.ModuleAmenity},
		{"unknown module", "C1", model.ModuleKind("PANTRY")},
		{"empty module", "C1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.CreateSession(context.Background(), tt.coachRef, tt.module)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
		})
	}

	sessions, err := e.ListSessions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestCreateSession_DuplicateID(t *testing.T) {
	e := New(testutil.LavatoryCatalog(t), storeFactories["memstore"](t),
		WithClock(testutil.NewDeterministicClock()),
		WithIDGenerator(NewFixedGenerator("s-1", "s-1")),
	)

	_, err := e.CreateSession(context.Background(), "C1", model.ModuleAmenity)
	require.NoError(t, err)

	_, err = e.CreateSession(context.Background(), "C2", model.ModuleAmenity)
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidState(err))
}

func TestListSessions_Ordered(t *testing.T) {
	forEachStore(t, func(t *testing.T, e *Engine) {
		ctx := context.Background()
		first := createSession(t, e, model.ModuleAmenity)
		second := createSession(t, e, model.ModuleCAI)

		got, err := e.ListSessions(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, first.ID, got[0].ID)
		assert.Equal(t, second.ID, got[1].ID)
	})
}

func TestGetSession_NotFound(t *testing.T) {
	forEachStore(t, func(t *testing.T, e *Engine) {
		_, err := e.GetSession(context.Background(), "missing")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

// completeSickline answers every SICKLINE question OK.
func completeSickline(t *testing.T, e *Engine, sessionID string) {
	t.Helper()
	submitOK(t, e, sessionID, "Q1", "Q2", "Q3", "Q10")
	_, err := e.SubmitAnswer(context.Background(), Submission{
		Key:           model.AnswerKey{SessionID: sessionID, QuestionID: "Q11"},
		ObservedValue: f64(300),
	})
	require.NoError(t, err)
}

func TestCompleteSession(t *testing.T) {
	forEachStore(t, func(t *testing.T, e *Engine) {
		ctx := context.Background()
		sess := createSession(t, e, model.ModuleSickline)
		completeSickline(t, e, sess.ID)

		done, err := e.CompleteSession(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, model.SessionCompleted, done.Status)
		require.NotNil(t, done.CompletedAt)
		assert.True(t, done.CompletedAt.After(done.CreatedAt))

		progress, err := e.ComputeSessionProgress(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, model.SessionCompleted, progress.SessionStatus)
		assert.Equal(t, model.ProgressCompleted, progress.Status)

		_, err = e.CompleteSession(ctx, sess.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalidState(err))

		_, err = e.SubmitAnswer(ctx, Submission{
			Key:    model.AnswerKey{SessionID: sess.ID, QuestionID: "Q1"},
			Status: "NA",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalidState(err))
	})
}

func TestCompleteSession_Rejected(t *testing.T) {
	forEachStore(t, func(t *testing.T, e *Engine) {
		ctx := context.Background()

		fresh := createSession(t, e, model.ModuleSickline)
		_, err := e.CompleteSession(ctx, fresh.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalidState(err), "nothing answered")

		withDefect := createSession(t, e, model.ModuleSickline)
		completeSickline(t, e, withDefect.ID)
		submitDefect(t, e, withDefect.ID, "Q3", "Dripping")
		_, err = e.CompleteSession(ctx, withDefect.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalidState(err), "open defect")

		amenity := createSession(t, e, model.ModuleAmenity)
		submitOK(t, e, amenity.ID, "Q1", "Q2", "Q3")
		_, err = e.CompleteSession(ctx, amenity.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalidState(err), "vestibule has nothing to answer and stays PENDING")

		_, err = e.CompleteSession(ctx, "missing")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))

		for _, id := range []string{fresh.ID, withDefect.ID, amenity.ID} {
			sess, err := e.GetSession(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, model.SessionInProgress, sess.Status)
		}
	})
}
