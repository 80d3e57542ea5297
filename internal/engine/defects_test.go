package engine

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/errors"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/model"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/testutil"
)

func TestResolveDefect_StampsResolution(t *testing.T) {
	forEachStore(t, func(t *testing.T, e *Engine) {
		ctx := context.Background()
		sess := createSession(t, e, model.ModuleAmenity)
		defect := submitDefect(t, e, sess.ID, "Q2", "Cracked")

		got, err := e.ResolveDefect(ctx, defect.Key, "  after/Q2.jpg ", "  ")
		require.NoError(t, err)

		require.NotNil(t, got.Resolution)
		assert.Equal(t, "after/Q2.jpg", got.Resolution.AfterPhoto)
		assert.Empty(t, got.Resolution.Remark, "remark is optional")
		assert.True(t, got.Resolution.ResolvedAt.After(defect.SubmittedAt))
		assert.Equal(t, defect.ID, got.ID)
		assert.Equal(t, []string{"Cracked"}, model.ReasonsOf(got.Outcome).Values())
		assert.False(t, got.PendingDefect())
	})
}

func TestResolveDefect_Errors(t *testing.T) {
	forEachStore(t, func(t *testing.T, e *Engine) {
		ctx := context.Background()
		sess := createSession(t, e, model.ModuleAmenity)
		submitOK(t, e, sess.ID, "Q1")
		defect := submitDefect(t, e, sess.ID, "Q3", "Dripping")

		tests := []struct {
			name       string
			key        model.AnswerKey
			afterPhoto string
			check      func(error) bool
		}{
			{"missing after photo", defect.Key, "", apperrors.IsValidation},
			{"blank after photo", defect.Key, "   ", apperrors.IsValidation},
			{"missing question id", model.AnswerKey{SessionID: sess.ID}, "after.jpg", apperrors.IsValidation},
			{"unknown session", model.AnswerKey{SessionID: "nope", QuestionID: "Q3"}, "after.jpg", apperrors.IsNotFound},
			{"unanswered question", model.AnswerKey{SessionID: sess.ID, QuestionID: "Q2"}, "after.jpg", apperrors.IsNotFound},
			{"not a defect", model.AnswerKey{SessionID: sess.ID, QuestionID: "Q1"}, "after.jpg", apperrors.IsInvalidState},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := e.ResolveDefect(ctx, tt.key, tt.afterPhoto, "remark")
				require.Error(t, err)
				assert.True(t, tt.check(err), "unexpected error code %s: %v", apperrors.CodeOf(err), err)
			})
		}

		// None of the rejected calls touched the defect.
		n, err := e.CountPendingDefects(ctx, sess.ID, "")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestResolveDefect_ResubmissionReopens(t *testing.T) {
	forEachStore(t, func(t *testing.T, e *Engine) {
		ctx := context.Background()
		sess := createSession(t, e, model.ModuleAmenity)
		defect := submitDefect(t, e, sess.ID, "Q3", "Dripping")

		_, err := e.ResolveDefect(ctx, defect.Key, "after.jpg", "")
		require.NoError(t, err)

		again := submitDefect(t, e, sess.ID, "Q3", "Dripping")
		assert.Nil(t, again.Resolution)
		assert.True(t, again.PendingDefect())

		n, err := e.CountPendingDefects(ctx, sess.ID, "lavatory")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestResolveDefect_ConcurrentResolutionsOneWins(t *testing.T) {
	forEachStore(t, func(t *testing.T, e *Engine) {
		ctx := context.Background()
		sess := createSession(t, e, model.ModuleCAI)
		defect := submitDefect(t, e, sess.ID, "Q10", "Loose")

		const workers = 8
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
			rejected  int
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := e.ResolveDefect(ctx, defect.Key, "after.jpg", "")
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					successes++
				case apperrors.IsInvalidState(err):
					rejected++
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, successes)
		assert.Equal(t, workers-1, rejected)
	})
}

func TestResolveDefect_LockedSession(t *testing.T) {
	forEachStore(t, func(t *testing.T, e *Engine) {
		ctx := context.Background()
		sess := createSession(t, e, model.ModuleSickline)
		defect := submitDefect(t, e, sess.ID, "Q10", "Loose")
		submitOK(t, e, sess.ID, "Q1", "Q2", "Q3")
		_, err := e.SubmitAnswer(ctx, Submission{
			Key:           model.AnswerKey{SessionID: sess.ID, QuestionID: "Q11"},
			ObservedValue: f64(300),
		})
		require.NoError(t, err)

		_, err = e.ResolveDefect(ctx, defect.Key, "after.jpg", "")
		require.NoError(t, err)
		_, err = e.CompleteSession(ctx, sess.ID)
		require.NoError(t, err)

		// Reopen is impossible once locked.
		_, err = e.SubmitAnswer(ctx, Submission{
			Key:         defect.Key,
			Status:      "DEFICIENCY",
			Reasons:     []string{"Loose"},
			BeforePhoto: "b.jpg",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalidState(err))
	})
}

func TestListPendingDefects(t *testing.T) {
	forEachStore(t, func(t *testing.T, e *Engine) {
		ctx := context.Background()
		sess := createSession(t, e, model.ModuleCAI)

		submitDefect(t, e, sess.ID, "Q10", "Loose")
		submitDefect(t, e, sess.ID, "Q3", "Dripping")
		_, err := e.SubmitAnswer(ctx, Submission{
			Key:         model.AnswerKey{SessionID: sess.ID, QuestionID: "Q2", ActivityType: "Minor"},
			Status:      "DEFICIENCY",
			Reasons:     []string{"Leaking"},
			BeforePhoto: "b.jpg",
		})
		require.NoError(t, err)
		_, err = e.SubmitAnswer(ctx, Submission{
			Key:         model.AnswerKey{SessionID: sess.ID, QuestionID: "Q2", ActivityType: "Major"},
			Status:      "DEFICIENCY",
			Reasons:     []string{"Cracked"},
			BeforePhoto: "b.jpg",
		})
		require.NoError(t, err)
		submitOK(t, e, sess.ID, "Q1")

		all, err := e.ListPendingDefects(ctx, sess.ID, "")
		require.NoError(t, err)
		var keys []string
		for _, a := range all {
			keys = append(keys, a.AreaID+":"+a.Key.QuestionID+":"+a.Key.ActivityType)
		}
		assert.Equal(t, []string{
			"berth:Q10:",
			"lavatory:Q2:Major",
			"lavatory:Q2:Minor",
			"lavatory:Q3:",
		}, keys)

		lav, err := e.ListPendingDefects(ctx, sess.ID, "lavatory")
		require.NoError(t, err)
		assert.Len(t, lav, 3)

		n, err := e.CountPendingDefects(ctx, sess.ID, "berth")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestListPendingDefects_EmptyIsNotNil(t *testing.T) {
	forEachStore(t, func(t *testing.T, e *Engine) {
		sess := createSession(t, e, model.ModuleAmenity)

		got, err := e.ListPendingDefects(context.Background(), sess.ID, "")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestListPendingDefects_Errors(t *testing.T) {
	e := newTestEngine(t, storeFactories["memstore"](t))
	sess := createSession(t, e, model.ModuleAmenity)

	_, err := e.ListPendingDefects(context.Background(), sess.ID, "roof")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = e.ListPendingDefects(context.Background(), "missing", "")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestResolveDefect_UsesClock(t *testing.T) {
	clock := testutil.NewDeterministicClock()
	e := New(testutil.LavatoryCatalog(t), storeFactories["memstore"](t),
		WithClock(clock), WithIDGenerator(testutil.NewSequentialIDs("id")))
	sess := createSession(t, e, model.ModuleAmenity)
	defect := submitDefect(t, e, sess.ID, "Q3", "Dripping")

	want := clock.Current()
	got, err := e.ResolveDefect(context.Background(), defect.Key, "after.jpg", "")
	require.NoError(t, err)
	assert.True(t, want.Equal(got.Resolution.ResolvedAt))
}
