package engine

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/model"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/store"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/store/memstore"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/testutil"
)

// storeFactories lets behavioural tests run against both answer stores.
var storeFactories = map[string]func(t *testing.T) AnswerStore{
	"memstore": func(t *testing.T) AnswerStore {
		return memstore.New()
	},
	"sqlite": func(t *testing.T) AnswerStore {
		s, err := store.Open(filepath.Join(t.TempDir(), "engine.db"))
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		return s
	},
}

// forEachStore runs fn once per store implementation.
func forEachStore(t *testing.T, fn func(t *testing.T, e *Engine)) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			fn(t, newTestEngine(t, factory(t)))
		})
	}
}

func newTestEngine(t *testing.T, st AnswerStore) *Engine {
	t.Helper()
	return New(testutil.LavatoryCatalog(t), st,
		WithClock(testutil.NewDeterministicClock()),
		WithIDGenerator(testutil.NewSequentialIDs("id")),
		WithLogger(discardLogger()),
	)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createSession(t *testing.T, e *Engine, m model.ModuleKind) model.Session {
	t.Helper()
	sess, err := e.CreateSession(context.Background(), "COACH-42", m)
	require.NoError(t, err)
	return sess
}

func submitOK(t *testing.T, e *Engine, sessionID string, questionIDs ...string) {
	t.Helper()
	for _, qid := range questionIDs {
		_, err := e.SubmitAnswer(context.Background(), Submission{
			Key:    model.AnswerKey{SessionID: sessionID, QuestionID: qid},
			Status: "OK",
		})
		require.NoError(t, err)
	}
}

func submitDefect(t *testing.T, e *Engine, sessionID, questionID string, reasons ...string) model.Answer {
	t.Helper()
	a, err := e.SubmitAnswer(context.Background(), Submission{
		Key:         model.AnswerKey{SessionID: sessionID, QuestionID: questionID},
		Status:      "DEFICIENCY",
		Reasons:     reasons,
		BeforePhoto: "before/" + questionID + ".jpg",
	})
	require.NoError(t, err)
	return a
}

func f64(v float64) *float64 { return &v }

func TestNew_Defaults(t *testing.T) {
	e := New(testutil.LavatoryCatalog(t), memstore.New())

	assert.IsType(t, SystemClock{}, e.clock)
	assert.IsType(t, UUIDv7Generator{}, e.ids)
	assert.NotNil(t, e.logger)
	assert.NotNil(t, e.tracer)
	assert.NotNil(t, e.Catalog())
}

func TestUUIDv7Generator_Unique(t *testing.T) {
	g := UUIDv7Generator{}
	a, b := g.Generate(), g.Generate()

	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestFixedGenerator(t *testing.T) {
	g := NewFixedGenerator("s-1", "a-1")

	assert.Equal(t, "s-1", g.Generate())
	assert.Equal(t, "a-1", g.Generate())
	assert.Panics(t, func() { g.Generate() })
}
