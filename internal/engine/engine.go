package engine

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/catalog"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/model"
)

// AnswerStore is the persistence the engine reads and writes.
// Implemented by store.Store (SQLite) and memstore.Store.
//
// Implementations must make ResolveDefect an atomic compare-and-set on
// "deficiency and not resolved", and must reject writes to a COMPLETED
// session with INVALID_STATE.
type AnswerStore interface {
	CreateSession(ctx context.Context, sess model.Session) error
	GetSession(ctx context.Context, id string) (model.Session, error)
	ListSessions(ctx context.Context) ([]model.Session, error)
	CompleteSession(ctx context.Context, id string, at time.Time) (model.Session, error)

	UpsertAnswer(ctx context.Context, a model.Answer) (model.Answer, error)
	GetAnswer(ctx context.Context, key model.AnswerKey) (model.Answer, error)
	ListAnswers(ctx context.Context, f model.AnswerFilter) ([]model.Answer, error)
	ResolveDefect(ctx context.Context, key model.AnswerKey, res model.Resolution) (model.Answer, error)
}

const tracerName = "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/engine"

// Engine evaluates sessions against a fixed catalog.
//
// Thread-safety: Engine has no mutable state after construction and is safe
// for concurrent use as long as its store is.
type Engine struct {
	catalog *catalog.Catalog
	store   AnswerStore
	clock   Clock
	ids     IDGenerator
	logger  *slog.Logger
	tracer  trace.Tracer
}

// Option allows configuration of engine collaborators.
type Option func(*Engine)

// WithClock sets the clock used for timestamps.
// Default: SystemClock.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithIDGenerator sets the generator for session and answer ids.
// Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(e *Engine) {
		e.ids = g
	}
}

// WithLogger sets the structured logger.
// Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithTracer sets the OpenTelemetry tracer.
// Default: the tracer of the global provider, a no-op until telemetry is set up.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = t
	}
}

// New creates an Engine over the given catalog and store.
func New(cat *catalog.Catalog, st AnswerStore, opts ...Option) *Engine {
	e := &Engine{
		catalog: cat,
		store:   st,
		clock:   SystemClock{},
		ids:     UUIDv7Generator{},
		logger:  slog.Default(),
		tracer:  otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Catalog returns the catalog the engine evaluates against.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}
