package engine

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/errors"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/model"
)

// CreateSession opens a new IN_PROGRESS session for a coach in one module.
func (e *Engine) CreateSession(ctx context.Context, coachRef string, module model.ModuleKind) (sess model.Session, err error) {
	ctx, span := e.startSpan(ctx, "CreateSession",
		attribute.String("coach.ref", coachRef),
		attribute.String("session.module", string(module)),
	)
	defer func() { endSpan(span, err) }()

	coachRef = strings.TrimSpace(coachRef)
	if coachRef == "" {
		return model.Session{}, apperrors.New(apperrors.CodeValidation, "coach reference is required")
	}
	if !module.Valid() {
		return model.Session{}, apperrors.Newf(apperrors.CodeValidation, "unknown module kind %q", module)
	}

	sess = model.Session{
		ID:        e.ids.Generate(),
		CoachRef:  coachRef,
		Module:    module,
		Status:    model.SessionInProgress,
		CreatedAt: e.clock.Now(),
	}
	if err := e.store.CreateSession(ctx, sess); err != nil {
		return model.Session{}, err
	}

	span.SetAttributes(attribute.String("session.id", sess.ID))
	e.logger.Info("session created", "session", sess.ID, "coach", coachRef, "module", module)
	return sess, nil
}

// GetSession returns the session with the given id.
func (e *Engine) GetSession(ctx context.Context, id string) (model.Session, error) {
	return e.store.GetSession(ctx, id)
}

// ListSessions returns every session, oldest first.
func (e *Engine) ListSessions(ctx context.Context) ([]model.Session, error) {
	return e.store.ListSessions(ctx)
}

// CompleteSession locks a session whose aggregate progress is COMPLETED.
// A locked session rejects further submissions and resolutions.
//
// Errors:
//   - NOT_FOUND: unknown session
//   - INVALID_STATE: the session is already COMPLETED, or some area is not
//     COMPLETED yet (unanswered items or open defects)
func (e *Engine) CompleteSession(ctx context.Context, id string) (sess model.Session, err error) {
	ctx, span := e.startSpan(ctx, "CompleteSession", attribute.String("session.id", id))
	defer func() { endSpan(span, err) }()

	progress, err := e.ComputeSessionProgress(ctx, id)
	if err != nil {
		return model.Session{}, err
	}
	if progress.SessionStatus == model.SessionCompleted {
		return model.Session{}, apperrors.WithMetadata(apperrors.CodeInvalidState,
			fmt.Sprintf("session %q is already completed", id), map[string]string{"session_id": id})
	}
	if progress.Status != model.ProgressCompleted {
		return model.Session{}, apperrors.WithMetadata(apperrors.CodeInvalidState,
			fmt.Sprintf("session %q cannot be completed: progress is %s (%d/%d items, %d open defects)",
				id, progress.Status, progress.Completed, progress.TotalRequired, progress.PendingDefects),
			map[string]string{"session_id": id, "status": string(progress.Status)})
	}

	sess, err = e.store.CompleteSession(ctx, id, e.clock.Now())
	if err != nil {
		return model.Session{}, err
	}

	e.logger.Info("session completed", "session", id)
	return sess, nil
}
