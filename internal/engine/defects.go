package engine

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/errors"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/model"
)

// ResolveDefect moves an open defect to RESOLVED, stamping it with the
// after photo, the remark and the current time.
//
// The store applies the change as a compare-and-set, so of two concurrent
// resolutions exactly one succeeds.
//
// Errors:
//   - VALIDATION: malformed key or missing after photo (nothing is read)
//   - NOT_FOUND: unknown session or answer
//   - INVALID_STATE: the answer is not a deficiency, is already resolved,
//     or its session is COMPLETED
func (e *Engine) ResolveDefect(ctx context.Context, key model.AnswerKey, afterPhoto, remark string) (answer model.Answer, err error) {
	ctx, span := e.startSpan(ctx, "ResolveDefect", keyAttrs(key)...)
	defer func() { endSpan(span, err) }()

	if err := key.Validate(); err != nil {
		return model.Answer{}, err
	}
	afterPhoto = strings.TrimSpace(afterPhoto)
	if afterPhoto == "" {
		return model.Answer{}, apperrors.WithMetadata(apperrors.CodeValidation,
			"an after photo is required to resolve a defect",
			map[string]string{"session_id": key.SessionID, "question_id": key.QuestionID})
	}

	answer, err = e.store.ResolveDefect(ctx, key, model.Resolution{
		AfterPhoto: afterPhoto,
		Remark:     strings.TrimSpace(remark),
		ResolvedAt: e.clock.Now(),
	})
	if err != nil {
		e.logger.Debug("defect not resolved", "key", key.String(), "error", err)
		return model.Answer{}, err
	}

	e.logger.Info("defect resolved", "key", key.String(), "area", answer.AreaID)
	return answer, nil
}

// ListPendingDefects returns the session's open defects, optionally limited
// to one area, ordered by area, question and the module's extra key parts.
// Each call re-reads the store.
func (e *Engine) ListPendingDefects(ctx context.Context, sessionID, areaID string) (defects []model.Answer, err error) {
	ctx, span := e.startSpan(ctx, "ListPendingDefects",
		attribute.String("session.id", sessionID),
		attribute.String("area.id", areaID),
	)
	defer func() { endSpan(span, err) }()

	if areaID != "" {
		if _, err := e.catalog.Area(areaID); err != nil {
			return nil, err
		}
	}

	defects, err = e.store.ListAnswers(ctx, model.AnswerFilter{
		SessionID:   sessionID,
		AreaID:      areaID,
		PendingOnly: true,
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("defects.pending", len(defects)))
	return defects, nil
}

// CountPendingDefects returns len(ListPendingDefects(...)).
func (e *Engine) CountPendingDefects(ctx context.Context, sessionID, areaID string) (int, error) {
	defects, err := e.ListPendingDefects(ctx, sessionID, areaID)
	if err != nil {
		return 0, err
	}
	return len(defects), nil
}
