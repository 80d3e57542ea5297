package engine

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/errors"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/model"
)

// AnswerLike is the loose answer shape accepted by the compliance scorer.
// Newer records set Status (OK, DEFICIENCY, NA, MEASURED); sick-line records
// set the legacy Answer field (YES, NO, NA). Status wins when both are set.
//
// ScoreCompliance skips values it does not recognize; run CheckAnswers
// first when the input comes from outside the engine.
type AnswerLike struct {
	Status        string   `json:"status,omitempty" yaml:"status,omitempty"`
	Answer        string   `json:"answer,omitempty" yaml:"answer,omitempty"`
	ObservedValue *float64 `json:"observed_value,omitempty" yaml:"observed_value,omitempty"`
}

func (a AnswerLike) raw() string {
	if a.Status != "" {
		return a.Status
	}
	return a.Answer
}

// CheckAnswers rejects records ScoreCompliance would silently skip: an
// unknown status or answer value, or a record with neither a value nor an
// observed reading.
func CheckAnswers(answers []AnswerLike) error {
	for i, a := range answers {
		raw := a.raw()
		if raw == "" {
			if a.ObservedValue == nil {
				return apperrors.Newf(apperrors.CodeValidation, "answer %d: status, answer or observed_value is required", i)
			}
			continue
		}
		if _, err := model.NormalizeStatus(raw); err != nil {
			return apperrors.Wrap(apperrors.CodeValidation, fmt.Sprintf("answer %d", i), err)
		}
	}
	return nil
}

// ScoreCompliance returns round(100 * ok / (ok + deficiency)).
//
// OK and YES count as ok, DEFICIENCY and NO as deficiency. NA, measured
// answers and unrecognized values are left out of the denominator. With
// nothing assessable the score is 100.
func ScoreCompliance(answers []AnswerLike) int {
	ok, deficient := 0, 0
	for _, a := range answers {
		raw := a.raw()
		if raw == "" && a.ObservedValue != nil {
			continue // measured reading
		}
		status, err := model.NormalizeStatus(raw)
		if err != nil {
			continue
		}
		switch status {
		case model.StatusOK:
			ok++
		case model.StatusDeficiency:
			deficient++
		}
	}
	if ok+deficient == 0 {
		return 100
	}
	return percent(ok, ok+deficient)
}

// ScoreAnswers scores stored answers.
func ScoreAnswers(answers []model.Answer) int {
	like := make([]AnswerLike, 0, len(answers))
	for _, a := range answers {
		if a.Outcome == nil {
			continue
		}
		like = append(like, AnswerLike{Status: string(a.Outcome.Status())})
	}
	return ScoreCompliance(like)
}

// SessionCompliance scores the session's stored answers, optionally limited
// to one area.
func (e *Engine) SessionCompliance(ctx context.Context, sessionID, areaID string) (score int, err error) {
	ctx, span := e.startSpan(ctx, "SessionCompliance",
		attribute.String("session.id", sessionID),
		attribute.String("area.id", areaID),
	)
	defer func() { endSpan(span, err) }()

	if areaID != "" {
		if _, err := e.catalog.Area(areaID); err != nil {
			return 0, err
		}
	}

	answers, err := e.store.ListAnswers(ctx, model.AnswerFilter{SessionID: sessionID, AreaID: areaID})
	if err != nil {
		return 0, err
	}
	score = ScoreAnswers(answers)
	span.SetAttributes(attribute.Int("compliance.score", score))
	return score, nil
}
