package engine

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/errors"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/model"
)

// Submission is an inspector's answer to one question, before validation.
type Submission struct {
	Key model.AnswerKey `json:"key" yaml:"key"`

	// Status accepts OK, DEFICIENCY, NA, MEASURED and the legacy YES/NO.
	// Empty means MEASURED for measured questions.
	Status        string   `json:"status" yaml:"status"`
	ObservedValue *float64 `json:"observed_value,omitempty" yaml:"observed_value,omitempty"`
	Reasons       []string `json:"reasons,omitempty" yaml:"reasons,omitempty"`
	Remarks       string   `json:"remarks,omitempty" yaml:"remarks,omitempty"`
	BeforePhoto   string   `json:"before_photo,omitempty" yaml:"before_photo,omitempty"`
}

// SubmitAnswer validates a submission against the catalog and upserts it.
// Resubmitting a key replaces the previous answer and clears any
// resolution; a resubmitted deficiency is a new open defect.
//
// Errors:
//   - NOT_FOUND: unknown question or session
//   - INVALID_STATE: the session is COMPLETED
//   - VALIDATION: the outcome does not fit the question, a deficiency lacks
//     a before photo or reasons, a reason is not one the question allows,
//     or the key carries a part the module does not record
func (e *Engine) SubmitAnswer(ctx context.Context, sub Submission) (answer model.Answer, err error) {
	ctx, span := e.startSpan(ctx, "SubmitAnswer", keyAttrs(sub.Key)...)
	defer func() { endSpan(span, err) }()

	if err := sub.Key.Validate(); err != nil {
		return model.Answer{}, err
	}
	q, err := e.catalog.Question(sub.Key.QuestionID)
	if err != nil {
		return model.Answer{}, err
	}
	sess, err := e.store.GetSession(ctx, sub.Key.SessionID)
	if err != nil {
		return model.Answer{}, err
	}
	if sess.Locked() {
		return model.Answer{}, apperrors.WithMetadata(apperrors.CodeInvalidState,
			fmt.Sprintf("session %q is completed", sess.ID), map[string]string{"session_id": sess.ID})
	}
	area, err := e.catalog.Area(q.AreaID)
	if err != nil {
		return model.Answer{}, err
	}
	if !area.EnabledFor(sess.Module) {
		return model.Answer{}, apperrors.Newf(apperrors.CodeValidation,
			"question %q belongs to area %q, which %s sessions do not inspect", q.ID, area.ID, sess.Module)
	}
	if err := sess.Module.Dimensions().CheckKey(sub.Key); err != nil {
		return model.Answer{}, err
	}

	outcome, err := buildOutcome(q, sub)
	if err != nil {
		return model.Answer{}, err
	}
	beforePhoto := strings.TrimSpace(sub.BeforePhoto)
	if model.IsDeficiency(outcome) && beforePhoto == "" {
		return model.Answer{}, apperrors.Newf(apperrors.CodeValidation,
			"question %q: a before photo is required for a deficiency", q.ID)
	}

	answer, err = e.store.UpsertAnswer(ctx, model.Answer{
		ID:          e.ids.Generate(),
		Key:         sub.Key,
		AreaID:      q.AreaID,
		ItemID:      q.ItemID,
		CoachID:     sess.CoachRef,
		Outcome:     outcome,
		Remarks:     strings.TrimSpace(sub.Remarks),
		BeforePhoto: beforePhoto,
		SubmittedAt: e.clock.Now(),
	})
	if err != nil {
		return model.Answer{}, err
	}

	e.logger.Debug("answer submitted", "key", sub.Key.String(), "status", outcome.Status())
	return answer, nil
}

// buildOutcome checks the submitted status, value and reasons against the
// question's type and declared reasons.
func buildOutcome(q model.Question, sub Submission) (model.Outcome, error) {
	raw := sub.Status
	if strings.TrimSpace(raw) == "" && q.Type == model.AnswerTypeMeasured {
		raw = string(model.StatusMeasured)
	}
	status, err := model.NormalizeStatus(raw)
	if err != nil {
		return nil, fmt.Errorf("question %q: %w", q.ID, err)
	}

	switch q.Type {
	case model.AnswerTypeMeasured:
		if status != model.StatusMeasured && status != model.StatusNA {
			return nil, apperrors.Newf(apperrors.CodeValidation,
				"question %q is measured and accepts %s or %s, got %s", q.ID, model.StatusMeasured, model.StatusNA, status)
		}
	default:
		if status == model.StatusMeasured {
			return nil, apperrors.Newf(apperrors.CodeValidation,
				"question %q is not a measured question", q.ID)
		}
	}

	reasons, err := model.ParseReasons(sub.Reasons)
	if err != nil {
		return nil, fmt.Errorf("question %q: %w", q.ID, err)
	}
	if status == model.StatusDeficiency {
		if reasons.Len() == 0 {
			return nil, apperrors.Newf(apperrors.CodeValidation,
				"question %q: a deficiency needs at least one reason", q.ID)
		}
		if len(q.Reasons) > 0 {
			allowed, err := model.ParseReasons(q.Reasons)
			if err != nil {
				return nil, fmt.Errorf("question %q: %w", q.ID, err)
			}
			if !reasons.SubsetOf(allowed) {
				return nil, apperrors.WithMetadata(apperrors.CodeValidation,
					fmt.Sprintf("question %q: reasons %v are not all among %v", q.ID, reasons.Values(), allowed.Values()),
					map[string]string{"question_id": q.ID})
			}
		}
	}

	outcome, err := model.NewOutcome(status, reasons, sub.ObservedValue)
	if err != nil {
		return nil, fmt.Errorf("question %q: %w", q.ID, err)
	}
	return outcome, nil
}
