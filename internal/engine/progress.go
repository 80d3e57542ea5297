package engine

import (
	"context"
	"math"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/catalog"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/model"
)

// ComputeAreaProgress returns the completion snapshot of one area in one
// session. It performs no writes.
//
// An area with no required items returns {0, 0, 0%, PENDING} without
// reading the store.
//
// Errors:
//   - NOT_FOUND: unknown area or session
//   - STORAGE_UNAVAILABLE: the store could not be read
func (e *Engine) ComputeAreaProgress(ctx context.Context, areaID, sessionID string) (progress model.AreaProgress, err error) {
	ctx, span := e.startSpan(ctx, "ComputeAreaProgress",
		attribute.String("area.id", areaID),
		attribute.String("session.id", sessionID),
	)
	defer func() { endSpan(span, err) }()

	reqs, err := e.catalog.ItemsForArea(areaID)
	if err != nil {
		return model.AreaProgress{}, err
	}
	required := requiredItems(reqs)
	if len(required) == 0 {
		return emptyProgress(areaID), nil
	}

	answers, err := e.store.ListAnswers(ctx, model.AnswerFilter{SessionID: sessionID})
	if err != nil {
		return model.AreaProgress{}, err
	}

	progress = aggregateArea(areaID, required, answers)
	span.SetAttributes(
		attribute.Int("progress.completed", progress.Completed),
		attribute.Int("progress.total_required", progress.TotalRequired),
		attribute.String("progress.status", string(progress.Status)),
	)
	return progress, nil
}

// ComputeSessionProgress returns the snapshots of every area the session's
// module inspects, in catalog order, plus their aggregate.
//
// The aggregate status is COMPLETED when there is at least one area and all
// of them are COMPLETED, PENDING when all of them are PENDING, and
// IN_PROGRESS otherwise.
func (e *Engine) ComputeSessionProgress(ctx context.Context, sessionID string) (progress model.SessionProgress, err error) {
	ctx, span := e.startSpan(ctx, "ComputeSessionProgress", attribute.String("session.id", sessionID))
	defer func() { endSpan(span, err) }()

	sess, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return model.SessionProgress{}, err
	}

	// One read so every area is computed from the same snapshot.
	answers, err := e.store.ListAnswers(ctx, model.AnswerFilter{SessionID: sessionID})
	if err != nil {
		return model.SessionProgress{}, err
	}

	progress = model.SessionProgress{
		SessionID:     sess.ID,
		Module:        sess.Module,
		SessionStatus: sess.Status,
		Areas:         []model.AreaProgress{},
	}
	for _, area := range e.catalog.AreasFor(sess.Module) {
		reqs, err := e.catalog.ItemsForArea(area.ID)
		if err != nil {
			return model.SessionProgress{}, err
		}
		var ap model.AreaProgress
		if required := requiredItems(reqs); len(required) == 0 {
			ap = emptyProgress(area.ID)
		} else {
			ap = aggregateArea(area.ID, required, answers)
		}
		progress.Areas = append(progress.Areas, ap)
		progress.TotalRequired += ap.TotalRequired
		progress.Completed += ap.Completed
		progress.PendingDefects += ap.PendingDefects
	}
	progress.Percentage = percent(progress.Completed, progress.TotalRequired)
	progress.Status = sessionStatus(progress.Areas)

	span.SetAttributes(attribute.String("progress.status", string(progress.Status)))
	return progress, nil
}

// requiredItems drops items that no question of their area verifies. They
// cannot be required if nothing checks them.
func requiredItems(reqs []catalog.ItemRequirement) []catalog.ItemRequirement {
	out := make([]catalog.ItemRequirement, 0, len(reqs))
	for _, r := range reqs {
		if len(r.QuestionIDs) > 0 {
			out = append(out, r)
		}
	}
	return out
}

func emptyProgress(areaID string) model.AreaProgress {
	return model.AreaProgress{AreaID: areaID, Status: model.ProgressPending}
}

// aggregateArea applies the completion rules to a non-empty list of
// required items and the session's answers.
//
// Answers are reduced to a set of question ids, so several records for one
// question (different compartments or activities) count once. Pending
// defects are counted per record, scoped by the answer's own area.
func aggregateArea(areaID string, required []catalog.ItemRequirement, answers []model.Answer) model.AreaProgress {
	wanted := make(map[string]struct{})
	for _, r := range required {
		for _, qid := range r.QuestionIDs {
			wanted[qid] = struct{}{}
		}
	}

	answered := make(map[string]struct{}, len(wanted))
	pending := 0
	for _, a := range answers {
		if _, ok := wanted[a.Key.QuestionID]; ok {
			answered[a.Key.QuestionID] = struct{}{}
		}
		if a.AreaID == areaID && a.PendingDefect() {
			pending++
		}
	}

	completed := 0
	for _, r := range required {
		if allAnswered(r.QuestionIDs, answered) {
			completed++
		}
	}

	return model.AreaProgress{
		AreaID:         areaID,
		TotalRequired:  len(required),
		Completed:      completed,
		PendingDefects: pending,
		Percentage:     percent(completed, len(required)),
		Status:         areaStatus(completed, len(required), pending),
	}
}

func allAnswered(questionIDs []string, answered map[string]struct{}) bool {
	for _, qid := range questionIDs {
		if _, ok := answered[qid]; !ok {
			return false
		}
	}
	return true
}

// areaStatus derives the tri-state status. Full coverage with an open
// defect stays IN_PROGRESS.
func areaStatus(completed, total, pendingDefects int) model.ProgressStatus {
	switch {
	case completed == 0:
		return model.ProgressPending
	case completed < total:
		return model.ProgressInProgress
	case pendingDefects > 0:
		return model.ProgressInProgress
	default:
		return model.ProgressCompleted
	}
}

func sessionStatus(areas []model.AreaProgress) model.ProgressStatus {
	if len(areas) == 0 {
		return model.ProgressPending
	}
	allCompleted, allPending := true, true
	for _, a := range areas {
		if a.Status != model.ProgressCompleted {
			allCompleted = false
		}
		if a.Status != model.ProgressPending {
			allPending = false
		}
	}
	switch {
	case allCompleted:
		return model.ProgressCompleted
	case allPending:
		return model.ProgressPending
	default:
		return model.ProgressInProgress
	}
}

// percent returns round(n / d * 100), or 0 when d is 0.
func percent(n, d int) int {
	if d == 0 {
		return 0
	}
	return int(math.Round(float64(n) * 100 / float64(d)))
}
