package model

import (
	"encoding/json"
	"strings"
	"time"

	apperrors "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/errors"
)

// AnswerKey addresses one answer. CompartmentID and ActivityType are only
// meaningful for the schemas that carry them and are empty otherwise.
type AnswerKey struct {
	SessionID     string `json:"session_id"`
	QuestionID    string `json:"question_id"`
	CompartmentID string `json:"compartment_id,omitempty"`
	ActivityType  string `json:"activity_type,omitempty"`
}

// String renders the key as session/question[/compartment][/activity].
func (k AnswerKey) String() string {
	parts := []string{k.SessionID, k.QuestionID}
	if k.CompartmentID != "" {
		parts = append(parts, "compartment="+k.CompartmentID)
	}
	if k.ActivityType != "" {
		parts = append(parts, "activity="+k.ActivityType)
	}
	return strings.Join(parts, "/")
}

// Validate checks that the mandatory key parts are present.
func (k AnswerKey) Validate() error {
	if strings.TrimSpace(k.SessionID) == "" {
		return apperrors.New(apperrors.CodeValidation, "answer key: session id is required")
	}
	if strings.TrimSpace(k.QuestionID) == "" {
		return apperrors.New(apperrors.CodeValidation, "answer key: question id is required")
	}
	return nil
}

// Resolution is the defect-resolution sub-record of an answer.
type Resolution struct {
	AfterPhoto string    `json:"after_photo"`
	Remark     string    `json:"remark"`
	ResolvedAt time.Time `json:"resolved_at"`
}

// Answer is the recorded outcome of one question for one session.
//
// Invariant: Resolution is non-nil only when Outcome is a Deficiency.
type Answer struct {
	ID          string
	Key         AnswerKey
	AreaID      string
	ItemID      string
	CoachID     string
	Outcome     Outcome
	Remarks     string
	BeforePhoto string
	Resolution  *Resolution
	SubmittedAt time.Time
}

// Resolved reports whether the answer's defect has been resolved.
func (a Answer) Resolved() bool {
	return a.Resolution != nil
}

// PendingDefect reports whether the answer is an open defect.
func (a Answer) PendingDefect() bool {
	return IsDeficiency(a.Outcome) && a.Resolution == nil
}

// Validate checks the resolution invariant.
func (a Answer) Validate() error {
	if a.Outcome == nil {
		return apperrors.Newf(apperrors.CodeValidation, "answer %s has no outcome", a.Key)
	}
	if a.Resolution != nil && !IsDeficiency(a.Outcome) {
		return apperrors.Newf(apperrors.CodeValidation, "answer %s is resolved but not a deficiency", a.Key)
	}
	return nil
}

type answerJSON struct {
	ID               string     `json:"id"`
	SessionID        string     `json:"session_id"`
	QuestionID       string     `json:"question_id"`
	CompartmentID    string     `json:"compartment_id,omitempty"`
	ActivityType     string     `json:"activity_type,omitempty"`
	AreaID           string     `json:"area_id"`
	ItemID           string     `json:"item_id"`
	CoachID          string     `json:"coach_id,omitempty"`
	Status           Status     `json:"status"`
	ObservedValue    *float64   `json:"observed_value,omitempty"`
	Reasons          []string   `json:"reasons,omitempty"`
	Remarks          string     `json:"remarks,omitempty"`
	BeforePhoto      string     `json:"before_photo,omitempty"`
	Resolved         bool       `json:"resolved"`
	AfterPhoto       string     `json:"after_photo,omitempty"`
	ResolutionRemark string     `json:"resolution_remark,omitempty"`
	ResolvedAt       *time.Time `json:"resolved_at,omitempty"`
	SubmittedAt      time.Time  `json:"submitted_at"`
}

// MarshalJSON flattens the answer into the record shape consumed by
// reporting collaborators.
func (a Answer) MarshalJSON() ([]byte, error) {
	out := answerJSON{
		ID:            a.ID,
		SessionID:     a.Key.SessionID,
		QuestionID:    a.Key.QuestionID,
		CompartmentID: a.Key.CompartmentID,
		ActivityType:  a.Key.ActivityType,
		AreaID:        a.AreaID,
		ItemID:        a.ItemID,
		CoachID:       a.CoachID,
		Remarks:       a.Remarks,
		BeforePhoto:   a.BeforePhoto,
		SubmittedAt:   a.SubmittedAt,
	}
	if a.Outcome != nil {
		out.Status = a.Outcome.Status()
		if v, ok := ValueOf(a.Outcome); ok {
			out.ObservedValue = &v
		}
		if reasons := ReasonsOf(a.Outcome); reasons.Len() > 0 {
			out.Reasons = reasons.Values()
		}
	}
	if a.Resolution != nil {
		out.Resolved = true
		out.AfterPhoto = a.Resolution.AfterPhoto
		out.ResolutionRemark = a.Resolution.Remark
		resolvedAt := a.Resolution.ResolvedAt
		out.ResolvedAt = &resolvedAt
	}
	return json.Marshal(out)
}

// AnswerFilter narrows a listing of one session's answers.
type AnswerFilter struct {
	SessionID   string
	AreaID      string   // empty means every area
	QuestionIDs []string // empty means every question
	PendingOnly bool     // only DEFICIENCY answers that are not resolved
}

// Matches reports whether a satisfies the filter.
func (f AnswerFilter) Matches(a Answer) bool {
	if a.Key.SessionID != f.SessionID {
		return false
	}
	if f.AreaID != "" && a.AreaID != f.AreaID {
		return false
	}
	if len(f.QuestionIDs) > 0 {
		found := false
		for _, q := range f.QuestionIDs {
			if q == a.Key.QuestionID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.PendingOnly && !a.PendingDefect() {
		return false
	}
	return true
}
