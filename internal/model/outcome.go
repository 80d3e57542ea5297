package model

import (
	"strings"

	apperrors "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/errors"
)

// Status is the normalized answer vocabulary.
type Status string

const (
	StatusOK         Status = "OK"
	StatusDeficiency Status = "DEFICIENCY"
	StatusNA         Status = "NA"
	StatusMeasured   Status = "MEASURED"
)

// Legacy answer vocabulary still written by the sick-line schema.
const (
	LegacyYes = "YES"
	LegacyNo  = "NO"
)

// NormalizeStatus maps both vocabularies onto Status:
//
//	OK, YES          -> OK
//	DEFICIENCY, NO   -> DEFICIENCY
//	NA, N/A          -> NA
//	MEASURED         -> MEASURED
//
// Matching is case-insensitive. Anything else is a VALIDATION error.
func NormalizeStatus(raw string) (Status, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "OK", LegacyYes:
		return StatusOK, nil
	case "DEFICIENCY", LegacyNo:
		return StatusDeficiency, nil
	case "NA", "N/A":
		return StatusNA, nil
	case "MEASURED":
		return StatusMeasured, nil
	}
	return "", apperrors.Newf(apperrors.CodeValidation, "unknown answer status %q", raw)
}

// Outcome is a sealed interface over the recorded result of a question.
// Only OK, Deficiency, NA and Measured implement it.
type Outcome interface {
	Status() Status
	outcome() // Sealed
}

// OK is a compliant answer.
type OK struct{}

func (OK) outcome()       {}
func (OK) Status() Status { return StatusOK }

// Deficiency is a negative answer. It opens a defect.
type Deficiency struct {
	Reasons ReasonSet
}

func (Deficiency) outcome()       {}
func (Deficiency) Status() Status { return StatusDeficiency }

// NA marks a question as not applicable to this coach.
type NA struct{}

func (NA) outcome()       {}
func (NA) Status() Status { return StatusNA }

// Measured carries an observed value for a measured-value question.
type Measured struct {
	Value float64
}

func (Measured) outcome()       {}
func (Measured) Status() Status { return StatusMeasured }

// NewOutcome builds an outcome from its flattened parts. Reasons are only
// accepted for DEFICIENCY and a value only (and always) for MEASURED.
func NewOutcome(status Status, reasons ReasonSet, value *float64) (Outcome, error) {
	if status != StatusDeficiency && reasons.Len() > 0 {
		return nil, apperrors.Newf(apperrors.CodeValidation, "reasons are only allowed on %s answers, got %s", StatusDeficiency, status)
	}
	if status != StatusMeasured && value != nil {
		return nil, apperrors.Newf(apperrors.CodeValidation, "observed value is only allowed on %s answers, got %s", StatusMeasured, status)
	}

	switch status {
	case StatusOK:
		return OK{}, nil
	case StatusNA:
		return NA{}, nil
	case StatusDeficiency:
		return Deficiency{Reasons: reasons}, nil
	case StatusMeasured:
		if value == nil {
			return nil, apperrors.New(apperrors.CodeValidation, "measured answer requires an observed value")
		}
		return Measured{Value: *value}, nil
	}
	return nil, apperrors.Newf(apperrors.CodeValidation, "unknown answer status %q", status)
}

// IsDeficiency reports whether o is a Deficiency.
func IsDeficiency(o Outcome) bool {
	_, ok := o.(Deficiency)
	return ok
}

// ReasonsOf returns the reason set of a Deficiency, or an empty set.
func ReasonsOf(o Outcome) ReasonSet {
	if d, ok := o.(Deficiency); ok {
		return d.Reasons
	}
	return ReasonSet{}
}

// ValueOf returns the observed value of a Measured outcome.
func ValueOf(o Outcome) (float64, bool) {
	if m, ok := o.(Measured); ok {
		return m.Value, true
	}
	return 0, false
}
