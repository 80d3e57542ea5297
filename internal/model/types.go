package model

import (
	"strings"
	"time"

	apperrors "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/errors"
)

// ModuleKind identifies which inspection module a session belongs to.
type ModuleKind string

const (
	ModuleAmenity       ModuleKind = "AMENITY"
	ModuleSickline      ModuleKind = "SICKLINE"
	ModuleCAI           ModuleKind = "CAI"
	ModuleCommissionary ModuleKind = "COMMISSIONARY"
)

// AllModules lists the module kinds in declaration order.
var AllModules = []ModuleKind{ModuleAmenity, ModuleSickline, ModuleCAI, ModuleCommissionary}

// Valid reports whether m is a known module kind.
func (m ModuleKind) Valid() bool {
	switch m {
	case ModuleAmenity, ModuleSickline, ModuleCAI, ModuleCommissionary:
		return true
	}
	return false
}

// ParseModuleKind parses a module name case-insensitively.
func ParseModuleKind(s string) (ModuleKind, error) {
	m := ModuleKind(strings.ToUpper(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", apperrors.Newf(apperrors.CodeValidation, "unknown module kind %q", s)
	}
	return m, nil
}

// Dimensions lists the optional columns a module's answer records carry.
// Compartment and Activity are key parts; Coach is attribution only.
type Dimensions struct {
	Compartment bool
	Activity    bool
	Coach       bool
}

// Dimensions returns the answer dimensions carried by module m.
func (m ModuleKind) Dimensions() Dimensions {
	switch m {
	case ModuleAmenity, ModuleCommissionary:
		return Dimensions{Compartment: true, Activity: true}
	case ModuleSickline:
		return Dimensions{Coach: true}
	case ModuleCAI:
		return Dimensions{Activity: true, Coach: true}
	}
	return Dimensions{}
}

// CheckKey rejects key parts the module's records cannot hold.
func (d Dimensions) CheckKey(k AnswerKey) error {
	if k.CompartmentID != "" && !d.Compartment {
		return apperrors.Newf(apperrors.CodeValidation, "answer key %s: compartment is not recorded for this module", k)
	}
	if k.ActivityType != "" && !d.Activity {
		return apperrors.Newf(apperrors.CodeValidation, "answer key %s: activity type is not recorded for this module", k)
	}
	return nil
}

// SessionStatus is the overall status of a session.
type SessionStatus string

const (
	SessionInProgress SessionStatus = "IN_PROGRESS"
	SessionCompleted  SessionStatus = "COMPLETED"
)

// Session identifies one coach undergoing inspection within one module.
// A COMPLETED session is locked: no answer may be written or resolved.
type Session struct {
	ID          string        `json:"id"`
	CoachRef    string        `json:"coach_ref"`
	Module      ModuleKind    `json:"module"`
	Status      SessionStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

// Locked reports whether the session no longer accepts writes.
func (s Session) Locked() bool {
	return s.Status == SessionCompleted
}

// AnswerType distinguishes boolean-status questions from measured ones.
type AnswerType string

const (
	AnswerTypeStatus   AnswerType = "STATUS"
	AnswerTypeMeasured AnswerType = "MEASURED"
)

// Area is a named inspection zone of a coach (a subcategory).
type Area struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Modules restricts the area to the listed modules. Empty means all.
	Modules []ModuleKind `json:"modules,omitempty"`
}

// EnabledFor reports whether the area is inspected by module m.
func (a Area) EnabledFor(m ModuleKind) bool {
	if len(a.Modules) == 0 {
		return true
	}
	for _, mod := range a.Modules {
		if mod == m {
			return true
		}
	}
	return false
}

// Item is a physical sub-element of exactly one area.
type Item struct {
	ID     string `json:"id"`
	AreaID string `json:"area_id"`
	Name   string `json:"name"`
}

// Question is an atomic checklist query attached to one item and one area.
type Question struct {
	ID      string     `json:"id"`
	ItemID  string     `json:"item_id"`
	AreaID  string     `json:"area_id"`
	Text    string     `json:"text"`
	Type    AnswerType `json:"type"`
	Reasons []string   `json:"reasons,omitempty"` // allowed deficiency reasons; empty means free text
	Unit    string     `json:"unit,omitempty"`    // measured questions only
}
