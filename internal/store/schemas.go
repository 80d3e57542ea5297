package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/errors"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/model"
)

// answerSchema describes how one module's answer table spells its columns.
// It is the normalization boundary between raw rows and model.Answer.
type answerSchema struct {
	table        string
	dims         model.Dimensions
	statusColumn string

	encodeStatus   func(model.Status) string
	decodeStatus   func(raw string, hasValue bool) (model.Status, error)
	encodeResolved func(bool) any

	// SQL predicates over the raw columns.
	deficientSQL  string
	unresolvedSQL string
}

var amenitySchema = answerSchema{
	table:          "amenity_answers",
	dims:           model.ModuleAmenity.Dimensions(),
	statusColumn:   "status",
	encodeStatus:   func(s model.Status) string { return string(s) },
	decodeStatus:   decodeStatusColumn,
	encodeResolved: encodeResolvedInt,
	deficientSQL:   "UPPER(status) IN ('DEFICIENCY', 'NO')",
	unresolvedSQL:  "resolved = 0",
}

var sicklineSchema = answerSchema{
	table:          "sickline_answers",
	dims:           model.ModuleSickline.Dimensions(),
	statusColumn:   "answer",
	encodeStatus:   encodeLegacyAnswer,
	decodeStatus:   decodeLegacyAnswer,
	encodeResolved: encodeResolvedText,
	deficientSQL:   "UPPER(answer) IN ('NO', 'DEFICIENCY')",
	unresolvedSQL:  "LOWER(resolved) NOT IN ('true', '1', 'yes')",
}

var caiSchema = answerSchema{
	table:          "cai_answers",
	dims:           model.ModuleCAI.Dimensions(),
	statusColumn:   "status",
	encodeStatus:   func(s model.Status) string { return string(s) },
	decodeStatus:   decodeStatusColumn,
	encodeResolved: encodeResolvedInt,
	deficientSQL:   "UPPER(status) IN ('DEFICIENCY', 'NO')",
	unresolvedSQL:  "resolved = 0",
}

// schemaFor returns the answer table used by module m.
func schemaFor(m model.ModuleKind) (*answerSchema, error) {
	switch m {
	case model.ModuleAmenity, model.ModuleCommissionary:
		return &amenitySchema, nil
	case model.ModuleSickline:
		return &sicklineSchema, nil
	case model.ModuleCAI:
		return &caiSchema, nil
	}
	return nil, apperrors.Newf(apperrors.CodeValidation, "unknown module kind %q", m)
}

func decodeStatusColumn(raw string, _ bool) (model.Status, error) {
	return model.NormalizeStatus(raw)
}

func encodeLegacyAnswer(s model.Status) string {
	switch s {
	case model.StatusOK:
		return model.LegacyYes
	case model.StatusDeficiency:
		return model.LegacyNo
	case model.StatusNA:
		return string(model.StatusNA)
	}
	return ""
}

// decodeLegacyAnswer reads the sick-line answer column. Measured rows leave
// it empty and carry observed_value instead.
func decodeLegacyAnswer(raw string, hasValue bool) (model.Status, error) {
	if strings.TrimSpace(raw) == "" && hasValue {
		return model.StatusMeasured, nil
	}
	return model.NormalizeStatus(raw)
}

func encodeResolvedInt(resolved bool) any {
	if resolved {
		return 1
	}
	return 0
}

func encodeResolvedText(resolved bool) any {
	if resolved {
		return "true"
	}
	return "false"
}

// parseResolvedFlag accepts every spelling the answer tables use.
func parseResolvedFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// keyColumns returns the primary key columns in order.
func (s *answerSchema) keyColumns() []string {
	cols := []string{"session_id", "question_id"}
	if s.dims.Compartment {
		cols = append(cols, "compartment_id")
	}
	if s.dims.Activity {
		cols = append(cols, "activity_type")
	}
	return cols
}

// keyWhere returns a WHERE fragment and its arguments addressing one row.
func (s *answerSchema) keyWhere(k model.AnswerKey) (string, []any) {
	clause := "session_id = ? AND question_id = ?"
	args := []any{k.SessionID, k.QuestionID}
	if s.dims.Compartment {
		clause += " AND compartment_id = ?"
		args = append(args, k.CompartmentID)
	}
	if s.dims.Activity {
		clause += " AND activity_type = ?"
		args = append(args, k.ActivityType)
	}
	return clause, args
}

func (s *answerSchema) orderBy() string {
	cols := []string{"area_id", "question_id"}
	if s.dims.Compartment {
		cols = append(cols, "compartment_id")
	}
	if s.dims.Activity {
		cols = append(cols, "activity_type")
	}
	return "ORDER BY " + strings.Join(cols, " COLLATE BINARY ASC, ") + " COLLATE BINARY ASC"
}

// selectColumns lists the columns read by scanAnswer. Columns a table does
// not carry are selected as the empty string.
func (s *answerSchema) selectColumns() string {
	optional := func(present bool, col string) string {
		if present {
			return col
		}
		return "'' AS " + col
	}
	return strings.Join([]string{
		"id", "session_id", "question_id",
		optional(s.dims.Compartment, "compartment_id"),
		optional(s.dims.Activity, "activity_type"),
		optional(s.dims.Coach, "coach_id"),
		"area_id", "item_id",
		s.statusColumn,
		"observed_value", "reasons", "remarks", "before_photo",
		"CAST(resolved AS TEXT)", "after_photo", "resolution_remark", "resolved_at",
		"submitted_at",
	}, ", ")
}

// bodyColumns are written on insert and overwritten on conflict.
var bodyColumns = []string{
	"area_id", "item_id", "observed_value", "reasons", "remarks", "before_photo",
	"resolved", "after_photo", "resolution_remark", "resolved_at", "submitted_at",
}

// upsertSQL builds the keyed insert. A conflicting row is overwritten and
// its resolution cleared; the original row id is kept.
func (s *answerSchema) upsertSQL() string {
	cols := append([]string{"id"}, s.keyColumns()...)
	var updated []string
	if s.dims.Coach {
		updated = append(updated, "coach_id")
	}
	updated = append(updated, s.statusColumn)
	updated = append(updated, bodyColumns...)
	cols = append(cols, updated...)

	sets := make([]string, len(updated))
	for i, col := range updated {
		sets[i] = fmt.Sprintf("%s = excluded.%s", col, col)
	}

	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT(%s) DO UPDATE SET %s",
		s.table,
		strings.Join(cols, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "),
		strings.Join(s.keyColumns(), ", "),
		strings.Join(sets, ", "),
	)
}

// upsertArgs returns the values for upsertSQL in column order.
func (s *answerSchema) upsertArgs(a model.Answer) ([]any, error) {
	reasons, err := model.ReasonsOf(a.Outcome).Encode()
	if err != nil {
		return nil, fmt.Errorf("encode reasons: %w", err)
	}
	var observed any
	if v, ok := model.ValueOf(a.Outcome); ok {
		observed = v
	}

	args := []any{a.ID, a.Key.SessionID, a.Key.QuestionID}
	if s.dims.Compartment {
		args = append(args, a.Key.CompartmentID)
	}
	if s.dims.Activity {
		args = append(args, a.Key.ActivityType)
	}
	if s.dims.Coach {
		args = append(args, a.CoachID)
	}
	args = append(args,
		s.encodeStatus(a.Outcome.Status()),
		a.AreaID,
		a.ItemID,
		observed,
		reasons,
		a.Remarks,
		a.BeforePhoto,
		s.encodeResolved(false),
		"",
		"",
		nil,
		a.SubmittedAt.UnixMilli(),
	)
	return args, nil
}

// resolveSQL is the compare-and-set that resolves an open defect.
func (s *answerSchema) resolveSQL(keyClause string) string {
	return fmt.Sprintf(
		"UPDATE %s SET resolved = ?, after_photo = ?, resolution_remark = ?, resolved_at = ? WHERE %s AND %s AND %s",
		s.table, keyClause, s.deficientSQL, s.unresolvedSQL,
	)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanAnswer reads one row selected with selectColumns and normalizes it.
// Reasons are kept only on deficiencies, an observed value only on measured
// answers, and a resolution only on resolved deficiencies.
func (s *answerSchema) scanAnswer(row rowScanner) (model.Answer, error) {
	var (
		a           model.Answer
		rawStatus   string
		observed    sql.NullFloat64
		rawReasons  string
		rawResolved string
		afterPhoto  string
		remark      string
		resolvedAt  sql.NullInt64
		submittedAt int64
	)

	err := row.Scan(
		&a.ID,
		&a.Key.SessionID,
		&a.Key.QuestionID,
		&a.Key.CompartmentID,
		&a.Key.ActivityType,
		&a.CoachID,
		&a.AreaID,
		&a.ItemID,
		&rawStatus,
		&observed,
		&rawReasons,
		&a.Remarks,
		&a.BeforePhoto,
		&rawResolved,
		&afterPhoto,
		&remark,
		&resolvedAt,
		&submittedAt,
	)
	if err != nil {
		return model.Answer{}, err
	}

	status, err := s.decodeStatus(rawStatus, observed.Valid)
	if err != nil {
		return model.Answer{}, fmt.Errorf("decode %s row %s: %w", s.table, a.ID, err)
	}

	reasons := model.ReasonSet{}
	if status == model.StatusDeficiency {
		reasons, err = model.DecodeReasons(rawReasons)
		if err != nil {
			return model.Answer{}, fmt.Errorf("decode %s row %s: %w", s.table, a.ID, err)
		}
	}

	var value *float64
	if status == model.StatusMeasured && observed.Valid {
		value = &observed.Float64
	}

	a.Outcome, err = model.NewOutcome(status, reasons, value)
	if err != nil {
		return model.Answer{}, fmt.Errorf("decode %s row %s: %w", s.table, a.ID, err)
	}

	if parseResolvedFlag(rawResolved) && model.IsDeficiency(a.Outcome) {
		res := &model.Resolution{AfterPhoto: afterPhoto, Remark: remark}
		if resolvedAt.Valid {
			res.ResolvedAt = fromMillis(resolvedAt.Int64)
		}
		a.Resolution = res
	}
	a.SubmittedAt = fromMillis(submittedAt)

	return a, nil
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
