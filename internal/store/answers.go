package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	apperrors "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/errors"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/model"
)

// UpsertAnswer writes an answer by key into the table of its session's
// module. An existing row with the same key is overwritten and its
// resolution cleared. Returns the stored record.
//
// Errors:
//   - NOT_FOUND: the session does not exist
//   - INVALID_STATE: the session is COMPLETED
//   - VALIDATION: the key carries a part the module does not record
func (s *Store) UpsertAnswer(ctx context.Context, a model.Answer) (model.Answer, error) {
	if err := a.Key.Validate(); err != nil {
		return model.Answer{}, err
	}
	if err := a.Validate(); err != nil {
		return model.Answer{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Answer{}, classify("upsert answer: begin tx", err)
	}
	defer tx.Rollback()

	schema, err := writableSchema(ctx, tx, a.Key)
	if err != nil {
		return model.Answer{}, err
	}

	args, err := schema.upsertArgs(a)
	if err != nil {
		return model.Answer{}, fmt.Errorf("upsert answer: %w", err)
	}
	if _, err := tx.ExecContext(ctx, schema.upsertSQL(), args...); err != nil {
		return model.Answer{}, classify("upsert answer", err)
	}

	stored, err := getAnswer(ctx, tx, schema, a.Key)
	if err != nil {
		return model.Answer{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Answer{}, classify("upsert answer: commit", err)
	}
	return stored, nil
}

// GetAnswer returns the answer addressed by key.
func (s *Store) GetAnswer(ctx context.Context, key model.AnswerKey) (model.Answer, error) {
	if err := key.Validate(); err != nil {
		return model.Answer{}, err
	}
	sess, err := getSession(ctx, s.db, key.SessionID)
	if err != nil {
		return model.Answer{}, err
	}
	schema, err := schemaFor(sess.Module)
	if err != nil {
		return model.Answer{}, err
	}
	if err := schema.dims.CheckKey(key); err != nil {
		return model.Answer{}, err
	}
	return getAnswer(ctx, s.db, schema, key)
}

// ListAnswers returns the session's answers matching the filter, ordered by
// area, question, then the module's extra key columns.
//
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) ListAnswers(ctx context.Context, f model.AnswerFilter) ([]model.Answer, error) {
	sess, err := getSession(ctx, s.db, f.SessionID)
	if err != nil {
		return nil, err
	}
	schema, err := schemaFor(sess.Module)
	if err != nil {
		return nil, err
	}

	where := []string{"session_id = ?"}
	args := []any{f.SessionID}
	if f.AreaID != "" {
		where = append(where, "area_id = ?")
		args = append(args, f.AreaID)
	}
	if len(f.QuestionIDs) > 0 {
		where = append(where, "question_id IN ("+strings.TrimSuffix(strings.Repeat("?, ", len(f.QuestionIDs)), ", ")+")")
		for _, q := range f.QuestionIDs {
			args = append(args, q)
		}
	}
	if f.PendingOnly {
		where = append(where, schema.deficientSQL, schema.unresolvedSQL)
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s %s",
		schema.selectColumns(), schema.table, strings.Join(where, " AND "), schema.orderBy())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("list answers", err)
	}
	defer rows.Close()

	answers := []model.Answer{}
	for rows.Next() {
		a, err := schema.scanAnswer(rows)
		if err != nil {
			return nil, classify("list answers", err)
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list answers", err)
	}
	return answers, nil
}

// ResolveDefect marks an open defect resolved. The precondition (the row is
// a deficiency and not yet resolved) is part of the UPDATE itself, so two
// concurrent resolutions cannot both succeed: the loser affects no rows and
// gets INVALID_STATE. Nothing is written on any error path.
func (s *Store) ResolveDefect(ctx context.Context, key model.AnswerKey, res model.Resolution) (model.Answer, error) {
	if err := key.Validate(); err != nil {
		return model.Answer{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Answer{}, classify("resolve defect: begin tx", err)
	}
	defer tx.Rollback()

	schema, err := writableSchema(ctx, tx, key)
	if err != nil {
		return model.Answer{}, err
	}

	keyClause, keyArgs := schema.keyWhere(key)
	args := append([]any{
		schema.encodeResolved(true),
		res.AfterPhoto,
		res.Remark,
		res.ResolvedAt.UnixMilli(),
	}, keyArgs...)

	result, err := tx.ExecContext(ctx, schema.resolveSQL(keyClause), args...)
	if err != nil {
		return model.Answer{}, classify("resolve defect", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return model.Answer{}, classify("resolve defect", err)
	}

	current, err := getAnswer(ctx, tx, schema, key)
	if err != nil {
		return model.Answer{}, err
	}
	if n == 0 {
		return model.Answer{}, notResolvableErr(current)
	}

	if err := tx.Commit(); err != nil {
		return model.Answer{}, classify("resolve defect: commit", err)
	}
	return current, nil
}

// writableSchema loads the key's session inside q, rejects a locked session
// and returns the module's answer table.
func writableSchema(ctx context.Context, q querier, key model.AnswerKey) (*answerSchema, error) {
	sess, err := getSession(ctx, q, key.SessionID)
	if err != nil {
		return nil, err
	}
	if sess.Locked() {
		return nil, lockedErr(sess)
	}
	schema, err := schemaFor(sess.Module)
	if err != nil {
		return nil, err
	}
	if err := schema.dims.CheckKey(key); err != nil {
		return nil, err
	}
	return schema, nil
}

func getAnswer(ctx context.Context, q querier, schema *answerSchema, key model.AnswerKey) (model.Answer, error) {
	keyClause, args := schema.keyWhere(key)
	row := q.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM %s WHERE %s", schema.selectColumns(), schema.table, keyClause),
		args...)

	a, err := schema.scanAnswer(row)
	if err == sql.ErrNoRows {
		return model.Answer{}, apperrors.WithMetadata(apperrors.CodeNotFound,
			fmt.Sprintf("answer %s not found", key), map[string]string{
				"session_id":  key.SessionID,
				"question_id": key.QuestionID,
			})
	}
	if err != nil {
		return model.Answer{}, classify("get answer", err)
	}
	return a, nil
}

// notResolvableErr explains why the resolution guard rejected a.
func notResolvableErr(a model.Answer) error {
	meta := map[string]string{"session_id": a.Key.SessionID, "question_id": a.Key.QuestionID}
	if !model.IsDeficiency(a.Outcome) {
		return apperrors.WithMetadata(apperrors.CodeInvalidState,
			fmt.Sprintf("answer %s is %s, not a defect", a.Key, a.Outcome.Status()), meta)
	}
	return apperrors.WithMetadata(apperrors.CodeInvalidState,
		fmt.Sprintf("defect %s is already resolved", a.Key), meta)
}
