package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	apperrors "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/errors"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/model"
)

// CreateSession inserts a new session. A session id that already exists is
// INVALID_STATE; sessions are never overwritten.
func (s *Store) CreateSession(ctx context.Context, sess model.Session) error {
	if !sess.Module.Valid() {
		return apperrors.Newf(apperrors.CodeValidation, "unknown module kind %q", sess.Module)
	}
	if sess.Status == "" {
		sess.Status = model.SessionInProgress
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, coach_ref, module, status, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		sess.ID,
		sess.CoachRef,
		string(sess.Module),
		string(sess.Status),
		sess.CreatedAt.UnixMilli(),
		nullMillis(sess.CompletedAt),
	)
	if err != nil {
		return classify("create session", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return classify("create session", err)
	}
	if n == 0 {
		return apperrors.WithMetadata(apperrors.CodeInvalidState,
			fmt.Sprintf("session %q already exists", sess.ID), map[string]string{"session_id": sess.ID})
	}
	return nil
}

// GetSession returns the session with the given id.
func (s *Store) GetSession(ctx context.Context, id string) (model.Session, error) {
	return getSession(ctx, s.db, id)
}

// ListSessions returns every session, oldest first.
func (s *Store) ListSessions(ctx context.Context) ([]model.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, coach_ref, module, status, created_at, completed_at
		FROM sessions
		ORDER BY created_at ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, classify("list sessions", err)
	}
	defer rows.Close()

	sessions := []model.Session{}
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, classify("list sessions", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list sessions", err)
	}
	return sessions, nil
}

// CompleteSession locks an IN_PROGRESS session. The transition is a single
// conditional UPDATE; a session that is already COMPLETED is INVALID_STATE.
func (s *Store) CompleteSession(ctx context.Context, id string, at time.Time) (model.Session, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Session{}, classify("complete session: begin tx", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE sessions SET status = ?, completed_at = ?
		WHERE id = ? AND status = ?
	`, string(model.SessionCompleted), at.UnixMilli(), id, string(model.SessionInProgress))
	if err != nil {
		return model.Session{}, classify("complete session", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return model.Session{}, classify("complete session", err)
	}

	sess, err := getSession(ctx, tx, id)
	if err != nil {
		return model.Session{}, err
	}
	if n == 0 {
		return model.Session{}, lockedErr(sess)
	}

	if err := tx.Commit(); err != nil {
		return model.Session{}, classify("complete session: commit", err)
	}
	return sess, nil
}

func getSession(ctx context.Context, q querier, id string) (model.Session, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, coach_ref, module, status, created_at, completed_at
		FROM sessions
		WHERE id = ?
	`, id)

	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return model.Session{}, apperrors.WithMetadata(apperrors.CodeNotFound,
			fmt.Sprintf("session %q not found", id), map[string]string{"session_id": id})
	}
	if err != nil {
		return model.Session{}, classify("get session", err)
	}
	return sess, nil
}

func scanSession(row rowScanner) (model.Session, error) {
	var (
		sess        model.Session
		module      string
		status      string
		createdAt   int64
		completedAt sql.NullInt64
	)
	if err := row.Scan(&sess.ID, &sess.CoachRef, &module, &status, &createdAt, &completedAt); err != nil {
		return model.Session{}, err
	}
	sess.Module = model.ModuleKind(module)
	sess.Status = model.SessionStatus(status)
	sess.CreatedAt = fromMillis(createdAt)
	if completedAt.Valid {
		t := fromMillis(completedAt.Int64)
		sess.CompletedAt = &t
	}
	return sess, nil
}

// lockedErr reports a write against a COMPLETED session.
func lockedErr(sess model.Session) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidState,
		fmt.Sprintf("session %q is %s", sess.ID, sess.Status), map[string]string{"session_id": sess.ID})
}

func nullMillis(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UnixMilli()
}
