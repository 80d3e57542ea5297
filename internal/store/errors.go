package store

import (
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/errors"
)

// classify maps a driver error onto the domain taxonomy. Domain errors pass
// through unchanged, sql.ErrNoRows becomes NOT_FOUND and anything else from
// the driver is STORAGE_UNAVAILABLE.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.Wrap(apperrors.CodeNotFound, op, err)
	}
	return apperrors.Wrap(apperrors.CodeStorageUnavailable, op, err)
}
