package postgres

import (
	"database/sql"
	"errors"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func nullIntToRank(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	rank := int(v.Int64)
	return &rank
}
