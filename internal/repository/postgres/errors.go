package postgres

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres error codes we translate to domain errors.
const (
	pqUniqueViolation    = "23505"
	pqExclusionViolation = "23P01"
)

func isPQError(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}
