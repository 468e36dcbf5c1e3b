package postgres

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

const codeUndefinedTable = "42P01"

// describe adds a migration hint when the archive table is missing.
func describe(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == codeUndefinedTable {
		return fmt.Errorf("%w (run migrations or set DB_AUTO_MIGRATE=true)", err)
	}
	return err
}
