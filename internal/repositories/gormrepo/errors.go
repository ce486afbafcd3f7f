package gormrepo

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"profile-api/internal/repositories"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// errorClass groups driver failures by how callers should react to them
type errorClass int

const (
	classUnknown errorClass = iota
	classNotFound
	classDuplicate
	classConstraint
	classConnection
)

// PostgreSQL SQLSTATE codes and classes
const (
	pgUniqueViolation      = "23505"
	pgIntegrityClass       = "23"
	pgConnectionClass      = "08"
	pgInsufficientRes      = "53"
	pgOperatorIntervention = "57"
)

// MySQL server error numbers
const (
	myDuplicateEntry     = 1062
	myColumnCannotBeNull = 1048
	myRowIsReferenced    = 1451
	myNoReferencedRow    = 1452
	myCheckViolated      = 3819
)

// classify maps gorm and driver errors onto a small set of outcomes
func classify(err error) errorClass {
	switch {
	case err == nil:
		return classUnknown
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, sql.ErrNoRows):
		return classNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return classDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated), errors.Is(err, gorm.ErrCheckConstraintViolated):
		return classConstraint
	case errors.Is(err, driver.ErrBadConn), errors.Is(err, sql.ErrConnDone),
		errors.Is(err, mysqldriver.ErrInvalidConn),
		errors.Is(err, context.DeadlineExceeded):
		return classConnection
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return classifySQLite(sqliteErr)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyPostgres(pgErr)
	}

	var pgConnErr *pgconn.ConnectError
	if errors.As(err, &pgConnErr) {
		return classConnection
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		return classifyMySQL(myErr)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return classConnection
	}

	// database/sql reports a closed pool without a typed error
	if strings.Contains(err.Error(), "sql: database is closed") {
		return classConnection
	}

	return classUnknown
}

func classifySQLite(err sqlite3.Error) errorClass {
	switch err.Code {
	case sqlite3.ErrConstraint:
		if err.ExtendedCode == sqlite3.ErrConstraintUnique || err.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return classDuplicate
		}
		return classConstraint
	case sqlite3.ErrCantOpen, sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrIoErr,
		sqlite3.ErrNotADB, sqlite3.ErrReadonly, sqlite3.ErrFull, sqlite3.ErrCorrupt:
		return classConnection
	}
	return classUnknown
}

func classifyPostgres(err *pgconn.PgError) errorClass {
	switch {
	case err.Code == pgUniqueViolation:
		return classDuplicate
	case strings.HasPrefix(err.Code, pgIntegrityClass):
		return classConstraint
	case strings.HasPrefix(err.Code, pgConnectionClass),
		strings.HasPrefix(err.Code, pgInsufficientRes),
		strings.HasPrefix(err.Code, pgOperatorIntervention):
		return classConnection
	}
	return classUnknown
}

func classifyMySQL(err *mysqldriver.MySQLError) errorClass {
	switch err.Number {
	case myDuplicateEntry:
		return classDuplicate
	case myColumnCannotBeNull, myRowIsReferenced, myNoReferencedRow, myCheckViolated:
		return classConstraint
	}
	return classUnknown
}

// classifyError wraps err in the repository error matching its class
func classifyError(op, entity, id string, err error) error {
	if err == nil {
		return nil
	}

	var repoErr *repositories.RepositoryError
	if errors.As(err, &repoErr) {
		return err
	}

	switch classify(err) {
	case classNotFound:
		return repositories.NotFoundError(entity, id)
	case classDuplicate:
		return repositories.DuplicateError(op, entity, "email", err)
	case classConstraint:
		return repositories.ConstraintError(op, entity, err)
	case classConnection:
		return repositories.ConnectionError(op, entity, err)
	}

	return repositories.NewRepositoryError(op, entity, id, err)
}
