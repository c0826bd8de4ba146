package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"todo-list/internal/errors"
)

// querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// HandleDatabaseError converts a driver error into an AppError.
// Context cancellation surfaces as a timeout.
func HandleDatabaseError(operation string, err error) error {
	if converted := errors.FromContextError(operation, err); converted != err {
		return converted
	}
	storageErr := errors.NewStorageError(operation, err)
	if isUniqueViolation(err) {
		storageErr.With("constraint", "unique")
	}
	return storageErr
}

// modernc.org/sqlite reports constraint failures only through the message.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// HandleNoRowsError maps sql.ErrNoRows to a not found error for entityType.
func HandleNoRowsError(err error, entityType string, id string) error {
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.NewNotFoundError(entityType, id)
	}
	return err
}

// ValidateRowsAffected reports not found when a write matched nothing.
func ValidateRowsAffected(result sql.Result, entityType string, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return HandleDatabaseError("get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError(entityType, id)
	}
	return nil
}

// ExecuteWithLastInsertID runs an insert and returns the new row's seq.
func ExecuteWithLastInsertID(ctx context.Context, q querier, operation, query string, args ...any) (int64, error) {
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, HandleDatabaseError(operation, err)
	}
	seq, err := result.LastInsertId()
	if err != nil {
		return 0, HandleDatabaseError(operation, err)
	}
	return seq, nil
}

// ExecuteWithRowsAffected runs a write that must touch the row identified by id.
func ExecuteWithRowsAffected(ctx context.Context, q querier, operation, query, entityType, id string, args ...any) error {
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return HandleDatabaseError(operation, err)
	}
	return ValidateRowsAffected(result, entityType, id)
}

// QuerySingle scans one row, mapping an empty result to not found.
func QuerySingle[T any](ctx context.Context, q querier, query string, scan func(Scanner) (*T, error), entityType, id string, args ...any) (*T, error) {
	result, err := scan(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if notFound := HandleNoRowsError(err, entityType, id); notFound != err {
			return nil, notFound
		}
		return nil, HandleDatabaseError("get "+entityType, err)
	}
	return result, nil
}

// QueryMultiple scans every row of query.
func QueryMultiple[T any](ctx context.Context, q querier, query string, scan func(Rows) ([]*T, error), entityType string, args ...any) ([]*T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandleDatabaseError("list "+entityType, err)
	}
	defer rows.Close()

	results, err := scan(rows)
	if err != nil {
		return nil, HandleDatabaseError("scan "+entityType, err)
	}
	return results, nil
}
