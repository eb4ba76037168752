package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/usecase"
)

// OperationRepository implements usecase.OperationRepository.
type OperationRepository struct {
	pool *pgxpool.Pool
}

// NewOperationRepository creates a new OperationRepository.
func NewOperationRepository(pool *pgxpool.Pool) *OperationRepository {
	return &OperationRepository{pool: pool}
}

const operationColumns = `id, kind, amount, account_id, to_account_id, category_id, rate, to_amount, date, description, created_at, updated_at`

// Create inserts an operation inside the given transaction.
func (r *OperationRepository) Create(ctx context.Context, tx usecase.Transaction, op *domain.Operation) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO operations (id, kind, amount, account_id, to_account_id, category_id, rate, to_amount, date, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, $10, $11, $12)`,
		op.ID, string(op.Kind), op.Amount,
		op.AccountID, op.ToAccountID, op.CategoryID,
		op.Rate, op.ToAmount,
		op.Date, op.Description,
		op.CreatedAt, op.UpdatedAt,
	)

	return err
}

// GetByID retrieves an operation by ID.
func (r *OperationRepository) GetByID(ctx context.Context, id string) (*domain.Operation, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+operationColumns+` FROM operations WHERE id = $1`, id)
	return scanOperation(row)
}

// GetByIDForUpdate retrieves an operation with a FOR UPDATE lock.
func (r *OperationRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Operation, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `SELECT `+operationColumns+` FROM operations WHERE id = $1 FOR UPDATE`, id)

	return scanOperation(row)
}

// Update rewrites all mutable operation fields inside the transaction.
func (r *OperationRepository) Update(ctx context.Context, tx usecase.Transaction, op *domain.Operation) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE operations
		SET amount = $2, category_id = NULLIF($3, ''), rate = $4, to_amount = $5, date = $6, description = $7, updated_at = $8
		WHERE id = $1`,
		op.ID, op.Amount, op.CategoryID, op.Rate, op.ToAmount, op.Date, op.Description, op.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOperationNotFound
	}

	return nil
}

// Delete removes an operation row inside the transaction.
func (r *OperationRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM operations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOperationNotFound
	}

	return nil
}

// ListByAccount lists operations touching the account, newest first.
func (r *OperationRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Operation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+operationColumns+` FROM operations
		WHERE account_id = $1 OR to_account_id = $1
		ORDER BY date DESC, id DESC
		LIMIT $2 OFFSET $3`, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOperations(rows)
}

// ListByAccountBetween lists operations with from <= date < to, ascending.
func (r *OperationRepository) ListByAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]*domain.Operation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+operationColumns+` FROM operations
		WHERE (account_id = $1 OR to_account_id = $1) AND date >= $2 AND date < $3
		ORDER BY date, id`, accountID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOperations(rows)
}

// ListByAccountSince lists operations dated on or after from, ascending.
func (r *OperationRepository) ListByAccountSince(ctx context.Context, accountID string, from time.Time) ([]*domain.Operation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+operationColumns+` FROM operations
		WHERE (account_id = $1 OR to_account_id = $1) AND date >= $2
		ORDER BY date, id`, accountID, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOperations(rows)
}

// ListAllByAccount lists every operation touching the account, ascending.
func (r *OperationRepository) ListAllByAccount(ctx context.Context, accountID string) ([]*domain.Operation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+operationColumns+` FROM operations
		WHERE account_id = $1 OR to_account_id = $1
		ORDER BY date, id`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOperations(rows)
}

// ListAllByAccountForUpdate lists every operation touching the account inside
// the transaction, locking the rows until commit.
func (r *OperationRepository) ListAllByAccountForUpdate(ctx context.Context, tx usecase.Transaction, accountID string) ([]*domain.Operation, error) {
	pgxTx := tx.(*Tx).PgxTx()

	rows, err := pgxTx.Query(ctx, `
		SELECT `+operationColumns+` FROM operations
		WHERE account_id = $1 OR to_account_id = $1
		ORDER BY date, id
		FOR UPDATE`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOperations(rows)
}

// CountByAccount counts operations touching the account.
func (r *OperationRepository) CountByAccount(ctx context.Context, accountID string) (int, error) {
	var count int

	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM operations WHERE account_id = $1 OR to_account_id = $1`,
		accountID).Scan(&count)

	return count, err
}

// ReassignAccount re-homes every operation referencing fromID onto toID.
func (r *OperationRepository) ReassignAccount(ctx context.Context, tx usecase.Transaction, fromID, toID string) error {
	pgxTx := tx.(*Tx).PgxTx()

	if _, err := pgxTx.Exec(ctx,
		`UPDATE operations SET account_id = $2 WHERE account_id = $1`, fromID, toID); err != nil {
		return err
	}

	_, err := pgxTx.Exec(ctx,
		`UPDATE operations SET to_account_id = $2 WHERE to_account_id = $1`, fromID, toID)

	return err
}

// GetAdjustmentOn returns the account's adjustment operation dated on the
// given calendar day (UTC).
func (r *OperationRepository) GetAdjustmentOn(ctx context.Context, tx usecase.Transaction, accountID string, day time.Time) (*domain.Operation, error) {
	pgxTx := tx.(*Tx).PgxTx()

	dayStart := time.Date(day.UTC().Year(), day.UTC().Month(), day.UTC().Day(), 0, 0, 0, 0, time.UTC)

	row := pgxTx.QueryRow(ctx, `
		SELECT `+operationColumns+` FROM operations
		WHERE account_id = $1 AND kind = 'adjustment' AND date >= $2 AND date < $3
		LIMIT 1
		FOR UPDATE`, accountID, dayStart, dayStart.AddDate(0, 0, 1))

	return scanOperation(row)
}

func scanOperation(row pgx.Row) (*domain.Operation, error) {
	var (
		op          domain.Operation
		kind        string
		toAccountID *string
		categoryID  *string
	)

	err := row.Scan(&op.ID, &kind, &op.Amount, &op.AccountID, &toAccountID, &categoryID,
		&op.Rate, &op.ToAmount, &op.Date, &op.Description, &op.CreatedAt, &op.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOperationNotFound
		}

		return nil, err
	}

	op.Kind = domain.OperationKind(kind)
	if toAccountID != nil {
		op.ToAccountID = *toAccountID
	}
	if categoryID != nil {
		op.CategoryID = *categoryID
	}

	return &op, nil
}

func collectOperations(rows pgx.Rows) ([]*domain.Operation, error) {
	var ops []*domain.Operation

	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}

	return ops, rows.Err()
}
