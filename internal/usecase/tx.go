package usecase

import "context"

// singleAttempt runs the closure once. The default strategy when no retrier
// is installed.
type singleAttempt struct{}

func (singleAttempt) Retry(_ context.Context, fn func() error) error { return fn() }

// runInTx executes fn inside a transaction and commits on success. The whole
// closure is rerun through the retry strategy, so every attempt begins a
// fresh transaction and re-reads whatever it locked.
func runInTx(ctx context.Context, retry RetryStrategy, tm TransactionManager, fn func(tx Transaction) error) error {
	return retry.Retry(ctx, func() error {
		tx, err := tm.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := fn(tx); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
}
