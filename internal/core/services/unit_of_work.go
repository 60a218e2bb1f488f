package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/pos_posting_engine/internal/apperrors"
	portsrepo "github.com/SscSPs/pos_posting_engine/internal/core/ports/repositories"
	"github.com/SscSPs/pos_posting_engine/internal/metrics"
	"github.com/SscSPs/pos_posting_engine/internal/middleware"
)

// DefaultMaxAttempts bounds how often a unit of work is retried after retryable conflicts.
const DefaultMaxAttempts = 3

const retryBackoff = 15 * time.Millisecond

// unitOfWork runs a function atomically and retries it when storage reports
// a retryable conflict. fn may run more than once, so it must derive all of
// its results from what it reads inside the unit.
type unitOfWork struct {
	txm         portsrepo.TransactionManager
	maxAttempts int
	metrics     *metrics.Recorder
}

func newUnitOfWork(txm portsrepo.TransactionManager, maxAttempts int, rec *metrics.Recorder) unitOfWork {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return unitOfWork{txm: txm, maxAttempts: maxAttempts, metrics: rec}
}

func (u unitOfWork) run(ctx context.Context, op string, fn portsrepo.TxFunc) error {
	start := time.Now()
	defer func() { u.metrics.ObserveUnitDuration(op, time.Since(start)) }()

	for attempt := 1; ; attempt++ {
		err := u.txm.WithinTx(ctx, fn)
		if err == nil || !errors.Is(err, apperrors.ErrRetryable) {
			return err
		}

		if attempt >= u.maxAttempts {
			u.metrics.ObserveConflict(op)
			return fmt.Errorf("%w: %s gave up after %d attempts: %s", apperrors.ErrConcurrencyConflict, op, attempt, err.Error())
		}

		u.metrics.ObserveRetry(op)
		middleware.GetLoggerFromCtx(ctx).Debug("Retrying unit of work after storage conflict",
			slog.String("operation", op),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}
}
