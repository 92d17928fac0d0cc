package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/prizelab/giveawayd/internal/adapter/payment"
	"github.com/prizelab/giveawayd/internal/domain/model"
)

// SettlementFacade exposes the subset of application functionality required
// by the reconciler.
type SettlementFacade interface {
	PendingPayments(ctx context.Context, olderThan time.Duration, limit int) ([]string, error)
	CheckPayment(ctx context.Context, reference string) (*model.PaymentIntent, error)
	ConfirmPayment(ctx context.Context, reference string) (int, error)
	CancelPayment(ctx context.Context, reference string) (int, error)
}

// PaymentReconciler polls the provider for stale pending payments and settles
// their entries concurrently. It covers webhooks that never arrived; both
// settlement operations are idempotent so double processing is harmless.
type PaymentReconciler struct {
	facade       SettlementFacade
	pollInterval time.Duration
	pendingAge   time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan string
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPaymentReconciler constructs the reconciliation worker pool.
func NewPaymentReconciler(facade SettlementFacade, pollInterval, pendingAge time.Duration, batchSize, workers int, logger *slog.Logger) *PaymentReconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &PaymentReconciler{
		facade:       facade,
		pollInterval: pollInterval,
		pendingAge:   pendingAge,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan string, batchSize*workers),
	}
}

// Start launches background processing.
func (p *PaymentReconciler) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *PaymentReconciler) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *PaymentReconciler) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *PaymentReconciler) fetchAndDispatch(ctx context.Context) {
	refs, err := p.facade.PendingPayments(ctx, p.pendingAge, p.batchSize)
	if err != nil {
		p.logger.Error("fetch pending payments failed", slog.String("error", err.Error()))
		return
	}
	for _, ref := range refs {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- ref:
		}
	}
}

func (p *PaymentReconciler) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case ref, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handlePayment(ctx, ref)
		}
	}
}

func (p *PaymentReconciler) handlePayment(ctx context.Context, reference string) {
	intent, err := p.facade.CheckPayment(ctx, reference)
	if err != nil {
		switch e := err.(type) {
		case payment.TooManyRequestsError:
			p.logger.Warn("payment provider rate limited", slog.Duration("retry_after", e.RetryAfter))
			time.Sleep(e.RetryAfter)
		default:
			if errors.Is(err, payment.ErrIntentNotFound) {
				// The provider lost the intent; the entries can never be paid.
				if _, err := p.facade.CancelPayment(ctx, reference); err != nil {
					p.logger.Error("cancel payment failed", slog.String("reference", reference), slog.String("error", err.Error()))
				}
				return
			}
			p.logger.Error("payment check failed", slog.String("reference", reference), slog.String("error", err.Error()))
		}
		return
	}

	switch intent.Status {
	case model.PaymentIntentStatusSucceeded:
		if _, err := p.facade.ConfirmPayment(ctx, reference); err != nil {
			p.logger.Error("confirm payment failed", slog.String("reference", reference), slog.String("error", err.Error()))
		}
	case model.PaymentIntentStatusFailed:
		if _, err := p.facade.CancelPayment(ctx, reference); err != nil {
			p.logger.Error("cancel payment failed", slog.String("reference", reference), slog.String("error", err.Error()))
		}
	default:
		// Still pending provider-side; picked up again on a later poll.
	}
}
