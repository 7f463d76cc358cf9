// Package fulfillment delivers purchased artifacts after a confirmed payment.
// Dispatch is fire-and-forget relative to the request that triggered it; a
// worker pool drains a per-process queue keyed by order reference.
package fulfillment

import (
	"context"
	"sync"
	"time"

	"github.com/parulcreation/projectshop/internal/core/domain"
	"github.com/parulcreation/projectshop/internal/core/port"
	"go.uber.org/zap"
)

type Dispatcher struct {
	logger *zap.Logger
	repo   port.Repository
	mailer port.Mailer
	files  port.FileStore

	queue    chan string
	mu       sync.Mutex
	inflight map[string]struct{}

	attempts int
	backoff  time.Duration
}

func NewDispatcher(repo port.Repository, mailer port.Mailer, files port.FileStore,
	log *zap.Logger) (*Dispatcher, error) {
	return &Dispatcher{
		logger:   log,
		repo:     repo,
		mailer:   mailer,
		files:    files,
		queue:    make(chan string, 64),
		inflight: make(map[string]struct{}),
		attempts: 3,
		backoff:  2 * time.Second,
	}, nil
}

// Dispatch enqueues delivery for an order. A reference already queued or being
// processed is dropped, so a duplicate confirmation signal cannot fan out into
// two deliveries.
func (d *Dispatcher) Dispatch(reference string) {
	d.mu.Lock()
	if _, ok := d.inflight[reference]; ok {
		d.mu.Unlock()
		d.logger.Debug("delivery already in flight", zap.String("order", reference))
		return
	}
	d.inflight[reference] = struct{}{}
	d.mu.Unlock()

	d.logger.Debug("> put order in queue (dispatch)", zap.String("order", reference))
	d.queue <- reference
	d.logger.Debug("< put order in queue (dispatch)", zap.String("order", reference))
}

func (d *Dispatcher) StartWorkers(ctx context.Context, workers int) {
	for i := 0; i < workers; i++ {
		go func() {
			for {
				select {
				case reference := <-d.queue:
					d.process(ctx, reference)
					d.release(reference)
				case <-ctx.Done():
					d.logger.Debug("Finished worker")
					return
				}
			}
		}()
	}
}

func (d *Dispatcher) release(reference string) {
	d.mu.Lock()
	delete(d.inflight, reference)
	d.mu.Unlock()
}

func (d *Dispatcher) process(ctx context.Context, reference string) {
	log := d.logger.With(zap.String("order", reference))

	order, err := d.repo.OrderByReference(ctx, reference)
	if err != nil {
		log.Error("delivery lookup failed", zap.Error(err))
		return
	}
	if order.Status != domain.OrderStatusPaid {
		log.Warn("delivery requested for unpaid order", zap.String("status", string(order.Status)))
		return
	}
	if order.Fulfillment == domain.FulfillmentSent {
		log.Debug("artifact already delivered")
		return
	}

	project, err := d.repo.ReadProject(ctx, order.ProjectID)
	if err != nil {
		log.Error("delivery project lookup failed", zap.Error(err))
		return
	}

	path := d.files.Path(project.FileName)

	var lastErr error
	for attempt := 1; attempt <= d.attempts; attempt++ {
		lastErr = d.mailer.SendArtifact(order.CustomerEmail, order.CustomerName, project.Title, path)
		if lastErr == nil {
			if _, err := d.repo.UpdateFulfillmentState(ctx, reference, domain.FulfillmentSent); err != nil {
				log.Error("delivery bookkeeping failed", zap.Error(err))
			}
			log.Info("artifact delivered", zap.Int("attempt", attempt))
			return
		}

		log.Warn("delivery attempt failed",
			zap.Int("attempt", attempt), zap.Int("of", d.attempts), zap.Error(lastErr))

		if attempt < d.attempts {
			timer := time.NewTimer(d.backoff)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return
			}
		}
	}

	// Payment stays PAID; only the delivery bookkeeping records the failure.
	if _, err := d.repo.UpdateFulfillmentState(ctx, reference, domain.FulfillmentFailed); err != nil {
		log.Error("delivery bookkeeping failed", zap.Error(err))
	}
	log.Error("delivery attempts exhausted",
		zap.Error(domain.ErrDeliveryFailed), zap.NamedError("cause", lastErr))
}
