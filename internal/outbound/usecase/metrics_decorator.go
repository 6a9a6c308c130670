package usecase

import (
	"context"
	"time"

	"github.com/rmarques/marketgate/internal/metrics"
	outboundDomain "github.com/rmarques/marketgate/internal/outbound/domain"
)

// dispatchUseCaseWithMetrics decorates DispatchUseCase with metrics instrumentation.
type dispatchUseCaseWithMetrics struct {
	next    DispatchUseCase
	metrics metrics.BusinessMetrics
}

// NewDispatchUseCaseWithMetrics wraps a DispatchUseCase with metrics recording.
func NewDispatchUseCaseWithMetrics(useCase DispatchUseCase, m metrics.BusinessMetrics) DispatchUseCase {
	return &dispatchUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Dispatch records metrics for dispatch runs and per-message delivery outcomes.
func (d *dispatchUseCaseWithMetrics) Dispatch(ctx context.Context) (*outboundDomain.Result, error) {
	start := time.Now()
	result, err := d.next.Dispatch(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "outbound", "dispatch", status)
	d.metrics.RecordDuration(ctx, "outbound", "dispatch", time.Since(start), status)

	if result != nil {
		for range result.Sent {
			d.metrics.RecordOperation(ctx, "outbound", "message_delivery", "success")
		}
		for range result.Failed {
			d.metrics.RecordOperation(ctx, "outbound", "message_delivery", "error")
		}
	}

	return result, err
}
