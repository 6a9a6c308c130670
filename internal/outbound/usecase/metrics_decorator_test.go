package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	outboundDomain "github.com/rmarques/marketgate/internal/outbound/domain"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

type mockDispatchUseCase struct {
	mock.Mock
}

func (m *mockDispatchUseCase) Dispatch(ctx context.Context) (*outboundDomain.Result, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outboundDomain.Result), args.Error(1)
}

func TestDispatchUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RecordsRunAndDeliveries", func(t *testing.T) {
		mockNext := &mockDispatchUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		useCase := NewDispatchUseCaseWithMetrics(mockNext, mockMetrics)

		result := &outboundDomain.Result{Processed: 3, Sent: 2, Failed: 1}
		mockNext.On("Dispatch", ctx).Return(result, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "outbound", "dispatch", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "outbound", "dispatch", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()
		mockMetrics.On("RecordOperation", ctx, "outbound", "message_delivery", "success").Return().Twice()
		mockMetrics.On("RecordOperation", ctx, "outbound", "message_delivery", "error").Return().Once()

		got, err := useCase.Dispatch(ctx)

		assert.NoError(t, err)
		assert.Equal(t, result, got)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorStatus", func(t *testing.T) {
		mockNext := &mockDispatchUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		useCase := NewDispatchUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Dispatch", ctx).Return(nil, errors.New("claim failed")).Once()
		mockMetrics.On("RecordOperation", ctx, "outbound", "dispatch", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "outbound", "dispatch", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		got, err := useCase.Dispatch(ctx)

		assert.Error(t, err)
		assert.Nil(t, got)
		mockMetrics.AssertExpectations(t)
	})
}
