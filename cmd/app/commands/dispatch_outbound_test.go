package commands

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	outboundDomain "github.com/rmarques/marketgate/internal/outbound/domain"
)

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

func TestRunDispatchOutbound(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("text-format", func(t *testing.T) {
		mockUseCase := &mockDispatchUseCase{}
		result := &outboundDomain.Result{
			Processed: 3,
			Sent:      2,
			Failed:    1,
			Errors:    []string{"message abc: mailbox full"},
		}
		mockUseCase.On("Dispatch", ctx).Return(result, nil)

		var out bytes.Buffer
		err := RunDispatchOutbound(ctx, mockUseCase, logger, &out, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Processed: 3")
		require.Contains(t, out.String(), "Sent: 2")
		require.Contains(t, out.String(), "Failed: 1")
		require.Contains(t, out.String(), "mailbox full")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-format", func(t *testing.T) {
		mockUseCase := &mockDispatchUseCase{}
		result := &outboundDomain.Result{Processed: 1, Sent: 1}
		mockUseCase.On("Dispatch", ctx).Return(result, nil)

		var out bytes.Buffer
		err := RunDispatchOutbound(ctx, mockUseCase, logger, &out, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"processed": 1`)
		require.Contains(t, out.String(), `"sent": 1`)
	})

	t.Run("dispatch-error", func(t *testing.T) {
		mockUseCase := &mockDispatchUseCase{}
		mockUseCase.On("Dispatch", ctx).Return(nil, errors.New("claim failed"))

		var out bytes.Buffer
		err := RunDispatchOutbound(ctx, mockUseCase, logger, &out, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to dispatch outbound messages")
	})
}
