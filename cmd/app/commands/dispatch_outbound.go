package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	outboundUseCase "github.com/rmarques/marketgate/internal/outbound/usecase"
)

// RunDispatchOutbound runs one dispatch pass over the pending outbound
// message queue and prints the per-run counters. Intended for cron-style
// scheduling as an alternative to the HTTP trigger.
//
// Requirements: Database must be migrated and the mail transport configured.
func RunDispatchOutbound(
	ctx context.Context,
	dispatchUseCase outboundUseCase.DispatchUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	logger.Info("running outbound dispatch pass")

	result, err := dispatchUseCase.Dispatch(ctx)
	if err != nil {
		return fmt.Errorf("failed to dispatch outbound messages: %w", err)
	}

	if format == "json" {
		writeJSON(result, writer)
	} else {
		_, _ = fmt.Fprintf(writer, "Processed: %d\n", result.Processed)
		_, _ = fmt.Fprintf(writer, "Sent: %d\n", result.Sent)
		_, _ = fmt.Fprintf(writer, "Failed: %d\n", result.Failed)
		for _, deliveryErr := range result.Errors {
			_, _ = fmt.Fprintf(writer, "Error: %s\n", deliveryErr)
		}
	}

	logger.Info("outbound dispatch pass completed",
		slog.Int("processed", result.Processed),
		slog.Int("sent", result.Sent),
		slog.Int("failed", result.Failed),
	)

	return nil
}
