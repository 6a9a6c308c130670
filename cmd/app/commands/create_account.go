package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	authDomain "github.com/rmarques/marketgate/internal/auth/domain"
	authUseCase "github.com/rmarques/marketgate/internal/auth/usecase"
)

// RunCreateAccount creates a new seller account on the given plan.
// Outputs the account ID in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateAccount(
	ctx context.Context,
	accountUseCase authUseCase.AccountUseCase,
	logger *slog.Logger,
	name string,
	email string,
	plan string,
	format string,
	io IOTuple,
) error {
	logger.Info("creating new account", slog.String("name", name))

	input := &authDomain.CreateAccountInput{
		Name:  name,
		Email: email,
		Plan:  authDomain.Plan(plan),
	}

	account, err := accountUseCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	if format == "json" {
		writeJSON(map[string]string{
			"account_id": account.ID.String(),
			"plan":       string(account.Plan),
		}, io.Writer)
	} else {
		outputAccountText(account, io.Writer)
	}

	logger.Info("account created successfully",
		slog.String("account_id", account.ID.String()),
		slog.String("plan", string(account.Plan)),
	)

	return nil
}

// outputAccountText outputs the result in human-readable text format.
func outputAccountText(account *authDomain.Account, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nAccount created successfully!")
	_, _ = fmt.Fprintf(writer, "Account ID: %s\n", account.ID.String())
	_, _ = fmt.Fprintf(writer, "Plan: %s\n", account.Plan)
}
