package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/rmarques/marketgate/internal/auth/domain"
	authUseCase "github.com/rmarques/marketgate/internal/auth/usecase"
)

// RunCreateCredential issues a new API key for an account. The plain key
// is printed exactly once; only its hash is persisted.
//
// Requirements: Database must be migrated and the account must exist.
func RunCreateCredential(
	ctx context.Context,
	credentialUseCase authUseCase.CredentialUseCase,
	logger *slog.Logger,
	accountID string,
	name string,
	scopes string,
	expiresInDays int,
	format string,
	io IOTuple,
) error {
	logger.Info("creating new credential", slog.String("name", name))

	parsedAccountID, err := uuid.Parse(accountID)
	if err != nil {
		return fmt.Errorf("invalid account ID: %w", err)
	}

	parsedScopes, err := parseScopes(scopes)
	if err != nil {
		return err
	}

	var expiresAt *time.Time
	if expiresInDays > 0 {
		expiry := time.Now().UTC().AddDate(0, 0, expiresInDays)
		expiresAt = &expiry
	}

	input := &authDomain.CreateCredentialInput{
		AccountID: parsedAccountID,
		Name:      name,
		Scopes:    parsedScopes,
		ExpiresAt: expiresAt,
	}

	output, err := credentialUseCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create credential: %w", err)
	}

	if format == "json" {
		writeJSON(map[string]string{
			"credential_id": output.Credential.ID.String(),
			"api_key":       output.PlainKey,
		}, io.Writer)
	} else {
		outputCredentialText(output, io.Writer)
	}

	logger.Info("credential created successfully",
		slog.String("credential_id", output.Credential.ID.String()),
		slog.String("account_id", parsedAccountID.String()),
	)

	return nil
}

// parseScopes converts a comma-separated scope string to domain scopes.
// Returns an error if any scope token is unknown.
func parseScopes(scopes string) ([]authDomain.Scope, error) {
	var parsed []authDomain.Scope
	for _, part := range strings.Split(scopes, ",") {
		scope := authDomain.Scope(strings.TrimSpace(part))
		if scope == "" {
			continue
		}
		if !scope.Valid() {
			return nil, fmt.Errorf(
				"invalid scope: %s (valid options: '*', %s)",
				scope, scopeList(),
			)
		}
		parsed = append(parsed, scope)
	}

	if len(parsed) == 0 {
		return nil, fmt.Errorf("at least one scope is required")
	}

	return parsed, nil
}

func scopeList() string {
	tokens := make([]string, len(authDomain.AllScopes))
	for i, scope := range authDomain.AllScopes {
		tokens[i] = string(scope)
	}
	return strings.Join(tokens, ", ")
}

// outputCredentialText outputs the result in human-readable text format.
func outputCredentialText(output *authDomain.CreateCredentialOutput, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nCredential created successfully!")
	_, _ = fmt.Fprintf(writer, "Credential ID: %s\n", output.Credential.ID.String())
	_, _ = fmt.Fprintf(writer, "API Key: %s\n", output.PlainKey)
	_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The API key is shown only once. Store it securely.")
}
