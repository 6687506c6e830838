package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	identityUseCase "github.com/allisson/panchayath-admin/internal/identity/usecase"
)

// RunPurgeExpiredTokens deletes expired authentication tokens. Intended to be
// invoked periodically (hourly is a reasonable cadence).
//
// Requirements: Database must be accessible.
func RunPurgeExpiredTokens(
	ctx context.Context,
	authUseCase identityUseCase.AuthUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	logger.Info("purging expired tokens")

	count, err := authUseCase.PurgeExpiredTokens(ctx)
	if err != nil {
		return fmt.Errorf("failed to purge expired tokens: %w", err)
	}

	if format == "json" {
		result := map[string]any{"purged_tokens": count}
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		_ = encoder.Encode(result)
	} else {
		_, _ = fmt.Fprintf(writer, "Purged %d expired token(s)\n", count)
	}

	logger.Info("expired tokens purged", slog.Int64("count", count))

	return nil
}
