package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	permissionUseCase "github.com/allisson/panchayath-admin/internal/permission/usecase"
)

// RunSeedPermissions installs the builtin permission catalog. The operation is
// idempotent: rows already present are left untouched, so the command is safe
// to run on every deploy.
//
// Requirements: Database must be migrated and accessible.
func RunSeedPermissions(
	ctx context.Context,
	useCase permissionUseCase.PermissionUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	logger.Info("seeding builtin permission catalog")

	inserted, err := useCase.SeedBuiltin(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed permissions: %w", err)
	}

	if format == "json" {
		result := map[string]any{"inserted_permissions": inserted}
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		_ = encoder.Encode(result)
	} else {
		_, _ = fmt.Fprintf(writer, "Seeded %d new permission(s)\n", inserted)
	}

	logger.Info("permission catalog seeded", slog.Int64("inserted", inserted))

	return nil
}
