package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/panchayath-admin/internal/audit/domain"
	"github.com/allisson/panchayath-admin/internal/database"
	identityDomain "github.com/allisson/panchayath-admin/internal/identity/domain"
	identityService "github.com/allisson/panchayath-admin/internal/identity/service"
	identityUseCase "github.com/allisson/panchayath-admin/internal/identity/usecase"
	"github.com/allisson/panchayath-admin/internal/policy"

	auditUseCase "github.com/allisson/panchayath-admin/internal/audit/usecase"
)

// minPasswordLength mirrors the API-side password policy.
const minPasswordLength = 8

// CreateAdminParams carries the create-admin command inputs.
type CreateAdminParams struct {
	Username string
	Email    string
	Password string
	Role     string
	IsActive bool
	Format   string
}

// RunCreateAdmin creates an administrator account directly against the
// repository, bypassing the policy evaluator. This is the bootstrap path: the
// first super admin has to come from somewhere before any actor exists to
// authorize the API operation. The insert and its audit record (with a nil
// actor, marking a system-originated change) commit in one transaction.
//
// Requirements: Database must be migrated and accessible.
func RunCreateAdmin(
	ctx context.Context,
	txManager database.TxManager,
	adminRepo identityUseCase.AdminRepository,
	passwordService identityService.PasswordService,
	recorder auditUseCase.Recorder,
	logger *slog.Logger,
	params CreateAdminParams,
	writer io.Writer,
) error {
	username := strings.TrimSpace(strings.ToLower(params.Username))
	if username == "" {
		return fmt.Errorf("username is required")
	}

	if len(params.Password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	role := identityDomain.Role(params.Role)
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s (valid options: super_admin, admin, local_admin)", params.Role)
	}

	logger.Info("creating administrator account",
		slog.String("username", username),
		slog.String("role", string(role)),
	)

	hashedPassword, err := passwordService.HashPassword(params.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	admin := &identityDomain.Admin{
		ID:        uuid.Must(uuid.NewV7()),
		Username:  username,
		Email:     params.Email,
		Password:  hashedPassword,
		Role:      role,
		IsActive:  params.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := adminRepo.Create(ctx, admin); err != nil {
			return err
		}
		return recorder.Record(
			ctx,
			nil,
			auditDomain.ActionCreate,
			policy.ResourceAdmins,
			admin.ID.String(),
			nil,
			admin.Snapshot(),
		)
	})
	if err != nil {
		return fmt.Errorf("failed to create administrator: %w", err)
	}

	if params.Format == "json" {
		result := map[string]any{
			"id":        admin.ID.String(),
			"username":  admin.Username,
			"role":      string(admin.Role),
			"is_active": admin.IsActive,
		}
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		_ = encoder.Encode(result)
	} else {
		_, _ = fmt.Fprintf(writer, "Administrator created\n")
		_, _ = fmt.Fprintf(writer, "ID:       %s\n", admin.ID.String())
		_, _ = fmt.Fprintf(writer, "Username: %s\n", admin.Username)
		_, _ = fmt.Fprintf(writer, "Role:     %s\n", admin.Role)
		_, _ = fmt.Fprintf(writer, "Active:   %t\n", admin.IsActive)
	}

	logger.Info("administrator created successfully",
		slog.String("admin_id", admin.ID.String()),
		slog.String("username", admin.Username),
	)

	return nil
}
