package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/allisson/panchayath-admin/internal/audit/domain"
	identityDomain "github.com/allisson/panchayath-admin/internal/identity/domain"
	"github.com/allisson/panchayath-admin/internal/policy"
	"github.com/allisson/panchayath-admin/internal/settings/domain"

	apperrors "github.com/allisson/panchayath-admin/internal/errors"
)

// MockTxManager is a mock implementation of database.TxManager
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	// Execute the function to test the logic inside
	return fn(ctx)
}

// MockSettingRepository is a mock implementation of SettingRepository
type MockSettingRepository struct {
	mock.Mock
}

func (m *MockSettingRepository) Create(ctx context.Context, setting *domain.Setting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

func (m *MockSettingRepository) Update(ctx context.Context, setting *domain.Setting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

func (m *MockSettingRepository) GetByKey(ctx context.Context, key string) (*domain.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Setting), args.Error(1)
}

func (m *MockSettingRepository) List(ctx context.Context) ([]*domain.Setting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Setting), args.Error(1)
}

// MockRecorder is a mock implementation of audit usecase.Recorder
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(
	ctx context.Context,
	actor *identityDomain.Admin,
	action auditDomain.Action,
	resourceName, recordID string,
	oldData, newData map[string]any,
) error {
	args := m.Called(ctx, actor, action, resourceName, recordID, oldData, newData)
	return args.Error(0)
}

func activeActor() *identityDomain.Admin {
	return &identityDomain.Admin{
		ID:       uuid.Must(uuid.NewV7()),
		Username: "clerk",
		Role:     identityDomain.RoleAdmin,
		IsActive: true,
	}
}

func settingFixture(key string, value any) *domain.Setting {
	now := time.Now().UTC()
	return &domain.Setting{
		ID:        uuid.Must(uuid.NewV7()),
		Key:       key,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newSettingUseCaseForTest(
	settingRepo *MockSettingRepository,
	txManager *MockTxManager,
	recorder *MockRecorder,
) SettingUseCase {
	return NewSettingUseCase(settingRepo, policy.NewEvaluator(nil), txManager, recorder)
}

func TestSettingUseCase_Set(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_NewKeyAuditedAsCreate", func(t *testing.T) {
		settingRepo := &MockSettingRepository{}
		txManager := &MockTxManager{}
		recorder := &MockRecorder{}
		actor := activeActor()

		txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		settingRepo.On("GetByKey", mock.Anything, "tax.rate").
			Return(nil, domain.ErrSettingNotFound).Once()
		settingRepo.On("Create", mock.Anything, mock.MatchedBy(func(setting *domain.Setting) bool {
			return setting.Key == "tax.rate" &&
				setting.UpdatedBy != nil && *setting.UpdatedBy == actor.ID
		})).Return(nil).Once()
		recorder.On(
			"Record", mock.Anything, actor, auditDomain.ActionCreate, "settings",
			"tax.rate", mock.Anything, mock.Anything,
		).Return(nil).Once()

		uc := newSettingUseCaseForTest(settingRepo, txManager, recorder)
		setting, err := uc.Set(ctx, actor, &domain.SetInput{Key: "tax.rate", Value: 0.12})

		assert.NoError(t, err)
		require.NotNil(t, setting)
		assert.Equal(t, 0.12, setting.Value)
		recorder.AssertExpectations(t)
	})

	t.Run("Success_ExistingKeyAuditedAsUpdate", func(t *testing.T) {
		settingRepo := &MockSettingRepository{}
		txManager := &MockTxManager{}
		recorder := &MockRecorder{}
		actor := activeActor()
		existing := settingFixture("tax.rate", 0.1)

		txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		settingRepo.On("GetByKey", mock.Anything, "tax.rate").Return(existing, nil).Once()
		settingRepo.On("Update", mock.Anything, mock.MatchedBy(func(setting *domain.Setting) bool {
			return setting.Value == 0.15
		})).Return(nil).Once()
		recorder.On(
			"Record", mock.Anything, actor, auditDomain.ActionUpdate, "settings",
			"tax.rate",
			mock.MatchedBy(func(oldData map[string]any) bool {
				return oldData["value"] == 0.1
			}),
			mock.MatchedBy(func(newData map[string]any) bool {
				return newData["value"] == 0.15
			}),
		).Return(nil).Once()

		uc := newSettingUseCaseForTest(settingRepo, txManager, recorder)
		setting, err := uc.Set(ctx, actor, &domain.SetInput{Key: "tax.rate", Value: 0.15})

		assert.NoError(t, err)
		require.NotNil(t, setting)
		recorder.AssertExpectations(t)
	})

	t.Run("Error_BlankKey", func(t *testing.T) {
		settingRepo := &MockSettingRepository{}
		txManager := &MockTxManager{}
		recorder := &MockRecorder{}
		actor := activeActor()

		uc := newSettingUseCaseForTest(settingRepo, txManager, recorder)
		setting, err := uc.Set(ctx, actor, &domain.SetInput{Key: "   "})

		assert.Nil(t, setting)
		assert.True(t, apperrors.Is(err, domain.ErrInvalidSettingKey))
		settingRepo.AssertNotCalled(t, "GetByKey")
	})

	t.Run("Error_InactiveActorForbidden", func(t *testing.T) {
		settingRepo := &MockSettingRepository{}
		txManager := &MockTxManager{}
		recorder := &MockRecorder{}
		actor := activeActor()
		actor.IsActive = false

		uc := newSettingUseCaseForTest(settingRepo, txManager, recorder)
		setting, err := uc.Set(ctx, actor, &domain.SetInput{Key: "tax.rate", Value: 1})

		assert.Nil(t, setting)
		assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
	})
}

func TestSettingUseCase_SetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_AllApplied", func(t *testing.T) {
		settingRepo := &MockSettingRepository{}
		txManager := &MockTxManager{}
		recorder := &MockRecorder{}
		actor := activeActor()

		txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		settingRepo.On("GetByKey", mock.Anything, mock.Anything).
			Return(nil, domain.ErrSettingNotFound).Twice()
		settingRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Twice()
		recorder.On(
			"Record", mock.Anything, actor, auditDomain.ActionCreate, "settings",
			mock.Anything, mock.Anything, mock.Anything,
		).Return(nil).Twice()

		uc := newSettingUseCaseForTest(settingRepo, txManager, recorder)
		err := uc.SetAll(ctx, actor, []*domain.SetInput{
			{Key: "tax.rate", Value: 0.12},
			{Key: "office.name", Value: "District Office"},
		})

		assert.NoError(t, err)
		settingRepo.AssertExpectations(t)
	})

	t.Run("Error_InvalidEntryRejectedBeforeTx", func(t *testing.T) {
		settingRepo := &MockSettingRepository{}
		txManager := &MockTxManager{}
		recorder := &MockRecorder{}
		actor := activeActor()

		uc := newSettingUseCaseForTest(settingRepo, txManager, recorder)
		err := uc.SetAll(ctx, actor, []*domain.SetInput{
			{Key: "tax.rate", Value: 0.12},
			{Key: ""},
		})

		assert.True(t, apperrors.Is(err, domain.ErrInvalidSettingKey))
		txManager.AssertNotCalled(t, "WithTx")
		settingRepo.AssertNotCalled(t, "Create")
	})
}

func TestSettingUseCase_Reads(t *testing.T) {
	ctx := context.Background()

	t.Run("Get", func(t *testing.T) {
		settingRepo := &MockSettingRepository{}
		txManager := &MockTxManager{}
		recorder := &MockRecorder{}
		actor := activeActor()
		existing := settingFixture("tax.rate", 0.12)

		settingRepo.On("GetByKey", ctx, "tax.rate").Return(existing, nil).Once()

		uc := newSettingUseCaseForTest(settingRepo, txManager, recorder)
		setting, err := uc.Get(ctx, actor, "tax.rate")

		assert.NoError(t, err)
		assert.Equal(t, existing, setting)
	})

	t.Run("Get_UnknownKey", func(t *testing.T) {
		settingRepo := &MockSettingRepository{}
		txManager := &MockTxManager{}
		recorder := &MockRecorder{}
		actor := activeActor()

		settingRepo.On("GetByKey", ctx, "missing").
			Return(nil, domain.ErrSettingNotFound).Once()

		uc := newSettingUseCaseForTest(settingRepo, txManager, recorder)
		setting, err := uc.Get(ctx, actor, "missing")

		assert.Nil(t, setting)
		assert.True(t, apperrors.Is(err, domain.ErrSettingNotFound))
	})

	t.Run("List", func(t *testing.T) {
		settingRepo := &MockSettingRepository{}
		txManager := &MockTxManager{}
		recorder := &MockRecorder{}
		actor := activeActor()
		all := []*domain.Setting{settingFixture("a", 1), settingFixture("b", 2)}

		settingRepo.On("List", ctx).Return(all, nil).Once()

		uc := newSettingUseCaseForTest(settingRepo, txManager, recorder)
		settings, err := uc.List(ctx, actor)

		assert.NoError(t, err)
		assert.Equal(t, all, settings)
	})
}
