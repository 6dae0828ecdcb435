package handlers_test

import (
	"context"

	"github.com/farellandr/encuentro/internal/models"
	"github.com/farellandr/encuentro/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockAccounts struct {
	mock.Mock
}

func (m *MockAccounts) Register(ctx context.Context, input service.RegisterInput) (*models.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAccounts) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAccounts) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAccounts) UpdateProfile(ctx context.Context, user *models.User, profile service.Profile) error {
	args := m.Called(ctx, user, profile)
	return args.Error(0)
}

func (m *MockAccounts) SetSpecial(ctx context.Context, email string, special bool) (*models.User, error) {
	args := m.Called(ctx, email, special)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockMembership struct {
	mock.Mock
}

func (m *MockMembership) CreateGroup(ctx context.Context, user *models.User) (*models.Group, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockMembership) JoinGroup(ctx context.Context, user *models.User, code string) (*models.Group, error) {
	args := m.Called(ctx, user, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockMembership) LeaveGroup(ctx context.Context, user *models.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

func (m *MockMembership) DeleteGroup(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockMembership) GroupOverview(ctx context.Context, user *models.User) (*service.GroupOverview, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GroupOverview), args.Error(1)
}

func (m *MockMembership) SweepEmptyGroups(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockPayments struct {
	mock.Mock
}

func (m *MockPayments) SubmitPayment(ctx context.Context, user *models.User, input service.PaymentInput) (*models.Payment, error) {
	args := m.Called(ctx, user, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPayments) ListPayments(ctx context.Context, user *models.User) ([]models.Payment, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *MockPayments) ReviewPayment(ctx context.Context, email string, approve bool) (*models.User, error) {
	args := m.Called(ctx, email, approve)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockAttendance struct {
	mock.Mock
}

func (m *MockAttendance) IssueAttendanceCredential(ctx context.Context, user *models.User) (*service.Credential, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Credential), args.Error(1)
}

func (m *MockAttendance) CheckIn(ctx context.Context, requester *models.User, targetID string) (*service.CheckInResult, error) {
	args := m.Called(ctx, requester, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CheckInResult), args.Error(1)
}

func (m *MockAttendance) TotalAttendance(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
