package service

import (
	"context"

	"github.com/farellandr/encuentro/internal/models"
	"github.com/google/uuid"
)

type MembershipService interface {
	CreateGroup(ctx context.Context, user *models.User) (*models.Group, error)
	JoinGroup(ctx context.Context, user *models.User, code string) (*models.Group, error)
	LeaveGroup(ctx context.Context, user *models.User) (groupDeleted bool, err error)
	DeleteGroup(ctx context.Context, user *models.User) error
	GroupOverview(ctx context.Context, user *models.User) (*GroupOverview, error)
	SweepEmptyGroups(ctx context.Context) (int64, error)
}

type PaymentService interface {
	SubmitPayment(ctx context.Context, user *models.User, input PaymentInput) (*models.Payment, error)
	ListPayments(ctx context.Context, user *models.User) ([]models.Payment, error)
	ReviewPayment(ctx context.Context, email string, approve bool) (*models.User, error)
}

type AttendanceService interface {
	IssueAttendanceCredential(ctx context.Context, user *models.User) (*Credential, error)
	CheckIn(ctx context.Context, requester *models.User, targetID string) (*CheckInResult, error)
	TotalAttendance(ctx context.Context) (int64, error)
}

type AccountService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User, profile Profile) error
	SetSpecial(ctx context.Context, email string, special bool) (*models.User, error)
}
