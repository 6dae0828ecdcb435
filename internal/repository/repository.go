package repository

import (
	"context"
	"errors"

	"github.com/farellandr/encuentro/internal/models"
	"github.com/google/uuid"
)

var (
	ErrNotFound             = errors.New("record not found")
	ErrDuplicate            = errors.New("duplicate record")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

type UserRepository interface {
	// Create returns ErrDuplicate when the email is already taken.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, user *models.User) error

	// AssignGroup sets the user's group only if the user has none.
	// It reports whether a row was updated.
	AssignGroup(ctx context.Context, userID, groupID uuid.UUID, responsible bool) (bool, error)
	// ClearGroup removes the user from groupID. It reports whether a row was updated.
	ClearGroup(ctx context.Context, userID, groupID uuid.UUID) (bool, error)
	// ClearGroupMembers removes every member of groupID in one statement.
	ClearGroupMembers(ctx context.Context, groupID uuid.UUID) (int64, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]models.User, error)
	CountByGroup(ctx context.Context, groupID uuid.UUID) (int64, error)

	SetPaymentStatus(ctx context.Context, userID uuid.UUID, status models.PaymentStatus) error
	// TransitionPaymentStatus moves the user from one status to another and
	// reports whether the user was still in the from status.
	TransitionPaymentStatus(ctx context.Context, userID uuid.UUID, from, to models.PaymentStatus) (bool, error)
	// MarkAttendance flips attendance_registered to true for a confirmed user
	// that is not yet registered. It reports whether the flip happened.
	MarkAttendance(ctx context.Context, userID uuid.UUID) (bool, error)
	CountAttendance(ctx context.Context) (int64, error)
	SetSpecial(ctx context.Context, userID uuid.UUID, special bool) error
}

type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Group, error)
	// GetByIDForUpdate loads the group and locks its row until the
	// surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Group, error)
	GetByCodeForUpdate(ctx context.Context, code string) (*models.Group, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteEmpty removes every group no user references.
	DeleteEmpty(ctx context.Context) (int64, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Payment, error)
	// ReviewLatestPending stamps the newest pending payment of the user.
	ReviewLatestPending(ctx context.Context, userID uuid.UUID, status string) (bool, error)
}

// Store groups the repositories. Transaction runs fn against a Store bound
// to one database transaction; a non-nil error from fn rolls it back.
type Store interface {
	Users() UserRepository
	Groups() GroupRepository
	Payments() PaymentRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
