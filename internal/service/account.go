package service

import (
	"context"
	"errors"
	"strings"

	"github.com/farellandr/encuentro/internal/models"
	"github.com/farellandr/encuentro/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Profile struct {
	Name         string
	Age          int
	Phone        string
	City         string
	NeedsLodging bool
	Transport    string
	LocalName    string
	Membership   string
	Situation    string
}

type RegisterInput struct {
	Email    string
	Password string
	Profile  Profile
}

type AccountManager struct {
	store      repository.Store
	log        *zap.Logger
	bcryptCost int
}

func NewAccountManager(store repository.Store, log *zap.Logger, bcryptCost int) *AccountManager {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AccountManager{store: store, log: log, bcryptCost: bcryptCost}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *AccountManager) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := NormalizeEmail(input.Email)

	exists, err := a.store.Users().EmailExists(ctx, email)
	if err != nil {
		return nil, persistence("register", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), a.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:         email,
		PasswordHash:  string(hash),
		PaymentStatus: models.PaymentNoPaid,
	}
	applyProfile(user, input.Profile)

	if err := a.store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		a.log.Error("register failed", zap.String("email", email), zap.Error(err))
		return nil, persistence("register", err)
	}

	a.log.Info("user registered", zap.String("user_id", user.ID.String()))
	return user, nil
}

func (a *AccountManager) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := a.store.Users().GetByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, persistence("authenticate", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (a *AccountManager) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := a.store.Users().GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, persistence("get user", err)
	}
	return user, nil
}

func (a *AccountManager) UpdateProfile(ctx context.Context, user *models.User, profile Profile) error {
	updated := *user
	applyProfile(&updated, profile)
	if err := a.store.Users().UpdateProfile(ctx, &updated); err != nil {
		a.log.Error("update profile failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		return persistence("update profile", err)
	}
	applyProfile(user, profile)
	return nil
}

// SetSpecial grants or revokes the staff flag that allows check-in.
func (a *AccountManager) SetSpecial(ctx context.Context, email string, special bool) (*models.User, error) {
	user, err := a.store.Users().GetByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, persistence("set special", err)
	}
	if err := a.store.Users().SetSpecial(ctx, user.ID, special); err != nil {
		return nil, persistence("set special", err)
	}
	user.IsSpecial = special
	a.log.Info("staff flag changed", zap.String("user_id", user.ID.String()), zap.Bool("is_special", special))
	return user, nil
}

func applyProfile(user *models.User, p Profile) {
	user.Name = strings.TrimSpace(p.Name)
	user.Age = p.Age
	user.Phone = strings.TrimSpace(p.Phone)
	user.City = p.City
	user.NeedsLodging = p.NeedsLodging
	user.Transport = p.Transport
	user.LocalName = strings.TrimSpace(p.LocalName)
	user.Membership = p.Membership
	user.Situation = p.Situation
}
