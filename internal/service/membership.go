package service

import (
	"context"
	"errors"
	"strings"

	"github.com/farellandr/encuentro/internal/models"
	"github.com/farellandr/encuentro/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GroupOverview is what the group management page shows. Group is nil when
// the user is not in a group.
type GroupOverview struct {
	Group   *models.Group
	Members []models.User
}

type MembershipOption func(*MembershipManager)

// WithCodeGenerator replaces the random group code source.
func WithCodeGenerator(gen CodeGenerator) MembershipOption {
	return func(m *MembershipManager) {
		m.generate = gen
	}
}

// WithMaxCodeAttempts bounds how many candidate codes CreateGroup draws
// before giving up with ErrCodeSpaceExhausted.
func WithMaxCodeAttempts(n int) MembershipOption {
	return func(m *MembershipManager) {
		if n > 0 {
			m.maxAttempts = n
		}
	}
}

type MembershipManager struct {
	store       repository.Store
	log         *zap.Logger
	generate    CodeGenerator
	maxAttempts int
}

func NewMembershipManager(store repository.Store, log *zap.Logger, opts ...MembershipOption) *MembershipManager {
	m := &MembershipManager{
		store:       store,
		log:         log,
		generate:    RandomGroupCode,
		maxAttempts: DefaultCodeAttempts,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MembershipManager) CreateGroup(ctx context.Context, user *models.User) (*models.Group, error) {
	if user.InGroup() {
		return nil, ErrAlreadyMember
	}

	code, err := m.unusedCode(ctx)
	if err != nil {
		m.log.Error("no group code available", zap.String("user_id", user.ID.String()), zap.Error(err))
		return nil, persistence("create group", err)
	}

	group := &models.Group{Code: code}
	err = m.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.Groups().Create(ctx, group); err != nil {
			return err
		}
		assigned, err := tx.Users().AssignGroup(ctx, user.ID, group.ID, true)
		if err != nil {
			return err
		}
		if !assigned {
			return ErrAlreadyMember
		}
		return nil
	})
	if err != nil {
		m.logFailure("create group", user.ID, err)
		return nil, persistence("create group", err)
	}

	user.GroupID = &group.ID
	user.IsGroupResponsible = true
	m.log.Info("group created",
		zap.String("user_id", user.ID.String()),
		zap.String("group_code", group.Code))
	return group, nil
}

func (m *MembershipManager) unusedCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < m.maxAttempts; attempt++ {
		code, err := m.generate()
		if err != nil {
			return "", err
		}
		exists, err := m.store.Groups().CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
		m.log.Debug("group code collision", zap.String("group_code", code), zap.Int("attempt", attempt+1))
	}
	return "", ErrCodeSpaceExhausted
}

// NormalizeGroupCode trims and upper-cases user input.
func NormalizeGroupCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (m *MembershipManager) JoinGroup(ctx context.Context, user *models.User, code string) (*models.Group, error) {
	code = NormalizeGroupCode(code)
	if user.InGroup() {
		return nil, ErrAlreadyMember
	}
	if code == "" {
		return nil, ErrGroupNotFound
	}

	var group *models.Group
	err := m.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		group, err = tx.Groups().GetByCodeForUpdate(ctx, code)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrGroupNotFound
		}
		if err != nil {
			return err
		}
		assigned, err := tx.Users().AssignGroup(ctx, user.ID, group.ID, false)
		if err != nil {
			return err
		}
		if !assigned {
			return ErrAlreadyMember
		}
		return nil
	})
	if err != nil {
		m.logFailure("join group", user.ID, err)
		return nil, persistence("join group", err)
	}

	user.GroupID = &group.ID
	user.IsGroupResponsible = false
	m.log.Info("group joined",
		zap.String("user_id", user.ID.String()),
		zap.String("group_code", group.Code))
	return group, nil
}

// LeaveGroup removes the user from their group and deletes the group when
// nobody is left. Both happen in one transaction with the group row locked,
// so a concurrent join either lands before the emptiness check or finds the
// group gone.
func (m *MembershipManager) LeaveGroup(ctx context.Context, user *models.User) (bool, error) {
	if !user.InGroup() {
		return false, ErrNotInGroup
	}
	groupID := *user.GroupID

	deleted := false
	err := m.store.Transaction(ctx, func(tx repository.Store) error {
		_, err := tx.Groups().GetByIDForUpdate(ctx, groupID)
		groupExists := err == nil
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		cleared, err := tx.Users().ClearGroup(ctx, user.ID, groupID)
		if err != nil {
			return err
		}
		if !cleared {
			return ErrNotInGroup
		}
		if !groupExists {
			return nil
		}

		remaining, err := tx.Users().CountByGroup(ctx, groupID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			if err := tx.Groups().Delete(ctx, groupID); err != nil {
				return err
			}
			deleted = true
		}
		return nil
	})
	if err != nil {
		m.logFailure("leave group", user.ID, err)
		return false, persistence("leave group", err)
	}

	user.LeaveGroup()
	m.log.Info("group left",
		zap.String("user_id", user.ID.String()),
		zap.String("group_id", groupID.String()),
		zap.Bool("group_deleted", deleted))
	return deleted, nil
}

func (m *MembershipManager) DeleteGroup(ctx context.Context, user *models.User) error {
	if !user.InGroup() {
		return ErrNotInGroup
	}
	if !user.IsGroupResponsible {
		return ErrNotResponsible
	}
	groupID := *user.GroupID

	var released int64
	missing := false
	err := m.store.Transaction(ctx, func(tx repository.Store) error {
		_, err := tx.Groups().GetByIDForUpdate(ctx, groupID)
		if errors.Is(err, repository.ErrNotFound) {
			// Drop the caller's stale reference so they can create or join again.
			missing = true
			_, err = tx.Users().ClearGroup(ctx, user.ID, groupID)
			return err
		}
		if err != nil {
			return err
		}
		released, err = tx.Users().ClearGroupMembers(ctx, groupID)
		if err != nil {
			return err
		}
		return tx.Groups().Delete(ctx, groupID)
	})
	if err != nil {
		m.logFailure("delete group", user.ID, err)
		return persistence("delete group", err)
	}

	user.LeaveGroup()
	if missing {
		return ErrGroupNotFound
	}
	m.log.Info("group deleted",
		zap.String("user_id", user.ID.String()),
		zap.String("group_id", groupID.String()),
		zap.Int64("members_released", released))
	return nil
}

func (m *MembershipManager) GroupOverview(ctx context.Context, user *models.User) (*GroupOverview, error) {
	overview := &GroupOverview{}
	if !user.InGroup() {
		return overview, nil
	}

	group, err := m.store.Groups().GetByID(ctx, *user.GroupID)
	if errors.Is(err, repository.ErrNotFound) {
		return overview, nil
	}
	if err != nil {
		return nil, persistence("group overview", err)
	}
	members, err := m.store.Users().ListByGroup(ctx, group.ID)
	if err != nil {
		return nil, persistence("group overview", err)
	}

	overview.Group = group
	overview.Members = members
	return overview, nil
}

// SweepEmptyGroups deletes groups no user references. Leave and delete
// already keep this at zero; the sweep catches rows left behind by manual
// database edits.
func (m *MembershipManager) SweepEmptyGroups(ctx context.Context) (int64, error) {
	n, err := m.store.Groups().DeleteEmpty(ctx)
	if err != nil {
		return 0, persistence("sweep empty groups", err)
	}
	return n, nil
}

func (m *MembershipManager) logFailure(op string, userID uuid.UUID, err error) {
	if IsDomainError(err) {
		return
	}
	m.log.Error(op+" failed", zap.String("user_id", userID.String()), zap.Error(err))
}
