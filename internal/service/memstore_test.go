package service_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/farellandr/encuentro/internal/models"
	"github.com/farellandr/encuentro/internal/repository"
	"github.com/google/uuid"
)

// memStore is an in-memory repository.Store. Transaction snapshots every
// table and restores it when fn fails, which is enough to observe rollback
// in single-goroutine tests.
type memStore struct {
	users    map[uuid.UUID]models.User
	groups   map[uuid.UUID]models.Group
	payments []models.Payment

	// failOn makes the named operation (e.g. "Users.AssignGroup") return the error.
	failOn map[string]error
	// beforeTx runs at the start of every transaction, standing in for a
	// concurrent writer that commits first.
	beforeTx func(s *memStore)
	clock    time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:  make(map[uuid.UUID]models.User),
		groups: make(map[uuid.UUID]models.Group),
		failOn: make(map[string]error),
		clock:  time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) Users() repository.UserRepository       { return memUsers{s} }
func (s *memStore) Groups() repository.GroupRepository     { return memGroups{s} }
func (s *memStore) Payments() repository.PaymentRepository { return memPayments{s} }

func (s *memStore) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	if s.beforeTx != nil {
		s.beforeTx(s)
	}
	users := make(map[uuid.UUID]models.User, len(s.users))
	for k, v := range s.users {
		users[k] = v
	}
	groups := make(map[uuid.UUID]models.Group, len(s.groups))
	for k, v := range s.groups {
		groups[k] = v
	}
	payments := append([]models.Payment(nil), s.payments...)

	if err := fn(s); err != nil {
		s.users, s.groups, s.payments = users, groups, payments
		return err
	}
	return nil
}

func (s *memStore) fail(op string) error {
	return s.failOn[op]
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

// seedUser stores a copy of user and returns a pointer to a fresh copy, like
// the session middleware hands to handlers.
func (s *memStore) seedUser(user models.User) *models.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.PaymentStatus == "" {
		user.PaymentStatus = models.PaymentNoPaid
	}
	if user.Email == "" {
		user.Email = user.ID.String() + "@example.com"
	}
	s.users[user.ID] = user
	return s.user(user.ID)
}

func (s *memStore) seedGroup(code string, members ...*models.User) models.Group {
	group := models.Group{ID: uuid.New(), Code: code, CreatedAt: s.tick()}
	s.groups[group.ID] = group
	for i, member := range members {
		stored := s.users[member.ID]
		id := group.ID
		stored.GroupID = &id
		stored.IsGroupResponsible = i == 0
		s.users[member.ID] = stored
		*member = stored
	}
	return group
}

func (s *memStore) user(id uuid.UUID) *models.User {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return &u
}

func (s *memStore) groupByCode(code string) (models.Group, bool) {
	for _, g := range s.groups {
		if g.Code == code {
			return g, true
		}
	}
	return models.Group{}, false
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(ctx context.Context, user *models.User) error {
	if err := r.s.fail("Users.Create"); err != nil {
		return err
	}
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	if err := user.BeforeCreate(nil); err != nil {
		return err
	}
	user.CreatedAt = r.s.tick()
	r.s.users[user.ID] = *user
	return nil
}

func (r memUsers) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if err := r.s.fail("Users.GetByID"); err != nil {
		return nil, err
	}
	if u := r.s.user(id); u != nil {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (r memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return r.s.user(u.ID), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memUsers) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r memUsers) UpdateProfile(ctx context.Context, user *models.User) error {
	if err := r.s.fail("Users.UpdateProfile"); err != nil {
		return err
	}
	stored, ok := r.s.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Name, stored.Age, stored.Phone, stored.City = user.Name, user.Age, user.Phone, user.City
	stored.NeedsLodging, stored.Transport, stored.LocalName = user.NeedsLodging, user.Transport, user.LocalName
	stored.Membership, stored.Situation = user.Membership, user.Situation
	r.s.users[user.ID] = stored
	return nil
}

func (r memUsers) AssignGroup(ctx context.Context, userID, groupID uuid.UUID, responsible bool) (bool, error) {
	if err := r.s.fail("Users.AssignGroup"); err != nil {
		return false, err
	}
	stored, ok := r.s.users[userID]
	if !ok || stored.GroupID != nil {
		return false, nil
	}
	id := groupID
	stored.GroupID = &id
	stored.IsGroupResponsible = responsible
	r.s.users[userID] = stored
	return true, nil
}

func (r memUsers) ClearGroup(ctx context.Context, userID, groupID uuid.UUID) (bool, error) {
	if err := r.s.fail("Users.ClearGroup"); err != nil {
		return false, err
	}
	stored, ok := r.s.users[userID]
	if !ok || stored.GroupID == nil || *stored.GroupID != groupID {
		return false, nil
	}
	stored.LeaveGroup()
	r.s.users[userID] = stored
	return true, nil
}

func (r memUsers) ClearGroupMembers(ctx context.Context, groupID uuid.UUID) (int64, error) {
	if err := r.s.fail("Users.ClearGroupMembers"); err != nil {
		return 0, err
	}
	var n int64
	for id, u := range r.s.users {
		if u.GroupID != nil && *u.GroupID == groupID {
			u.LeaveGroup()
			r.s.users[id] = u
			n++
		}
	}
	return n, nil
}

func (r memUsers) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]models.User, error) {
	var members []models.User
	for _, u := range r.s.users {
		if u.GroupID != nil && *u.GroupID == groupID {
			members = append(members, u)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
	return members, nil
}

func (r memUsers) CountByGroup(ctx context.Context, groupID uuid.UUID) (int64, error) {
	if err := r.s.fail("Users.CountByGroup"); err != nil {
		return 0, err
	}
	members, _ := r.ListByGroup(ctx, groupID)
	return int64(len(members)), nil
}

func (r memUsers) SetPaymentStatus(ctx context.Context, userID uuid.UUID, status models.PaymentStatus) error {
	if err := r.s.fail("Users.SetPaymentStatus"); err != nil {
		return err
	}
	if !status.Valid() {
		return repository.ErrInvalidPaymentStatus
	}
	stored, ok := r.s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.PaymentStatus = status
	r.s.users[userID] = stored
	return nil
}

func (r memUsers) TransitionPaymentStatus(ctx context.Context, userID uuid.UUID, from, to models.PaymentStatus) (bool, error) {
	if err := r.s.fail("Users.TransitionPaymentStatus"); err != nil {
		return false, err
	}
	if !to.Valid() {
		return false, repository.ErrInvalidPaymentStatus
	}
	stored, ok := r.s.users[userID]
	if !ok || stored.PaymentStatus != from {
		return false, nil
	}
	stored.PaymentStatus = to
	r.s.users[userID] = stored
	return true, nil
}

func (r memUsers) MarkAttendance(ctx context.Context, userID uuid.UUID) (bool, error) {
	if err := r.s.fail("Users.MarkAttendance"); err != nil {
		return false, err
	}
	stored, ok := r.s.users[userID]
	if !ok || stored.AttendanceRegistered || stored.PaymentStatus != models.PaymentConfirmed {
		return false, nil
	}
	stored.AttendanceRegistered = true
	r.s.users[userID] = stored
	return true, nil
}

func (r memUsers) CountAttendance(ctx context.Context) (int64, error) {
	var n int64
	for _, u := range r.s.users {
		if u.AttendanceRegistered {
			n++
		}
	}
	return n, nil
}

func (r memUsers) SetSpecial(ctx context.Context, userID uuid.UUID, special bool) error {
	stored, ok := r.s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.IsSpecial = special
	r.s.users[userID] = stored
	return nil
}

type memGroups struct{ s *memStore }

func (r memGroups) Create(ctx context.Context, group *models.Group) error {
	if err := r.s.fail("Groups.Create"); err != nil {
		return err
	}
	if _, taken := r.s.groupByCode(group.Code); taken {
		return errors.New("duplicate key value violates unique constraint \"groups_code_key\"")
	}
	if err := group.BeforeCreate(nil); err != nil {
		return err
	}
	group.CreatedAt = r.s.tick()
	r.s.groups[group.ID] = *group
	return nil
}

func (r memGroups) GetByID(ctx context.Context, id uuid.UUID) (*models.Group, error) {
	g, ok := r.s.groups[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &g, nil
}

func (r memGroups) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Group, error) {
	return r.GetByID(ctx, id)
}

func (r memGroups) GetByCodeForUpdate(ctx context.Context, code string) (*models.Group, error) {
	if g, ok := r.s.groupByCode(code); ok {
		return &g, nil
	}
	return nil, repository.ErrNotFound
}

func (r memGroups) CodeExists(ctx context.Context, code string) (bool, error) {
	if err := r.s.fail("Groups.CodeExists"); err != nil {
		return false, err
	}
	_, ok := r.s.groupByCode(code)
	return ok, nil
}

func (r memGroups) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.s.fail("Groups.Delete"); err != nil {
		return err
	}
	delete(r.s.groups, id)
	return nil
}

func (r memGroups) DeleteEmpty(ctx context.Context) (int64, error) {
	var n int64
	for id := range r.s.groups {
		if count, _ := (memUsers{r.s}).CountByGroup(ctx, id); count == 0 {
			delete(r.s.groups, id)
			n++
		}
	}
	return n, nil
}

type memPayments struct{ s *memStore }

func (r memPayments) Create(ctx context.Context, payment *models.Payment) error {
	if err := r.s.fail("Payments.Create"); err != nil {
		return err
	}
	if err := payment.BeforeCreate(nil); err != nil {
		return err
	}
	payment.CreatedAt = r.s.tick()
	r.s.payments = append(r.s.payments, *payment)
	return nil
}

func (r memPayments) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Payment, error) {
	var list []models.Payment
	for i := len(r.s.payments) - 1; i >= 0; i-- {
		if r.s.payments[i].UserID == userID {
			list = append(list, r.s.payments[i])
		}
	}
	return list, nil
}

func (r memPayments) ReviewLatestPending(ctx context.Context, userID uuid.UUID, status string) (bool, error) {
	for i := len(r.s.payments) - 1; i >= 0; i-- {
		p := &r.s.payments[i]
		if p.UserID == userID && p.Status == models.ReviewPending {
			p.Status = status
			return true, nil
		}
	}
	return false, nil
}
