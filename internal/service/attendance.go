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

type CheckInStatus string

const (
	CheckInSuccess           CheckInStatus = "success"
	CheckInAlreadyRegistered CheckInStatus = "already_registered"
	CheckInPaymentPending    CheckInStatus = "payment_pending"
)

type CheckInResult struct {
	Status CheckInStatus
	Target *models.User
}

// Credential is the attendee's check-in pass: the URL staff open and the
// same URL rendered as a PNG QR code.
type Credential struct {
	Payload string
	PNG     []byte
}

// CredentialEncoder turns a payload into a scannable image.
type CredentialEncoder interface {
	Encode(payload string) ([]byte, error)
}

type AttendanceDesk struct {
	store   repository.Store
	encoder CredentialEncoder
	baseURL string
	log     *zap.Logger
}

func NewAttendanceDesk(store repository.Store, encoder CredentialEncoder, baseURL string, log *zap.Logger) *AttendanceDesk {
	return &AttendanceDesk{
		store:   store,
		encoder: encoder,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}
}

// CheckInURL is the stable per-user payload embedded in the QR code.
func (d *AttendanceDesk) CheckInURL(userID uuid.UUID) string {
	return d.baseURL + "/attendance/" + userID.String()
}

// IssueAttendanceCredential returns nil without error unless the user's
// payment is confirmed.
func (d *AttendanceDesk) IssueAttendanceCredential(ctx context.Context, user *models.User) (*Credential, error) {
	if user.PaymentStatus != models.PaymentConfirmed {
		return nil, nil
	}

	payload := d.CheckInURL(user.ID)
	png, err := d.encoder.Encode(payload)
	if err != nil {
		d.log.Error("encode attendance credential failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		return nil, err
	}
	return &Credential{Payload: payload, PNG: png}, nil
}

// CheckIn registers the target's attendance once. The flip is a conditional
// update, so a repeated scan reports AlreadyRegistered instead of applying
// twice.
func (d *AttendanceDesk) CheckIn(ctx context.Context, requester *models.User, targetID string) (*CheckInResult, error) {
	if requester == nil || !requester.IsSpecial {
		return nil, ErrUnauthorized
	}
	id, err := uuid.Parse(strings.TrimSpace(targetID))
	if err != nil {
		return nil, ErrInvalidTarget
	}

	target, err := d.loadTarget(ctx, id)
	if err != nil {
		return nil, err
	}
	if status, done := precheck(target); done {
		return &CheckInResult{Status: status, Target: target}, nil
	}

	flipped, err := d.store.Users().MarkAttendance(ctx, id)
	if err != nil {
		d.log.Error("mark attendance failed", zap.String("target_id", id.String()), zap.Error(err))
		return nil, persistence("check in", err)
	}
	if flipped {
		target.AttendanceRegistered = true
		d.log.Info("attendance registered",
			zap.String("target_id", id.String()),
			zap.String("staff_id", requester.ID.String()))
		return &CheckInResult{Status: CheckInSuccess, Target: target}, nil
	}

	// Another scan or a status change won the race; report what is stored now.
	target, err = d.loadTarget(ctx, id)
	if err != nil {
		return nil, err
	}
	status, done := precheck(target)
	if !done {
		return nil, &PersistenceError{Op: "check in", Err: errors.New("attendance update matched no row")}
	}
	return &CheckInResult{Status: status, Target: target}, nil
}

func precheck(target *models.User) (CheckInStatus, bool) {
	if target.AttendanceRegistered {
		return CheckInAlreadyRegistered, true
	}
	if target.PaymentStatus != models.PaymentConfirmed {
		return CheckInPaymentPending, true
	}
	return "", false
}

func (d *AttendanceDesk) loadTarget(ctx context.Context, id uuid.UUID) (*models.User, error) {
	target, err := d.store.Users().GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrTargetNotFound
	}
	if err != nil {
		return nil, persistence("check in", err)
	}
	return target, nil
}

func (d *AttendanceDesk) TotalAttendance(ctx context.Context) (int64, error) {
	total, err := d.store.Users().CountAttendance(ctx)
	if err != nil {
		return 0, persistence("total attendance", err)
	}
	return total, nil
}
