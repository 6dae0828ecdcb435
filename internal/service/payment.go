package service

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/farellandr/encuentro/internal/models"
	"github.com/farellandr/encuentro/internal/repository"
	"go.uber.org/zap"
)

// PaymentInput is one bank-transfer proof as typed by the attendee.
type PaymentInput struct {
	Amount          string
	Reference       string
	Concept         string
	BankIssuer      string
	BankReceiver    string
	TransactionDate string
	ReceiptPath     string
}

type PaymentLedger struct {
	store repository.Store
	log   *zap.Logger
}

func NewPaymentLedger(store repository.Store, log *zap.Logger) *PaymentLedger {
	return &PaymentLedger{store: store, log: log}
}

// amountPattern is a plain decimal with at most two places. Commas are only
// accepted as thousands separators ("1,200.00").
var amountPattern = regexp.MustCompile(`^(\d{1,3}(,\d{3})+|\d+)(\.\d{1,2})?$`)

// ParseAmount accepts a positive amount in pesos as written on a Mexican
// transfer receipt.
func ParseAmount(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if !amountPattern.MatchString(raw) {
		return 0, ErrInvalidAmount
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil || math.IsInf(amount, 0) || amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return math.Round(amount*100) / 100, nil
}

// SubmitPayment records the proof and moves the user to PENDING from any
// prior status, so a rejected attendee can simply submit again.
func (l *PaymentLedger) SubmitPayment(ctx context.Context, user *models.User, input PaymentInput) (*models.Payment, error) {
	amount, err := ParseAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		UserID:          user.ID,
		Amount:          amount,
		Reference:       strings.TrimSpace(input.Reference),
		Concept:         strings.TrimSpace(input.Concept),
		BankIssuer:      strings.TrimSpace(input.BankIssuer),
		BankReceiver:    strings.TrimSpace(input.BankReceiver),
		TransactionDate: strings.TrimSpace(input.TransactionDate),
		ReceiptPath:     input.ReceiptPath,
		Status:          models.ReviewPending,
	}

	err = l.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.Payments().Create(ctx, payment); err != nil {
			return err
		}
		return tx.Users().SetPaymentStatus(ctx, user.ID, models.PaymentPending)
	})
	if err != nil {
		l.log.Error("submit payment failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		return nil, persistence("submit payment", err)
	}

	previous := user.PaymentStatus
	user.PaymentStatus = models.PaymentPending
	l.log.Info("payment submitted",
		zap.String("user_id", user.ID.String()),
		zap.String("payment_id", payment.ID.String()),
		zap.Float64("amount", payment.Amount),
		zap.String("previous_status", previous.String()))
	return payment, nil
}

func (l *PaymentLedger) ListPayments(ctx context.Context, user *models.User) ([]models.Payment, error) {
	payments, err := l.store.Payments().ListByUser(ctx, user.ID)
	if err != nil {
		return nil, persistence("list payments", err)
	}
	return payments, nil
}

// ReviewPayment is the operator decision on a PENDING user: approve moves
// them to CONFIRMED, otherwise REJECTED. The newest pending proof is stamped
// with the same outcome. The status only moves if it is still PENDING when
// the update runs.
func (l *PaymentLedger) ReviewPayment(ctx context.Context, email string, approve bool) (*models.User, error) {
	user, err := l.store.Users().GetByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, persistence("review payment", err)
	}
	if user.PaymentStatus != models.PaymentPending {
		return nil, ErrNoPendingPayment
	}

	status, review := models.PaymentRejected, models.ReviewRejected
	if approve {
		status, review = models.PaymentConfirmed, models.ReviewConfirmed
	}

	err = l.store.Transaction(ctx, func(tx repository.Store) error {
		moved, err := tx.Users().TransitionPaymentStatus(ctx, user.ID, models.PaymentPending, status)
		if err != nil {
			return err
		}
		if !moved {
			return ErrNoPendingPayment
		}
		stamped, err := tx.Payments().ReviewLatestPending(ctx, user.ID, review)
		if err != nil {
			return err
		}
		if !stamped {
			l.log.Warn("no pending payment row to stamp", zap.String("user_id", user.ID.String()))
		}
		return nil
	})
	if err != nil {
		if !IsDomainError(err) {
			l.log.Error("review payment failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		}
		return nil, persistence("review payment", err)
	}

	user.PaymentStatus = status
	l.log.Info("payment reviewed",
		zap.String("user_id", user.ID.String()),
		zap.String("status", status.String()))
	return user, nil
}
