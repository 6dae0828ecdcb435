package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReviewPending   = "pending"
	ReviewConfirmed = "confirmed"
	ReviewRejected  = "rejected"
)

// Payment is one submitted bank-transfer proof. Rows are append-only.
type Payment struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount          float64   `gorm:"type:decimal(10,2);not null"`
	Reference       string    `gorm:"not null"`
	Concept         string    `gorm:"not null"`
	BankIssuer      string    `gorm:"not null"`
	BankReceiver    string    `gorm:"not null"`
	TransactionDate string    `gorm:"type:varchar(20);not null"`
	ReceiptPath     string
	Status          string `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (payment *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	if payment.Status == "" {
		payment.Status = ReviewPending
	}
	return
}
