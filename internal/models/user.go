package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                   uuid.UUID     `gorm:"type:uuid;primary_key"`
	Email                string        `gorm:"unique;not null"`
	PasswordHash         string        `gorm:"not null"`
	Name                 string        `gorm:"not null"`
	Age                  int           `gorm:"not null"`
	Phone                string        `gorm:"not null"`
	City                 string        `gorm:"not null"`
	NeedsLodging         bool          `gorm:"not null;default:false"`
	Transport            string        `gorm:"not null"`
	LocalName            string        `gorm:"not null"`
	Membership           string        `gorm:"not null"`
	Situation            string        `gorm:"not null"`
	PaymentStatus        PaymentStatus `gorm:"type:varchar(20);not null;default:'NO_PAID';index"`
	IsSpecial            bool          `gorm:"not null;default:false"`
	AttendanceRegistered bool          `gorm:"not null;default:false;index"`
	IsGroupResponsible   bool          `gorm:"not null;default:false"`
	GroupID              *uuid.UUID    `gorm:"type:uuid;index"`
	Group                *Group        `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	Payments             []Payment     `gorm:"foreignKey:UserID"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.PaymentStatus == "" {
		user.PaymentStatus = PaymentNoPaid
	}
	return
}

// InGroup reports whether the user currently references a group.
func (user *User) InGroup() bool {
	return user.GroupID != nil && *user.GroupID != uuid.Nil
}

// LeaveGroup clears the in-memory membership fields.
func (user *User) LeaveGroup() {
	user.GroupID = nil
	user.IsGroupResponsible = false
}
