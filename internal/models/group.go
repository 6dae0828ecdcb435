package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Group is a lodging group. Members reference it through User.GroupID;
// the group itself holds no back-reference.
type Group struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Code      string    `gorm:"type:varchar(10);unique;not null"`
	CreatedAt time.Time
}

func (group *Group) BeforeCreate(tx *gorm.DB) (err error) {
	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}
	return
}
