package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	ManagerID   uint64         `gorm:"not null" json:"manager_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Manager     User            `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	Memberships []ProjectMember `gorm:"foreignKey:ProjectID" json:"-"`
	Tasks       []Task          `gorm:"foreignKey:ProjectID" json:"-"`
}
