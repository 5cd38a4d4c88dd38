package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(200);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	StatusID    uint64         `gorm:"not null" json:"status_id"`
	AuthorID    uint64         `gorm:"not null" json:"author_id"`
	AssigneeID  *uint64        `json:"assignee_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Status   Status  `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	Author   User    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Assignee *User   `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Labels   []Label `gorm:"many2many:task_labels" json:"labels,omitempty"`
}
