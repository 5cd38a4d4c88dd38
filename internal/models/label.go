package models

import "time"

// Label is a tag attachable to any number of tasks. Unlike statuses, label
// names are not unique.
type Label struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Tasks []Task `gorm:"many2many:task_labels" json:"-"`
}
