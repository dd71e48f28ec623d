package models

import "time"

type Task struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Status      bool   `gorm:"not null;default:false;index" json:"status"`
	DueDate     *Date  `gorm:"type:date" json:"dueDate"`

	ProjectID uint `gorm:"not null;index" json:"projectId"`

	// no FK: deleting a user leaves the reference in place
	AssignedUserID *uint `gorm:"index" json:"assignedUserId"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// AssignedTo reports whether the task is assigned to the given user id.
func (t Task) AssignedTo(userID uint) bool {
	return t.AssignedUserID != nil && *t.AssignedUserID == userID
}
