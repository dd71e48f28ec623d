package models

import "time"

type Project struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Deadline    *Date  `gorm:"type:date" json:"deadline"`
	Status      bool   `gorm:"not null;default:false" json:"status"`

	// tasks are owned by the project
	Tasks []Task `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Detached returns a copy that shares no memory with p. Tasks are dropped.
func (p Project) Detached() Project {
	if p.Deadline != nil {
		d := *p.Deadline
		p.Deadline = &d
	}
	p.Tasks = nil
	return p
}

// ProjectSummary is the id/name/status projection used by list views.
type ProjectSummary struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Status bool   `json:"status"`
}
