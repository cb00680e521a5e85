package gorm

import (
	"time"

	"github.com/bornholm/worklog/internal/core/model"
)

type Task struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	CreatorRole string `gorm:"not null"`
	CreatorID   string `gorm:"index;not null"`
	AssignedTo  string `gorm:"index;not null"`
	ProjectID   string `gorm:"index;not null"`
	ServiceID   string `gorm:"index;not null"`

	Purpose string `gorm:"index;not null"`
	Slug    string `gorm:"index;not null"`

	Date       time.Time `gorm:"not null"`
	StartDate  time.Time `gorm:"index;not null"`
	StartTime  time.Time `gorm:"not null"`
	FinishDate *time.Time
	FinishTime *time.Time

	Status string `gorm:"index;not null"`
}

func fromTask(t model.Task) *Task {
	return &Task{
		ID:          string(t.ID()),
		CreatorRole: string(t.CreatorRole()),
		CreatorID:   string(t.CreatorID()),
		AssignedTo:  string(t.AssignedTo()),
		ProjectID:   string(t.ProjectID()),
		ServiceID:   string(t.ServiceID()),
		Purpose:     t.Purpose(),
		Slug:        string(t.Slug()),
		Date:        t.Date(),
		StartDate:   t.StartDate(),
		StartTime:   t.StartTime(),
		FinishDate:  t.FinishDate(),
		FinishTime:  t.FinishTime(),
		Status:      string(t.Status()),
	}
}

type wrappedTask struct {
	t *Task
}

// ID implements model.Task.
func (w *wrappedTask) ID() model.TaskID {
	return model.TaskID(w.t.ID)
}

// CreatorRole implements model.Task.
func (w *wrappedTask) CreatorRole() model.CreatorRole {
	return model.CreatorRole(w.t.CreatorRole)
}

// CreatorID implements model.Task.
func (w *wrappedTask) CreatorID() model.UserID {
	return model.UserID(w.t.CreatorID)
}

// AssignedTo implements model.Task.
func (w *wrappedTask) AssignedTo() model.UserID {
	return model.UserID(w.t.AssignedTo)
}

// ProjectID implements model.Task.
func (w *wrappedTask) ProjectID() model.ProjectID {
	return model.ProjectID(w.t.ProjectID)
}

// ServiceID implements model.Task.
func (w *wrappedTask) ServiceID() model.ServiceID {
	return model.ServiceID(w.t.ServiceID)
}

// Purpose implements model.Task.
func (w *wrappedTask) Purpose() string {
	return w.t.Purpose
}

// Slug implements model.Task.
func (w *wrappedTask) Slug() model.Slug {
	return model.Slug(w.t.Slug)
}

// Date implements model.Task.
func (w *wrappedTask) Date() time.Time {
	return w.t.Date
}

// StartDate implements model.Task.
func (w *wrappedTask) StartDate() time.Time {
	return w.t.StartDate
}

// StartTime implements model.Task.
func (w *wrappedTask) StartTime() time.Time {
	return w.t.StartTime
}

// FinishDate implements model.Task.
func (w *wrappedTask) FinishDate() *time.Time {
	return w.t.FinishDate
}

// FinishTime implements model.Task.
func (w *wrappedTask) FinishTime() *time.Time {
	return w.t.FinishTime
}

// Status implements model.Task.
func (w *wrappedTask) Status() model.TaskStatus {
	return model.TaskStatus(w.t.Status)
}

// CreatedAt implements model.Task.
func (w *wrappedTask) CreatedAt() time.Time {
	return w.t.CreatedAt
}

// UpdatedAt implements model.Task.
func (w *wrappedTask) UpdatedAt() time.Time {
	return w.t.UpdatedAt
}

var _ model.Task = &wrappedTask{}
