package memory

import (
	"time"

	"github.com/bornholm/worklog/internal/core/model"
)

type taskRecord struct {
	ID          model.TaskID
	CreatorRole model.CreatorRole
	CreatorID   model.UserID
	AssignedTo  model.UserID
	ProjectID   model.ProjectID
	ServiceID   model.ServiceID
	Purpose     string
	Slug        model.Slug
	Date        time.Time
	StartDate   time.Time
	StartTime   time.Time
	FinishDate  *time.Time
	FinishTime  *time.Time
	Status      model.TaskStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func fromTask(t model.Task) *taskRecord {
	return &taskRecord{
		ID:          t.ID(),
		CreatorRole: t.CreatorRole(),
		CreatorID:   t.CreatorID(),
		AssignedTo:  t.AssignedTo(),
		ProjectID:   t.ProjectID(),
		ServiceID:   t.ServiceID(),
		Purpose:     t.Purpose(),
		Slug:        t.Slug(),
		Date:        t.Date(),
		StartDate:   t.StartDate(),
		StartTime:   t.StartTime(),
		FinishDate:  t.FinishDate(),
		FinishTime:  t.FinishTime(),
		Status:      t.Status(),
	}
}

func (r *taskRecord) clone() *taskRecord {
	clone := *r
	if r.FinishDate != nil {
		finishDate := *r.FinishDate
		clone.FinishDate = &finishDate
	}
	if r.FinishTime != nil {
		finishTime := *r.FinishTime
		clone.FinishTime = &finishTime
	}
	return &clone
}

type wrappedTask struct {
	r *taskRecord
}

// ID implements model.Task.
func (w *wrappedTask) ID() model.TaskID {
	return w.r.ID
}

// CreatorRole implements model.Task.
func (w *wrappedTask) CreatorRole() model.CreatorRole {
	return w.r.CreatorRole
}

// CreatorID implements model.Task.
func (w *wrappedTask) CreatorID() model.UserID {
	return w.r.CreatorID
}

// AssignedTo implements model.Task.
func (w *wrappedTask) AssignedTo() model.UserID {
	return w.r.AssignedTo
}

// ProjectID implements model.Task.
func (w *wrappedTask) ProjectID() model.ProjectID {
	return w.r.ProjectID
}

// ServiceID implements model.Task.
func (w *wrappedTask) ServiceID() model.ServiceID {
	return w.r.ServiceID
}

// Purpose implements model.Task.
func (w *wrappedTask) Purpose() string {
	return w.r.Purpose
}

// Slug implements model.Task.
func (w *wrappedTask) Slug() model.Slug {
	return w.r.Slug
}

// Date implements model.Task.
func (w *wrappedTask) Date() time.Time {
	return w.r.Date
}

// StartDate implements model.Task.
func (w *wrappedTask) StartDate() time.Time {
	return w.r.StartDate
}

// StartTime implements model.Task.
func (w *wrappedTask) StartTime() time.Time {
	return w.r.StartTime
}

// FinishDate implements model.Task.
func (w *wrappedTask) FinishDate() *time.Time {
	return w.r.FinishDate
}

// FinishTime implements model.Task.
func (w *wrappedTask) FinishTime() *time.Time {
	return w.r.FinishTime
}

// Status implements model.Task.
func (w *wrappedTask) Status() model.TaskStatus {
	return w.r.Status
}

// CreatedAt implements model.Task.
func (w *wrappedTask) CreatedAt() time.Time {
	return w.r.CreatedAt
}

// UpdatedAt implements model.Task.
func (w *wrappedTask) UpdatedAt() time.Time {
	return w.r.UpdatedAt
}

var _ model.Task = &wrappedTask{}
