package model

import (
	"time"

	"github.com/rs/xid"
)

type TaskID string

func NewTaskID() TaskID {
	return TaskID(xid.New().String())
}

type TaskStatus string

const (
	TaskStatusInitiated TaskStatus = "Initiated"
	TaskStatusOngoing   TaskStatus = "Ongoing"
	TaskStatusCompleted TaskStatus = "Completed"
)

// IsOpen reports whether a task in this status still accepts lifecycle
// transitions. Completed is terminal.
func (s TaskStatus) IsOpen() bool {
	return s == TaskStatusInitiated || s == TaskStatusOngoing
}

type CreatorRole string

const (
	CreatorRoleAdmin CreatorRole = "Admin"
	CreatorRoleUser  CreatorRole = "User"
)

// Task is one day's worth of work inside a module. Tasks sharing a slug
// form a module carried across working days by the carry-forward job.
type Task interface {
	WithID[TaskID]
	WithLifecycle

	CreatorRole() CreatorRole
	CreatorID() UserID
	AssignedTo() UserID
	ProjectID() ProjectID
	ServiceID() ServiceID
	Purpose() string
	Slug() Slug
	Date() time.Time
	StartDate() time.Time
	StartTime() time.Time
	FinishDate() *time.Time
	FinishTime() *time.Time
	Status() TaskStatus
}

type BaseTask struct {
	id          TaskID
	creatorRole CreatorRole
	creatorID   UserID
	assignedTo  UserID
	projectID   ProjectID
	serviceID   ServiceID
	purpose     string
	slug        Slug
	date        time.Time
	startDate   time.Time
	startTime   time.Time
	finishDate  *time.Time
	finishTime  *time.Time
	status      TaskStatus
	createdAt   time.Time
	updatedAt   time.Time
}

// ID implements Task.
func (t *BaseTask) ID() TaskID {
	return t.id
}

// CreatorRole implements Task.
func (t *BaseTask) CreatorRole() CreatorRole {
	return t.creatorRole
}

// CreatorID implements Task.
func (t *BaseTask) CreatorID() UserID {
	return t.creatorID
}

// AssignedTo implements Task.
func (t *BaseTask) AssignedTo() UserID {
	return t.assignedTo
}

// ProjectID implements Task.
func (t *BaseTask) ProjectID() ProjectID {
	return t.projectID
}

// ServiceID implements Task.
func (t *BaseTask) ServiceID() ServiceID {
	return t.serviceID
}

// Purpose implements Task.
func (t *BaseTask) Purpose() string {
	return t.purpose
}

// Slug implements Task.
func (t *BaseTask) Slug() Slug {
	return t.slug
}

// Date implements Task.
func (t *BaseTask) Date() time.Time {
	return t.date
}

// StartDate implements Task.
func (t *BaseTask) StartDate() time.Time {
	return t.startDate
}

// StartTime implements Task.
func (t *BaseTask) StartTime() time.Time {
	return t.startTime
}

// FinishDate implements Task.
func (t *BaseTask) FinishDate() *time.Time {
	return t.finishDate
}

// FinishTime implements Task.
func (t *BaseTask) FinishTime() *time.Time {
	return t.finishTime
}

// Status implements Task.
func (t *BaseTask) Status() TaskStatus {
	return t.status
}

// CreatedAt implements Task.
func (t *BaseTask) CreatedAt() time.Time {
	return t.createdAt
}

// UpdatedAt implements Task.
func (t *BaseTask) UpdatedAt() time.Time {
	return t.updatedAt
}

var _ Task = &BaseTask{}

type TaskOptionFunc func(t *BaseTask)

func WithTaskID(id TaskID) TaskOptionFunc {
	return func(t *BaseTask) {
		t.id = id
	}
}

func WithTaskDate(date time.Time) TaskOptionFunc {
	return func(t *BaseTask) {
		t.date = date
	}
}

func WithTaskFinish(finishDate, finishTime time.Time) TaskOptionFunc {
	return func(t *BaseTask) {
		t.finishDate = &finishDate
		t.finishTime = &finishTime
	}
}

func NewTask(creatorRole CreatorRole, creatorID UserID, assignedTo UserID, projectID ProjectID, serviceID ServiceID, purpose string, slug Slug, startDate, startTime time.Time, status TaskStatus, funcs ...TaskOptionFunc) *BaseTask {
	task := &BaseTask{
		id:          NewTaskID(),
		creatorRole: creatorRole,
		creatorID:   creatorID,
		assignedTo:  assignedTo,
		projectID:   projectID,
		serviceID:   serviceID,
		purpose:     purpose,
		slug:        slug,
		startDate:   startDate,
		startTime:   startTime,
		status:      status,
	}
	for _, fn := range funcs {
		fn(task)
	}

	// The logical work day defaults to the day work began
	if task.date.IsZero() {
		task.date = task.startDate
	}

	return task
}

// NewSuccessorTask derives the next working day's task of a module,
// inheriting everything that identifies the module from its predecessor.
// Finish fields start out null.
func NewSuccessorTask(predecessor Task, startDate, startTime time.Time) *BaseTask {
	return NewTask(
		predecessor.CreatorRole(),
		predecessor.CreatorID(),
		predecessor.AssignedTo(),
		predecessor.ProjectID(),
		predecessor.ServiceID(),
		predecessor.Purpose(),
		predecessor.Slug(),
		startDate,
		startTime,
		TaskStatusOngoing,
	)
}
