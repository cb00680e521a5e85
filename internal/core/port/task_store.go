package port

import (
	"context"
	"time"

	"github.com/bornholm/worklog/internal/core/model"
)

// TaskStore is the single shared mutable resource of the core: the
// persisted collection of task records plus the reference entities
// resolved at task-creation time.
type TaskStore interface {
	CreateTask(ctx context.Context, task model.Task) error
	GetTaskByID(ctx context.Context, id model.TaskID) (model.Task, error)
	QueryTasks(ctx context.Context, opts QueryTasksOptions) ([]model.Task, int64, error)

	// UpdateTasks applies the same patch to every task in ids and
	// returns how many records were touched.
	UpdateTasks(ctx context.Context, ids []model.TaskID, updates TaskUpdates) (int64, error)

	// HasCompletedTask reports whether the module identified by slug is
	// closed, i.e. any of its tasks reached Completed.
	HasCompletedTask(ctx context.Context, slug model.Slug) (bool, error)

	CountTasksByStatus(ctx context.Context, assignedTo *model.UserID) (map[model.TaskStatus]int64, error)

	GetUserByExternalID(ctx context.Context, externalID int64) (model.User, error)
	GetProjectByName(ctx context.Context, name string) (model.Project, error)
	GetServiceByName(ctx context.Context, name string) (model.Service, error)

	SaveUser(ctx context.Context, user model.User) error
	SaveProject(ctx context.Context, project model.Project) error
	SaveService(ctx context.Context, service model.Service) error
}

type QueryTasksOptions struct {
	Status     *model.TaskStatus
	Slug       *model.Slug
	AssignedTo *model.UserID

	// StartedAfter and StartedBefore bound the startDate field
	// (inclusive on both ends).
	StartedAfter  *time.Time
	StartedBefore *time.Time

	// OnlyUnfinished restricts the result to tasks whose finishDate and
	// finishTime are both null.
	OnlyUnfinished bool

	Page  *int
	Limit *int
}

// TaskUpdates is a field-level patch. Nil pointers leave the field
// untouched; ClearFinish nulls both finish stamps (the compensating
// action of the continue-tomorrow saga).
type TaskUpdates struct {
	Status      *model.TaskStatus
	FinishDate  *time.Time
	FinishTime  *time.Time
	ClearFinish bool
}
