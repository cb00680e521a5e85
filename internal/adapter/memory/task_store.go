package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/bornholm/worklog/internal/core/model"
	"github.com/bornholm/worklog/internal/core/port"
	"github.com/pkg/errors"
)

// TaskStore keeps everything in process memory, for tests and ephemeral
// deployments. The mutex makes the read-check-write sequences atomic,
// so the one-Completed-per-module invariant holds under concurrency.
type TaskStore struct {
	mutex    sync.RWMutex
	tasks    map[model.TaskID]*taskRecord
	users    map[model.UserID]model.User
	projects map[model.ProjectID]model.Project
	services map[model.ServiceID]model.Service
}

// CreateTask implements port.TaskStore.
func (s *TaskStore) CreateTask(ctx context.Context, task model.Task) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.tasks[task.ID()]; exists {
		return errors.Errorf("task '%s' already exists", task.ID())
	}

	if task.Status() == model.TaskStatusCompleted && s.hasCompletedTask(task.Slug()) {
		return errors.WithStack(port.ErrModuleClosed)
	}

	record := fromTask(task)
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt

	s.tasks[task.ID()] = record

	return nil
}

// GetTaskByID implements port.TaskStore.
func (s *TaskStore) GetTaskByID(ctx context.Context, id model.TaskID) (model.Task, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	record, exists := s.tasks[id]
	if !exists {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	return &wrappedTask{record.clone()}, nil
}

// QueryTasks implements port.TaskStore.
func (s *TaskStore) QueryTasks(ctx context.Context, opts port.QueryTasksOptions) ([]model.Task, int64, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	matched := make([]*taskRecord, 0)

	for _, record := range s.tasks {
		if opts.Status != nil && record.Status != *opts.Status {
			continue
		}
		if opts.Slug != nil && record.Slug != *opts.Slug {
			continue
		}
		if opts.AssignedTo != nil && record.AssignedTo != *opts.AssignedTo {
			continue
		}
		if opts.StartedAfter != nil && record.StartDate.Before(*opts.StartedAfter) {
			continue
		}
		if opts.StartedBefore != nil && record.StartDate.After(*opts.StartedBefore) {
			continue
		}
		if opts.OnlyUnfinished && (record.FinishDate != nil || record.FinishTime != nil) {
			continue
		}

		matched = append(matched, record)
	}

	slices.SortFunc(matched, func(r1, r2 *taskRecord) int {
		return r2.CreatedAt.Compare(r1.CreatedAt)
	})

	total := int64(len(matched))

	if opts.Page != nil && opts.Limit != nil {
		offset := (*opts.Page - 1) * *opts.Limit
		if offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[offset:min(offset+*opts.Limit, len(matched))]
		}
	}

	tasks := make([]model.Task, 0, len(matched))
	for _, record := range matched {
		tasks = append(tasks, &wrappedTask{record.clone()})
	}

	return tasks, total, nil
}

// UpdateTasks implements port.TaskStore.
func (s *TaskStore) UpdateTasks(ctx context.Context, ids []model.TaskID, updates port.TaskUpdates) (int64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	// Reject the whole patch upfront when it would close an already
	// closed module, mirroring the partial unique index of the sqlite
	// adapter.
	if updates.Status != nil && *updates.Status == model.TaskStatusCompleted {
		for _, id := range ids {
			record, exists := s.tasks[id]
			if !exists {
				continue
			}

			for _, other := range s.tasks {
				if other.ID != record.ID && other.Slug == record.Slug && other.Status == model.TaskStatusCompleted {
					return 0, errors.WithStack(port.ErrModuleClosed)
				}
			}
		}
	}

	var updated int64

	for _, id := range ids {
		record, exists := s.tasks[id]
		if !exists {
			continue
		}

		if updates.Status != nil {
			record.Status = *updates.Status
		}
		if updates.FinishDate != nil {
			finishDate := *updates.FinishDate
			record.FinishDate = &finishDate
		}
		if updates.FinishTime != nil {
			finishTime := *updates.FinishTime
			record.FinishTime = &finishTime
		}
		if updates.ClearFinish {
			record.FinishDate = nil
			record.FinishTime = nil
		}

		record.UpdatedAt = time.Now()
		updated++
	}

	return updated, nil
}

// HasCompletedTask implements port.TaskStore.
func (s *TaskStore) HasCompletedTask(ctx context.Context, slug model.Slug) (bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.hasCompletedTask(slug), nil
}

func (s *TaskStore) hasCompletedTask(slug model.Slug) bool {
	for _, record := range s.tasks {
		if record.Slug == slug && record.Status == model.TaskStatusCompleted {
			return true
		}
	}

	return false
}

// CountTasksByStatus implements port.TaskStore.
func (s *TaskStore) CountTasksByStatus(ctx context.Context, assignedTo *model.UserID) (map[model.TaskStatus]int64, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	counts := map[model.TaskStatus]int64{}

	for _, record := range s.tasks {
		if assignedTo != nil && record.AssignedTo != *assignedTo {
			continue
		}

		counts[record.Status]++
	}

	return counts, nil
}

// GetUserByExternalID implements port.TaskStore.
func (s *TaskStore) GetUserByExternalID(ctx context.Context, externalID int64) (model.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, user := range s.users {
		if user.ExternalID() == externalID {
			return user, nil
		}
	}

	return nil, errors.WithStack(port.ErrNotFound)
}

// GetProjectByName implements port.TaskStore.
func (s *TaskStore) GetProjectByName(ctx context.Context, name string) (model.Project, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, project := range s.projects {
		if project.Name() == name {
			return project, nil
		}
	}

	return nil, errors.WithStack(port.ErrNotFound)
}

// GetServiceByName implements port.TaskStore.
func (s *TaskStore) GetServiceByName(ctx context.Context, name string) (model.Service, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, service := range s.services {
		if service.Name() == name {
			return service, nil
		}
	}

	return nil, errors.WithStack(port.ErrNotFound)
}

// SaveUser implements port.TaskStore.
func (s *TaskStore) SaveUser(ctx context.Context, user model.User) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.users[user.ID()] = user

	return nil
}

// SaveProject implements port.TaskStore.
func (s *TaskStore) SaveProject(ctx context.Context, project model.Project) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.projects[project.ID()] = project

	return nil
}

// SaveService implements port.TaskStore.
func (s *TaskStore) SaveService(ctx context.Context, service model.Service) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.services[service.ID()] = service

	return nil
}

func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks:    map[model.TaskID]*taskRecord{},
		users:    map[model.UserID]model.User{},
		projects: map[model.ProjectID]model.Project{},
		services: map[model.ServiceID]model.Service{},
	}
}

var _ port.TaskStore = &TaskStore{}
