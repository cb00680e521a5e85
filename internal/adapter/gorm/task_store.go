package gorm

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/bornholm/worklog/internal/core/model"
	"github.com/bornholm/worklog/internal/core/port"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaskStore struct {
	getDatabase func(ctx context.Context) (*gorm.DB, error)
}

// CreateTask implements port.TaskStore.
func (s *TaskStore) CreateTask(ctx context.Context, task model.Task) error {
	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Create(fromTask(task)).Error; err != nil {
			return errors.WithStack(translateConstraint(err))
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// GetTaskByID implements port.TaskStore.
func (s *TaskStore) GetTaskByID(ctx context.Context, id model.TaskID) (model.Task, error) {
	var task Task

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.First(&task, "id = ?", string(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}

			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedTask{&task}, nil
}

// QueryTasks implements port.TaskStore.
func (s *TaskStore) QueryTasks(ctx context.Context, opts port.QueryTasksOptions) ([]model.Task, int64, error) {
	var (
		tasks []*Task
		total int64
	)

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		query := db.Model(&Task{})

		if opts.Status != nil {
			query = query.Where("status = ?", string(*opts.Status))
		}
		if opts.Slug != nil {
			query = query.Where("slug = ?", string(*opts.Slug))
		}
		if opts.AssignedTo != nil {
			query = query.Where("assigned_to = ?", string(*opts.AssignedTo))
		}
		if opts.StartedAfter != nil {
			query = query.Where("start_date >= ?", *opts.StartedAfter)
		}
		if opts.StartedBefore != nil {
			query = query.Where("start_date <= ?", *opts.StartedBefore)
		}
		if opts.OnlyUnfinished {
			query = query.Where("finish_date IS NULL AND finish_time IS NULL")
		}

		if err := query.Count(&total).Error; err != nil {
			return errors.WithStack(err)
		}

		query = query.Order("created_at DESC")

		if opts.Page != nil && opts.Limit != nil {
			query = query.Offset((*opts.Page - 1) * *opts.Limit).Limit(*opts.Limit)
		}

		if err := query.Find(&tasks).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	wrapped := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		wrapped = append(wrapped, &wrappedTask{t})
	}

	return wrapped, total, nil
}

// UpdateTasks implements port.TaskStore.
func (s *TaskStore) UpdateTasks(ctx context.Context, ids []model.TaskID, updates port.TaskUpdates) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	patch := map[string]any{}

	if updates.Status != nil {
		patch["status"] = string(*updates.Status)
	}
	if updates.FinishDate != nil {
		patch["finish_date"] = *updates.FinishDate
	}
	if updates.FinishTime != nil {
		patch["finish_time"] = *updates.FinishTime
	}
	if updates.ClearFinish {
		patch["finish_date"] = nil
		patch["finish_time"] = nil
	}

	if len(patch) == 0 {
		return 0, nil
	}

	rawIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		rawIDs = append(rawIDs, string(id))
	}

	var updated int64

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		result := db.Model(&Task{}).Where("id IN ?", rawIDs).Updates(patch)
		if result.Error != nil {
			return errors.WithStack(translateConstraint(result.Error))
		}

		updated = result.RowsAffected

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return updated, nil
}

// HasCompletedTask implements port.TaskStore.
func (s *TaskStore) HasCompletedTask(ctx context.Context, slug model.Slug) (bool, error) {
	var exists bool

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		var count int64

		err := db.Model(&Task{}).
			Where("slug = ? AND status = ?", string(slug), string(model.TaskStatusCompleted)).
			Count(&count).Error
		if err != nil {
			return errors.WithStack(err)
		}

		exists = count > 0

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return false, errors.WithStack(err)
	}

	return exists, nil
}

// CountTasksByStatus implements port.TaskStore.
func (s *TaskStore) CountTasksByStatus(ctx context.Context, assignedTo *model.UserID) (map[model.TaskStatus]int64, error) {
	type statusCount struct {
		Status string
		Total  int64
	}

	var rows []statusCount

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		query := db.Model(&Task{}).Select("status, count(*) as total").Group("status")

		if assignedTo != nil {
			query = query.Where("assigned_to = ?", string(*assignedTo))
		}

		if err := query.Find(&rows).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	counts := make(map[model.TaskStatus]int64, len(rows))
	for _, row := range rows {
		counts[model.TaskStatus(row.Status)] = row.Total
	}

	return counts, nil
}

// GetUserByExternalID implements port.TaskStore.
func (s *TaskStore) GetUserByExternalID(ctx context.Context, externalID int64) (model.User, error) {
	var user User

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.First(&user, "external_id = ?", externalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}

			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return model.NewReadOnlyUser(model.UserID(user.ID), user.ExternalID, user.Name, model.CreatorRole(user.Role)), nil
}

// GetProjectByName implements port.TaskStore.
func (s *TaskStore) GetProjectByName(ctx context.Context, name string) (model.Project, error) {
	var project Project

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.First(&project, "name = ?", name).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}

			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return model.NewReadOnlyProject(model.ProjectID(project.ID), project.Name, project.ClientName), nil
}

// GetServiceByName implements port.TaskStore.
func (s *TaskStore) GetServiceByName(ctx context.Context, name string) (model.Service, error) {
	var service Service

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.First(&service, "name = ?", name).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}

			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return model.NewReadOnlyService(model.ServiceID(service.ID), service.Name), nil
}

// SaveUser implements port.TaskStore.
func (s *TaskStore) SaveUser(ctx context.Context, user model.User) error {
	return s.upsert(ctx, fromUser(user))
}

// SaveProject implements port.TaskStore.
func (s *TaskStore) SaveProject(ctx context.Context, project model.Project) error {
	return s.upsert(ctx, fromProject(project))
}

// SaveService implements port.TaskStore.
func (s *TaskStore) SaveService(ctx context.Context, service model.Service) error {
	return s.upsert(ctx, fromService(service))
}

func (s *TaskStore) upsert(ctx context.Context, record any) error {
	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(record).Error
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (s *TaskStore) withRetry(ctx context.Context, fn func(ctx context.Context, db *gorm.DB) error, codes ...sqlite3.ErrorCode) error {
	db, err := s.getDatabase(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	backoff := 500 * time.Millisecond
	maxRetries := 10
	retries := 0

	for {
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := fn(ctx, tx); err != nil {
				return errors.WithStack(err)
			}

			return nil
		})
		if err != nil {
			if retries >= maxRetries {
				return errors.WithStack(err)
			}

			var sqliteErr *sqlite3.Error
			if errors.As(err, &sqliteErr) {
				if !slices.Contains(codes, sqliteErr.Code()) {
					return errors.WithStack(err)
				}

				slog.DebugContext(ctx, "transaction failed, will retry", slog.Int("retries", retries), slog.Duration("backoff", backoff), slog.Any("error", errors.WithStack(err)))

				retries++
				time.Sleep(backoff)
				backoff *= 2
				continue
			}

			return errors.WithStack(err)
		}

		return nil
	}
}

// translateConstraint maps a violation of the one-Completed-per-slug
// unique index to the typed failure callers can act on.
func translateConstraint(err error) error {
	var sqliteErr *sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.CONSTRAINT {
		return port.ErrModuleClosed
	}

	return err
}

func NewTaskStore(db *gorm.DB) *TaskStore {
	return &TaskStore{
		getDatabase: createGetDatabase(db),
	}
}

var _ port.TaskStore = &TaskStore{}

func createGetDatabase(db *gorm.DB) func(ctx context.Context) (*gorm.DB, error) {
	var (
		migrateOnce sync.Once
		migrateErr  error
	)

	return func(ctx context.Context) (*gorm.DB, error) {
		migrateOnce.Do(func() {
			models := []any{
				&Task{},
				&User{},
				&Project{},
				&Service{},
			}

			if err := db.AutoMigrate(models...); err != nil {
				migrateErr = errors.WithStack(err)
				return
			}

			// At most one Completed task per module, enforced by the
			// store itself so two concurrent completions can not both
			// win the read-check-write race.
			err := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_tasks_completed_per_slug ON tasks (slug) WHERE status = 'Completed'").Error
			if err != nil {
				migrateErr = errors.WithStack(err)
				return
			}
		})
		if migrateErr != nil {
			return nil, errors.WithStack(migrateErr)
		}

		return db, nil
	}
}
