package setup

import (
	"context"
	"log/slog"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/worklog/internal/adapter"
	"github.com/bornholm/worklog/internal/config"
	"github.com/bornholm/worklog/internal/core/model"
	"github.com/bornholm/worklog/internal/core/port"
	"github.com/bornholm/worklog/internal/metrics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

var getTaskStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (port.TaskStore, error) {
	store, err := adapter.TaskStore.From(conf.Storage.TaskStore.URI)
	if err != nil {
		return nil, errors.Wrapf(err, "could not retrieve task store for uri '%s'", conf.Storage.TaskStore.URI)
	}

	// Collect task metrics
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		ctx := context.Background()
		for {
			counts, err := store.CountTasksByStatus(ctx, nil)
			if err != nil {
				slog.ErrorContext(ctx, "could not count tasks", slogx.Error(errors.WithStack(err)))
				<-ticker.C
				continue
			}

			for _, status := range []model.TaskStatus{model.TaskStatusInitiated, model.TaskStatusOngoing, model.TaskStatusCompleted} {
				metrics.Tasks.With(prometheus.Labels{
					metrics.LabelStatus: string(status),
				}).Set(float64(counts[status]))
			}

			<-ticker.C
		}
	}()

	return store, nil
})
