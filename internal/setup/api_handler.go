package setup

import (
	"context"

	"github.com/bornholm/worklog/internal/config"
	"github.com/bornholm/worklog/internal/http/handler/api"
	"github.com/pkg/errors"
)

var getAPIHandlerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*api.Handler, error) {
	taskManager, err := getTaskManagerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create task manager from config")
	}

	store, err := getTaskStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create task store from config")
	}

	return api.NewHandler(taskManager, store), nil
})
