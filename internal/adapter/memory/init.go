package memory

import (
	"net/url"

	"github.com/bornholm/worklog/internal/adapter"
	"github.com/bornholm/worklog/internal/core/port"
)

func init() {
	adapter.TaskStore.Register("memory", func(u *url.URL) (port.TaskStore, error) {
		return NewTaskStore(), nil
	})
}
