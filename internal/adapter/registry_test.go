package adapter_test

import (
	"net/url"
	"testing"

	"github.com/bornholm/worklog/internal/adapter"
	"github.com/pkg/errors"

	_ "github.com/bornholm/worklog/internal/adapter/memory"
)

func TestRegistry(t *testing.T) {
	registry := adapter.NewRegistry[string]()

	registry.Register("test", func(u *url.URL) (string, error) {
		return u.Host, nil
	})

	value, err := registry.From("test://example")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "example", value; e != g {
		t.Errorf("value: expected '%s', got '%s'", e, g)
	}

	if _, err := registry.From("unknown://"); err == nil {
		t.Fatal("expected error for unregistered scheme")
	}
}

func TestTaskStoreRegistry(t *testing.T) {
	store, err := adapter.TaskStore.From("memory://")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if store == nil {
		t.Fatal("expected a task store")
	}
}
