package gorm

import (
	"net/url"
	"path/filepath"

	"github.com/bornholm/worklog/internal/adapter"
	"github.com/bornholm/worklog/internal/core/port"
	"github.com/ncruces/go-sqlite3/gormlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	_ "github.com/ncruces/go-sqlite3/embed"
)

func init() {
	adapter.TaskStore.Register("sqlite", func(u *url.URL) (port.TaskStore, error) {
		dsn := filepath.Join(u.Host, u.Path)
		if dsn == "" {
			dsn = "data.sqlite"
		}

		db, err := gorm.Open(gormlite.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, errors.Wrapf(err, "could not open database '%s'", dsn)
		}

		internalDB, err := db.DB()
		if err != nil {
			return nil, errors.WithStack(err)
		}

		internalDB.SetMaxOpenConns(1)

		if err := db.Exec("PRAGMA journal_mode=wal; PRAGMA foreign_keys=on; PRAGMA busy_timeout=5000").Error; err != nil {
			return nil, errors.WithStack(err)
		}

		return NewTaskStore(db), nil
	})
}
