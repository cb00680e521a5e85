package workday

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type holidaysFile struct {
	Holidays []string `yaml:"holidays"`
}

// LoadHolidays reads an organizational holiday overlay, one civil date
// per entry (e.g. "2026-01-26"), interpreted in the given location.
func LoadHolidays(path string, location *time.Location) ([]time.Time, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var file holidaysFile

	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WithStack(err)
	}

	holidays := make([]time.Time, 0, len(file.Holidays))

	for _, raw := range file.Holidays {
		day, err := time.ParseInLocation(civilDateLayout, raw, location)
		if err != nil {
			return nil, errors.Wrapf(err, "could not parse holiday '%s'", raw)
		}

		holidays = append(holidays, day)
	}

	return holidays, nil
}
