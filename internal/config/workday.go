package config

// Workday configures the organization's business calendar: the single
// civil timezone every date computation happens in, and an optional
// holiday overlay file.
type Workday struct {
	Timezone     string `env:"TIMEZONE,expand" envDefault:"Asia/Kolkata"`
	HolidaysFile string `env:"HOLIDAYS_FILE,expand"`
}

// Scheduler carries the wall-clock constants of the carry-forward job.
// Deployments disagree on all three values, so none of them is
// hardcoded.
type Scheduler struct {
	Enabled bool   `env:"ENABLED" envDefault:"true"`
	Trigger string `env:"TRIGGER" envDefault:"00:05"`
	ClockIn string `env:"CLOCK_IN" envDefault:"10:30"`
	Cutoff  string `env:"CUTOFF" envDefault:"20:00"`
}
