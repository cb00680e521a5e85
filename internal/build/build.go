package build

// Overridden at link time.
var (
	ShortVersion string = "unknown"
	GitRef       string = "unknown"
	LongVersion  string = "unknown"
)
