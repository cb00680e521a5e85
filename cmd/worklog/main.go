package main

import (
	"github.com/bornholm/worklog/internal/command"
	"github.com/bornholm/worklog/internal/command/carryforward"
	"github.com/bornholm/worklog/internal/command/serve"
)

func main() {
	command.Main(
		"worklog",
		"Daily task tracking with business-day carry-forward",
		serve.Command(),
		carryforward.Command(),
	)
}
