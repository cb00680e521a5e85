package model

import (
	"strings"
)

// Slug is the stable grouping key of a module: every task sharing a slug
// records work on the same recurring unit, carried across working days.
type Slug string

// ComputeSlug derives a module slug from the names identifying a unit of
// work. Deterministic: lowercase, any run of whitespace collapsed to a
// single hyphen.
func ComputeSlug(userName, projectName, serviceName, purpose string) Slug {
	raw := strings.Join([]string{userName, projectName, serviceName, purpose}, " ")
	return Slug(strings.Join(strings.Fields(strings.ToLower(raw)), "-"))
}
