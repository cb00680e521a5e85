package model

import (
	"github.com/rs/xid"
)

type ProjectID string

func NewProjectID() ProjectID {
	return ProjectID(xid.New().String())
}

type Project interface {
	WithID[ProjectID]

	Name() string
	ClientName() string
}

type ReadOnlyProject struct {
	id         ProjectID
	name       string
	clientName string
}

// ID implements Project.
func (p *ReadOnlyProject) ID() ProjectID {
	return p.id
}

// Name implements Project.
func (p *ReadOnlyProject) Name() string {
	return p.name
}

// ClientName implements Project.
func (p *ReadOnlyProject) ClientName() string {
	return p.clientName
}

var _ Project = &ReadOnlyProject{}

func NewReadOnlyProject(id ProjectID, name string, clientName string) *ReadOnlyProject {
	return &ReadOnlyProject{
		id:         id,
		name:       name,
		clientName: clientName,
	}
}
