package model

import (
	"github.com/rs/xid"
)

type ServiceID string

func NewServiceID() ServiceID {
	return ServiceID(xid.New().String())
}

type Service interface {
	WithID[ServiceID]

	Name() string
}

type ReadOnlyService struct {
	id   ServiceID
	name string
}

// ID implements Service.
func (s *ReadOnlyService) ID() ServiceID {
	return s.id
}

// Name implements Service.
func (s *ReadOnlyService) Name() string {
	return s.name
}

var _ Service = &ReadOnlyService{}

func NewReadOnlyService(id ServiceID, name string) *ReadOnlyService {
	return &ReadOnlyService{
		id:   id,
		name: name,
	}
}
