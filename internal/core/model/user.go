package model

import (
	"github.com/rs/xid"
)

type UserID string

func NewUserID() UserID {
	return UserID(xid.New().String())
}

// User mirrors the profile record synced from the external identity
// service. The core only needs the fields taking part in task creation
// and slug derivation.
type User interface {
	WithID[UserID]

	ExternalID() int64
	Name() string
	Role() CreatorRole
}

type ReadOnlyUser struct {
	id         UserID
	externalID int64
	name       string
	role       CreatorRole
}

// ID implements User.
func (u *ReadOnlyUser) ID() UserID {
	return u.id
}

// ExternalID implements User.
func (u *ReadOnlyUser) ExternalID() int64 {
	return u.externalID
}

// Name implements User.
func (u *ReadOnlyUser) Name() string {
	return u.name
}

// Role implements User.
func (u *ReadOnlyUser) Role() CreatorRole {
	return u.role
}

var _ User = &ReadOnlyUser{}

func NewReadOnlyUser(id UserID, externalID int64, name string, role CreatorRole) *ReadOnlyUser {
	return &ReadOnlyUser{
		id:         id,
		externalID: externalID,
		name:       name,
		role:       role,
	}
}
