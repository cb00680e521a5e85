package gorm

import (
	"time"

	"github.com/bornholm/worklog/internal/core/model"
)

type User struct {
	ID        string `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
	UpdatedAt time.Time

	ExternalID int64  `gorm:"unique;not null;index"`
	Name       string `gorm:"index"`
	Role       string
}

type Project struct {
	ID        string `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name       string `gorm:"unique;not null;index"`
	ClientName string
}

type Service struct {
	ID        string `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name string `gorm:"unique;not null;index"`
}

func fromUser(u model.User) *User {
	return &User{
		ID:         string(u.ID()),
		ExternalID: u.ExternalID(),
		Name:       u.Name(),
		Role:       string(u.Role()),
	}
}

func fromProject(p model.Project) *Project {
	return &Project{
		ID:         string(p.ID()),
		Name:       p.Name(),
		ClientName: p.ClientName(),
	}
}

func fromService(s model.Service) *Service {
	return &Service{
		ID:   string(s.ID()),
		Name: s.Name(),
	}
}
