package models

import (
	"time"

	"github.com/atedres/boldnet-sub000/internal/domain/identity"
)

// AdminUserModel is the persistence model for the AdminUser domain entity.
type AdminUserModel struct {
	BaseModel
	Email          string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	DisplayName    string     `gorm:"type:varchar(200)"`
	PasswordHash   string     `gorm:"type:varchar(255);not null"`
	LastSignInAt   *time.Time `gorm:"index"`
	FailedAttempts int        `gorm:"not null;default:0"`
	LockedUntil    *time.Time
}

// TableName returns the table name for GORM
func (AdminUserModel) TableName() string {
	return "admin_users"
}

// ToDomain converts the persistence model to a domain AdminUser entity.
func (m *AdminUserModel) ToDomain() *identity.AdminUser {
	return &identity.AdminUser{
		BaseEntity:     m.BaseModel.ToDomain(),
		Email:          m.Email,
		DisplayName:    m.DisplayName,
		PasswordHash:   m.PasswordHash,
		LastSignInAt:   m.LastSignInAt,
		FailedAttempts: m.FailedAttempts,
		LockedUntil:    m.LockedUntil,
	}
}

// FromDomain populates the persistence model from a domain AdminUser entity.
func (m *AdminUserModel) FromDomain(u *identity.AdminUser) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Email = u.Email
	m.DisplayName = u.DisplayName
	m.PasswordHash = u.PasswordHash
	m.LastSignInAt = u.LastSignInAt
	m.FailedAttempts = u.FailedAttempts
	m.LockedUntil = u.LockedUntil
}

// AdminUserModelFromDomain creates a new persistence model from a domain AdminUser entity.
func AdminUserModelFromDomain(u *identity.AdminUser) *AdminUserModel {
	m := &AdminUserModel{}
	m.FromDomain(u)
	return m
}
