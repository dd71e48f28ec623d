package models

import (
	"strings"
	"time"
)

type RoleName string

const (
	RoleAdmin      RoleName = "ADMIN"
	RoleManager    RoleName = "MANAGER"
	RoleDeveloper  RoleName = "DEVELOPER"
	RoleContractor RoleName = "CONTRACTOR"
)

// DefaultRole is given to every self-registered and federated account.
const DefaultRole = RoleContractor

func AllRoles() []RoleName {
	return []RoleName{RoleAdmin, RoleManager, RoleDeveloper, RoleContractor}
}

func (r RoleName) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleDeveloper, RoleContractor:
		return true
	}
	return false
}

// ParseRoleName accepts any casing and surrounding whitespace.
func ParseRoleName(s string) (RoleName, bool) {
	r := RoleName(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.Valid()
}

type Role struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoleName  RoleName  `gorm:"type:varchar(20);uniqueIndex;not null" json:"roleName"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	FullName     string `gorm:"size:255" json:"fullName,omitempty"`
	Skills       string `gorm:"type:text" json:"skills,omitempty"`

	RoleID uint `gorm:"not null" json:"roleId"`
	Role   Role `json:"role"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Principal builds the authenticated identity for this user.
func (u User) Principal() Principal {
	return Principal{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role.RoleName,
	}
}
