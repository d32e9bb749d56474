package model

import (
	"fmt"
	"strings"
	"time"
)

type UserRole string

const (
	UserRoleAdmin    UserRole = "Admin"
	UserRoleFarmer   UserRole = "Farmer"
	UserRoleInvestor UserRole = "Investor"
	UserRoleGuest    UserRole = "Guest"
)

var userRoles = []UserRole{UserRoleAdmin, UserRoleFarmer, UserRoleInvestor, UserRoleGuest}

// ParseUserRole accepts role names case-insensitively.
func ParseUserRole(s string) (UserRole, error) {
	s = strings.TrimSpace(s)
	for _, r := range userRoles {
		if strings.EqualFold(string(r), s) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// User is keyed by the caller principal; one record per identity.
type User struct {
	UID         string    `gorm:"column:uid;primaryKey;size:128"`
	Role        UserRole  `gorm:"column:role;size:16;not null"`
	DisplayName string    `gorm:"column:display_name;size:120"`
	Email       string    `gorm:"column:email;size:255"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) HasRole(roles ...UserRole) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
