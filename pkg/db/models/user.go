package models

import (
	"time"

	"github.com/Emman-24/backendFlorist/pkg/enums"
)

// Role is one entry of the fixed role vocabulary.
type Role struct {
	ID          int64          `gorm:"column:id;primaryKey;autoIncrement"`
	Name        enums.RoleName `gorm:"column:name;type:varchar(20);not null;uniqueIndex:uq_roles_name"`
	Description *string        `gorm:"column:description;type:varchar(255)"`
}

func (Role) TableName() string { return "roles" }

// User is the credential store record.
type User struct {
	ID                    int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Username              string     `gorm:"column:username;type:varchar(50);not null;uniqueIndex:uq_users_username"`
	Email                 string     `gorm:"column:email;type:varchar(100);not null;uniqueIndex:uq_users_email"`
	Password              string     `gorm:"column:password;type:varchar(255);not null"`
	FullName              *string    `gorm:"column:full_name;type:varchar(100)"`
	Enabled               bool       `gorm:"column:enabled;not null"`
	AccountNonExpired     bool       `gorm:"column:account_non_expired;not null"`
	AccountNonLocked      bool       `gorm:"column:account_non_locked;not null"`
	CredentialsNonExpired bool       `gorm:"column:credentials_non_expired;not null"`
	Roles                 []Role     `gorm:"many2many:user_roles;constraint:OnDelete:CASCADE"`
	CreatedAt             time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time  `gorm:"column:updated_at;autoUpdateTime"`
	LastLoginAt           *time.Time `gorm:"column:last_login_at"`
}

func (User) TableName() string { return "users" }

// Usable reports whether the account may authenticate.
func (u User) Usable() bool {
	return u.Enabled && u.AccountNonExpired && u.AccountNonLocked && u.CredentialsNonExpired
}

// RoleNames returns the names of the assigned roles.
func (u User) RoleNames() []enums.RoleName {
	names := make([]enums.RoleName, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, role.Name)
	}
	return names
}

// Authorities returns the ROLE_ prefixed role names.
func (u User) Authorities() []string {
	out := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		out = append(out, role.Name.Authority())
	}
	return out
}
