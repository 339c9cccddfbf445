package enums

import (
	"fmt"
	"strings"
)

// RoleName is the fixed role vocabulary assigned to users.
type RoleName string

const (
	RoleAdmin   RoleName = "ADMIN"
	RoleManager RoleName = "MANAGER"
	RoleUser    RoleName = "USER"
)

// AuthorityPrefix is prepended to role names inside token claims and request authorities.
const AuthorityPrefix = "ROLE_"

var validRoleNames = []RoleName{RoleAdmin, RoleManager, RoleUser}

// String implements fmt.Stringer.
func (r RoleName) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RoleName.
func (r RoleName) IsValid() bool {
	for _, candidate := range validRoleNames {
		if candidate == r {
			return true
		}
	}
	return false
}

// Authority returns the ROLE_ prefixed form used in tokens.
func (r RoleName) Authority() string {
	return AuthorityPrefix + string(r)
}

// ParseRoleName accepts both "ADMIN" and "ROLE_ADMIN".
func ParseRoleName(value string) (RoleName, error) {
	trimmed := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(value)), AuthorityPrefix)
	for _, candidate := range validRoleNames {
		if string(candidate) == trimmed {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
