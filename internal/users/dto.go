package users

import (
	"github.com/Emman-24/backendFlorist/pkg/db/models"
)

// UserDTO is the transport shape that omits credentials.
type UserDTO struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	FullName *string  `json:"fullName,omitempty"`
	Roles    []string `json:"roles"`
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	roles := make([]string, 0, len(u.Roles))
	for _, name := range u.RoleNames() {
		roles = append(roles, name.String())
	}

	return &UserDTO{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Roles:    roles,
	}
}

// Identity adapts a stored user to the token service identity contract.
type Identity struct {
	user *models.User
}

func NewIdentity(u *models.User) Identity {
	return Identity{user: u}
}

func (i Identity) Username() string {
	if i.user == nil {
		return ""
	}
	return i.user.Username
}

func (i Identity) Authorities() []string {
	if i.user == nil {
		return nil
	}
	return i.user.Authorities()
}

// User returns the wrapped record.
func (i Identity) User() *models.User {
	return i.user
}
