package entities

import (
	"regexp"
	"strings"
	"time"
)

// UserRole is the permission level of an inventory user
type UserRole string

const (
	UserRoleAdmin    UserRole = "ADMIN"
	UserRoleManager  UserRole = "MANAGER"
	UserRoleUser     UserRole = "USER"
	UserRoleReadOnly UserRole = "READONLY"
)

// UserRoles lists every role in display order
var UserRoles = []UserRole{
	UserRoleAdmin,
	UserRoleManager,
	UserRoleUser,
	UserRoleReadOnly,
}

// Valid reports whether r is one of the known roles
func (r UserRole) Valid() bool {
	for _, known := range UserRoles {
		if r == known {
			return true
		}
	}
	return false
}

// EmailPattern is the basic local@domain check applied to user emails
var EmailPattern = regexp.MustCompile(`^\S+@\S+$`)

// User represents a person managed by the inventory system
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	Area      string    `json:"area"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate checks the fields every stored user must carry
func (u *User) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(u.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "is required"})
	}
	switch {
	case strings.TrimSpace(u.Email) == "":
		errs = append(errs, FieldError{Field: "email", Message: "is required"})
	case !EmailPattern.MatchString(u.Email):
		errs = append(errs, FieldError{Field: "email", Message: "is not a valid email"})
	}
	switch {
	case u.Role == "":
		errs = append(errs, FieldError{Field: "role", Message: "is required"})
	case !u.Role.Valid():
		errs = append(errs, FieldError{Field: "role", Message: "is not a known role"})
	}
	if strings.TrimSpace(u.Area) == "" {
		errs = append(errs, FieldError{Field: "area", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UserPatch is a partial user. Active is absent: it only changes through ToggleActive.
type UserPatch struct {
	Name  *string   `json:"name,omitempty"`
	Email *string   `json:"email,omitempty"`
	Role  *UserRole `json:"role,omitempty"`
	Area  *string   `json:"area,omitempty"`
}

// ApplyTo merges the present fields of the patch onto u
func (p UserPatch) ApplyTo(u *User) {
	setString(&u.Name, p.Name)
	setString(&u.Email, p.Email)
	if p.Role != nil {
		u.Role = *p.Role
	}
	setString(&u.Area, p.Area)
}

// NewUser builds an unsaved, active user from a creation patch
func NewUser(p UserPatch) *User {
	u := &User{Active: true}
	p.ApplyTo(u)
	return u
}
