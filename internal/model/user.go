package model

import (
	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

// User represents a storefront account. ExternalID holds the identity
// provider's id when the account is linked to one.
type User struct {
	BaseModel
	Name         string `gorm:"type:varchar(255)" json:"name" validate:"required"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'customer'" json:"role" validate:"omitempty,oneof=admin customer"`
	ExternalID   string `gorm:"type:varchar(255);uniqueIndex:idx_users_external_id,where:external_id <> ''" json:"external_id,omitempty"`
	PasswordHash string `gorm:"column:password;type:varchar(255)" json:"-"` // Hidden from JSON
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserPatch is a partial user update; nil fields are left untouched.
type UserPatch struct {
	Name       *string `json:"name" validate:"omitempty,min=1"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Role       *Role   `json:"role" validate:"omitempty,oneof=admin customer"`
	ExternalID *string `json:"external_id"`
}

func (patch UserPatch) Apply(u *User) {
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.ExternalID != nil {
		u.ExternalID = *patch.ExternalID
	}
}
