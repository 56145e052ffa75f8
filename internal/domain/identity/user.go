// Package identity holds application users and their roles.
package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared/valueobject"
	"golang.org/x/crypto/bcrypt"
)

// Role is a user's authorization level
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
	RoleViewer   Role = "viewer"
)

// Roles lists every valid role
var Roles = []Role{RoleAdmin, RoleManager, RoleEmployee, RoleViewer}

// Password cost for bcrypt
var bcryptCost = 12

// SetPasswordCost changes the bcrypt cost used by SetPassword. Tests lower it
// to bcrypt.MinCost.
func SetPasswordCost(cost int) {
	bcryptCost = cost
}

const (
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt ignores anything longer
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User is an account that can sign in
type User struct {
	shared.BaseEntity
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	Phone        valueobject.Phone
	IsActive     bool
	LastLoginAt  *time.Time
}

// NewUser creates an active employee account with a hashed password
func NewUser(email, password, firstName, lastName string) (*User, error) {
	u := &User{
		BaseEntity: shared.NewBaseEntity(),
		Email:      NormalizeEmail(email),
		Role:       RoleEmployee,
		IsActive:   true,
	}
	u.SetName(firstName, lastName)
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// NormalizeEmail lower-cases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SetPassword validates and hashes a new password
func (u *User) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// VerifyPassword checks password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// SetName stores normalized first and last names
func (u *User) SetName(firstName, lastName string) {
	u.FirstName = valueobject.PersonName(firstName)
	u.LastName = valueobject.PersonName(lastName)
}

// SetPhone joins a country code and national number. Both empty clears the phone.
func (u *User) SetPhone(countryCode, number string) error {
	if strings.TrimSpace(countryCode) == "" && strings.TrimSpace(number) == "" {
		u.Phone = valueobject.Phone{}
		return nil
	}
	p, err := valueobject.NewPhone(countryCode, number)
	if err != nil {
		return shared.NewValidationError("phoneNumber", err.Error())
	}
	u.Phone = p
	return nil
}

// RecordLogin stamps the last successful sign-in
func (u *User) RecordLogin(now time.Time) {
	u.LastLoginAt = &now
}

// FullName returns "First Last"
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// HasRole reports whether the user holds one of roles
func (u *User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// Validate checks the email and role
func (u *User) Validate() error {
	if err := shared.Required("email", u.Email); err != nil {
		return err
	}
	if len(u.Email) > 200 || !emailRegex.MatchString(u.Email) {
		return shared.NewValidationError("email", "Invalid email format")
	}
	return shared.OneOf("role", u.Role, Roles...)
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewValidationError("password", "password is required")
	}
	if len(password) < minPasswordLength {
		return shared.NewValidationError("password", "password must be at least 8 characters")
	}
	if len(password) > maxPasswordLength {
		return shared.NewValidationError("password", "password cannot exceed 72 characters")
	}
	return nil
}
