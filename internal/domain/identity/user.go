package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost = 12

	maxNameLen  = 255
	maxEmailLen = 255
	minPassword = 8
	// bcrypt only reads the first 72 bytes
	maxPassword = 72
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User is an account owning finance records
type User struct {
	shared.BaseAggregateRoot
	Name         string
	Email        string
	PasswordHash string
	LastLoginAt  *time.Time
}

// NewUser registers an account. The name is trimmed, the email normalized
// and the password stored as a bcrypt hash.
func NewUser(name, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if err := firstError(checkName(name), checkEmail(email), checkPassword(password)); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		PasswordHash:      string(hash),
	}
	u.AddDomainEvent(shared.NewLifecycleEvent("user", "registered", u.ID, u.ID, nil, map[string]any{"email": email}))
	return u, nil
}

func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordLogin stamps the last successful login
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt, u.UpdatedAt = &now, now
}

// NormalizeEmail is the form emails are stored and looked up in
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func checkName(name string) error {
	switch {
	case name == "":
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	case len(name) > maxNameLen:
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 255 characters")
	}
	return nil
}

func checkEmail(email string) error {
	switch {
	case len(email) > maxEmailLen:
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 255 characters")
	case !emailPattern.MatchString(email):
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func checkPassword(password string) error {
	switch {
	case password == "":
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	case len(password) < minPassword:
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	case len(password) > maxPassword:
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}
