// Package validate holds the request validation rules, kept separate from the
// persistence layer so the same rules apply regardless of storage backend.
// Every function checks rules in order and returns the first violation as an
// error, or nil when the payload is valid. No function has side effects.
package validate

import (
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/fajshah/faj-todo-phase2/domain/task"
)

const (
	// MaxTitleLen is the maximum task title length in characters.
	MaxTitleLen = 200
	// MaxDescriptionLen is the maximum task description length in characters.
	MaxDescriptionLen = 1000
	// MinUsernameLen and MaxUsernameLen bound the username length.
	MinUsernameLen = 3
	MaxUsernameLen = 30
	// MinPasswordLen is the minimum password length.
	MinPasswordLen = 6
	// MaxPasswordLen matches bcrypt's 72-byte input limit.
	MaxPasswordLen = 72
)

var (
	ErrTitleRequired   = errors.New("title is required and must be a non-empty string")
	ErrTitleTooLong    = errors.New("title cannot exceed 200 characters")
	ErrDescTooLong     = errors.New("description cannot exceed 1000 characters")
	ErrInvalidStatus   = errors.New("status must be one of: pending, in-progress, completed")
	ErrInvalidPriority = errors.New("priority must be one of: low, medium, high")
	ErrInvalidUsername = errors.New("username must be alphanumeric and 3-30 characters long")
	ErrInvalidEmail    = errors.New("valid email is required")
	ErrWeakPassword    = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong = errors.New("password must be at most 72 characters long")
)

// TaskCreate validates the fields of a task creation payload.
// Title is validated after trimming, matching how it is stored.
func TaskCreate(title, description string, status task.Status, priority task.Priority) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return ErrTitleTooLong
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLen {
		return ErrDescTooLong
	}
	if status != "" && !task.ValidStatus(status) {
		return ErrInvalidStatus
	}
	if priority != "" && !task.ValidPriority(priority) {
		return ErrInvalidPriority
	}
	return nil
}

// TaskUpdate validates the provided fields of a partial task update.
// Nil fields were not provided and are not checked.
func TaskUpdate(title, description *string, status *task.Status, priority *task.Priority) error {
	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return ErrTitleRequired
		}
		if utf8.RuneCountInString(trimmed) > MaxTitleLen {
			return ErrTitleTooLong
		}
	}
	if description != nil && utf8.RuneCountInString(*description) > MaxDescriptionLen {
		return ErrDescTooLong
	}
	if status != nil && !task.ValidStatus(*status) {
		return ErrInvalidStatus
	}
	if priority != nil && !task.ValidPriority(*priority) {
		return ErrInvalidPriority
	}
	return nil
}

// Registration validates a registration payload.
func Registration(username, email, password string) error {
	if !validUsername(username) {
		return ErrInvalidUsername
	}
	if !validEmail(email) {
		return ErrInvalidEmail
	}
	return Password(password)
}

// Login validates a login payload.
func Login(email, password string) error {
	if !validEmail(email) {
		return ErrInvalidEmail
	}
	if password == "" {
		return ErrWeakPassword
	}
	return nil
}

// Password validates a password against the length rules.
func Password(password string) error {
	if len(password) < MinPasswordLen {
		return ErrWeakPassword
	}
	if len(password) > MaxPasswordLen {
		return ErrPasswordTooLong
	}
	return nil
}

func validUsername(username string) bool {
	if len(username) < MinUsernameLen || len(username) > MaxUsernameLen {
		return false
	}
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
