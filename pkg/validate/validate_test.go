package validate

import (
	"strings"
	"testing"

	"github.com/fajshah/faj-todo-phase2/domain/task"
)

func TestTaskCreate(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		status      task.Status
		priority    task.Priority
		wantErr     error
	}{
		{
			name:  "valid minimal",
			title: "Buy milk",
		},
		{
			name:        "valid full",
			title:       "Buy milk",
			description: "Two liters",
			status:      task.StatusInProgress,
			priority:    task.PriorityHigh,
		},
		{
			name:    "empty title",
			title:   "",
			wantErr: ErrTitleRequired,
		},
		{
			name:    "whitespace only title",
			title:   "   ",
			wantErr: ErrTitleRequired,
		},
		{
			name:  "title at max length",
			title: strings.Repeat("a", 200),
		},
		{
			name:    "title over max length",
			title:   strings.Repeat("a", 201),
			wantErr: ErrTitleTooLong,
		},
		{
			name:  "padded title validated after trimming",
			title: "  " + strings.Repeat("a", 200) + "  ",
		},
		{
			name:  "multibyte title at max length",
			title: strings.Repeat("ü", 200), // 400 bytes, 200 characters
		},
		{
			name:    "multibyte title over max length",
			title:   strings.Repeat("ü", 201),
			wantErr: ErrTitleTooLong,
		},
		{
			name:        "multibyte description at max length",
			title:       "Buy milk",
			description: strings.Repeat("я", 1000),
		},
		{
			name:        "description over max length",
			title:       "Buy milk",
			description: strings.Repeat("d", 1001),
			wantErr:     ErrDescTooLong,
		},
		{
			name:    "unknown status",
			title:   "Buy milk",
			status:  "done",
			wantErr: ErrInvalidStatus,
		},
		{
			name:     "unknown priority",
			title:    "Buy milk",
			priority: "urgent",
			wantErr:  ErrInvalidPriority,
		},
		{
			name:    "first failing rule wins",
			title:   "",
			status:  "done",
			wantErr: ErrTitleRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TaskCreate(tt.title, tt.description, tt.status, tt.priority)
			if err != tt.wantErr {
				t.Errorf("TaskCreate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTaskUpdate(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	statusPtr := func(s task.Status) *task.Status { return &s }
	priorityPtr := func(p task.Priority) *task.Priority { return &p }

	tests := []struct {
		name        string
		title       *string
		description *string
		status      *task.Status
		priority    *task.Priority
		wantErr     error
	}{
		{
			name: "all fields absent",
		},
		{
			name:  "valid title",
			title: strPtr("Buy oat milk"),
		},
		{
			name:    "empty title provided",
			title:   strPtr("  "),
			wantErr: ErrTitleRequired,
		},
		{
			name:    "title over max length",
			title:   strPtr(strings.Repeat("a", 201)),
			wantErr: ErrTitleTooLong,
		},
		{
			name:  "multibyte title at max length",
			title: strPtr(strings.Repeat("ü", 200)),
		},
		{
			name:    "multibyte title over max length",
			title:   strPtr(strings.Repeat("ü", 201)),
			wantErr: ErrTitleTooLong,
		},
		{
			name:        "description over max length",
			description: strPtr(strings.Repeat("d", 1001)),
			wantErr:     ErrDescTooLong,
		},
		{
			name:   "valid status",
			status: statusPtr(task.StatusCompleted),
		},
		{
			name:    "unknown status",
			status:  statusPtr("archived"),
			wantErr: ErrInvalidStatus,
		},
		{
			name:     "unknown priority",
			priority: priorityPtr("critical"),
			wantErr:  ErrInvalidPriority,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TaskUpdate(tt.title, tt.description, tt.status, tt.priority)
			if err != tt.wantErr {
				t.Errorf("TaskUpdate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegistration(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "valid",
			username: "ali",
			email:    "a@x.com",
			password: "secret1",
		},
		{
			name:     "username too short",
			username: "al",
			email:    "a@x.com",
			password: "secret1",
			wantErr:  ErrInvalidUsername,
		},
		{
			name:     "username too long",
			username: strings.Repeat("a", 31),
			email:    "a@x.com",
			password: "secret1",
			wantErr:  ErrInvalidUsername,
		},
		{
			name:     "username with symbols",
			username: "ali-baba",
			email:    "a@x.com",
			password: "secret1",
			wantErr:  ErrInvalidUsername,
		},
		{
			name:     "invalid email",
			username: "ali",
			email:    "not-an-email",
			password: "secret1",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "email with display name rejected",
			username: "ali",
			email:    "Ali <a@x.com>",
			password: "secret1",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "password too short",
			username: "ali",
			email:    "a@x.com",
			password: "12345",
			wantErr:  ErrWeakPassword,
		},
		{
			name:     "password at bcrypt limit",
			username: "ali",
			email:    "a@x.com",
			password: strings.Repeat("p", 72),
		},
		{
			name:     "password over bcrypt limit",
			username: "ali",
			email:    "a@x.com",
			password: strings.Repeat("p", 73),
			wantErr:  ErrPasswordTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Registration(tt.username, tt.email, tt.password)
			if err != tt.wantErr {
				t.Errorf("Registration() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	if err := Login("a@x.com", "secret1"); err != nil {
		t.Errorf("Login() error = %v, want nil", err)
	}
	if err := Login("nope", "secret1"); err != ErrInvalidEmail {
		t.Errorf("Login() error = %v, want %v", err, ErrInvalidEmail)
	}
	if err := Login("a@x.com", ""); err != ErrWeakPassword {
		t.Errorf("Login() error = %v, want %v", err, ErrWeakPassword)
	}
}
