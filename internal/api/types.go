// Package api provides a client for the taskdeck REST API.
package api

import "time"

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// TaskPriority is the urgency level of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// User represents the authenticated account.
type User struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	GoogleID string `json:"googleId,omitempty"`
}

// Category represents a task category.
type Category struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Attachment represents a file stored with a task. Attachments are
// created and destroyed only through task create/update and the
// attachment-delete endpoint, never independently.
type Attachment struct {
	ID           string `json:"_id"`
	OriginalName string `json:"originalName"`
	Filename     string `json:"filename"`
	Size         int64  `json:"size"`
}

// Task represents a task as the server persisted it. The Category field
// is a denormalized snapshot returned by the server, not a live
// back-reference into the category collection.
type Task struct {
	ID                    string       `json:"_id"`
	Title                 string       `json:"title"`
	Description           string       `json:"description,omitempty"`
	Status                TaskStatus   `json:"status"`
	Priority              TaskPriority `json:"priority"`
	Category              *Category    `json:"category,omitempty"`
	DueDate               *time.Time   `json:"dueDate,omitempty"`
	Attachments           []Attachment `json:"attachments"`
	GoogleCalendarEventID string       `json:"googleCalendarEventId,omitempty"`
	CreatedAt             time.Time    `json:"createdAt"`
	UpdatedAt             time.Time    `json:"updatedAt"`
}

// CreateTaskRequest is the request body for creating a task.
type CreateTaskRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status,omitempty"`
	Priority    TaskPriority `json:"priority,omitempty"`
	CategoryID  string       `json:"category,omitempty"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
}

// UpdateTaskRequest is the request body for updating a task. Nil fields
// are omitted and left unchanged by the server.
type UpdateTaskRequest struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Status      *TaskStatus   `json:"status,omitempty"`
	Priority    *TaskPriority `json:"priority,omitempty"`
	CategoryID  *string       `json:"category,omitempty"`
	DueDate     *time.Time    `json:"dueDate,omitempty"`
}

// CategoryRequest is the request body for creating or updating a category.
type CategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Credentials is the request body for password login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the request body for account registration.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by the login, register and google endpoints.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ProfileRequest is the request body for a profile update.
type ProfileRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// PasswordRequest is the request body for a password change.
type PasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// CalendarEventResponse is returned when a task is mirrored into the
// user's calendar.
type CalendarEventResponse struct {
	EventID string `json:"eventId"`
}

// StringPtr returns a pointer to the given string (helper for update requests).
func StringPtr(s string) *string {
	return &s
}

// StatusPtr returns a pointer to the given status.
func StatusPtr(s TaskStatus) *TaskStatus {
	return &s
}

// PriorityPtr returns a pointer to the given priority.
func PriorityPtr(p TaskPriority) *TaskPriority {
	return &p
}
