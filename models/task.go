// Package models contains the data models for the application to be used in request hanlding.
package models

import (
	"strings"
	"time"
)

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority matches value against the allowed levels, ignoring case.
func ParsePriority(value string) (Priority, bool) {
	p := Priority(strings.ToLower(value))
	if p.Valid() {
		return p, true
	}
	return "", false
}

// Valid reports whether p is one of the allowed levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents a task in the system.
// Task has the following properties:
// - Id: The unique identifier of the task, assigned by the store.
// - Title: The title of the task.
// - Description: The description of the task.
// - Completed: Whether the task is done.
// - Priority: The priority level of the task.
// - CreatedAt: The time the task was created.
type Task struct {
	Id          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Priority    Priority  `json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
}
