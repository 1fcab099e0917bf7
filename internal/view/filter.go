// Package view derives filtered task lists from the cached collection.
package view

import (
	"strings"

	"github.com/taskdeck/taskdeck/internal/api"
)

// Tab is the dashboard tab selecting a status slice of the collection.
type Tab string

const (
	TabAll        Tab = "all"
	TabPending    Tab = "pending"
	TabInProgress Tab = "in-progress"
	TabCompleted  Tab = "completed"
)

// Criteria is a composable predicate set. Zero values mean "no filter"
// for their dimension; every set dimension must match (AND).
type Criteria struct {
	Tab        Tab
	Status     api.TaskStatus
	CategoryID string
	Priority   api.TaskPriority
	Search     string
}

// Apply returns the tasks matching every set criterion. It is pure,
// deterministic and order-preserving: the result keeps the input
// collection's order and the input is never mutated.
func Apply(tasks []api.Task, c Criteria) []api.Task {
	result := make([]api.Task, 0, len(tasks))
	for _, t := range tasks {
		if matches(t, c) {
			result = append(result, t)
		}
	}
	return result
}

func matches(t api.Task, c Criteria) bool {
	// Tab and status filter apply simultaneously; tab "all" plus a
	// status filter is equivalent to that status's tab.
	switch c.Tab {
	case "", TabAll:
	case TabPending:
		if t.Status != api.StatusPending {
			return false
		}
	case TabInProgress:
		if t.Status != api.StatusInProgress {
			return false
		}
	case TabCompleted:
		if t.Status != api.StatusCompleted {
			return false
		}
	default:
		return false
	}

	if c.Status != "" && t.Status != c.Status {
		return false
	}

	if c.CategoryID != "" {
		if t.Category == nil || t.Category.ID != c.CategoryID {
			return false
		}
	}

	if c.Priority != "" && t.Priority != c.Priority {
		return false
	}

	if c.Search != "" {
		needle := strings.ToLower(c.Search)
		title := strings.ToLower(t.Title)
		desc := strings.ToLower(t.Description)
		if !strings.Contains(title, needle) && !strings.Contains(desc, needle) {
			return false
		}
	}

	return true
}
