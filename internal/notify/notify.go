// Package notify surfaces due tasks as desktop notifications.
package notify

import (
	"fmt"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/taskdeck/taskdeck/internal/api"
)

// DueWindow is how far ahead a task counts as "due soon".
const DueWindow = 24 * time.Hour

// DueTasks returns the tasks worth notifying about at the given moment:
// not completed, carrying a due date that is overdue or inside the
// window. Order follows the input collection.
func DueTasks(tasks []api.Task, now time.Time) []api.Task {
	due := make([]api.Task, 0)
	for _, t := range tasks {
		if t.Status == api.StatusCompleted || t.DueDate == nil {
			continue
		}
		if t.DueDate.Before(now.Add(DueWindow)) {
			due = append(due, t)
		}
	}
	return due
}

// Send raises one desktop notification per due task.
func Send(tasks []api.Task, now time.Time) error {
	for _, t := range tasks {
		title := "Task due soon"
		if t.DueDate.Before(now) {
			title = "Task overdue"
		}
		body := fmt.Sprintf("%s (due %s)", t.Title, t.DueDate.Format("Jan 2 15:04"))
		if err := beeep.Notify(title, body, ""); err != nil {
			return fmt.Errorf("failed to send notification for %s: %w", t.ID, err)
		}
	}
	return nil
}
