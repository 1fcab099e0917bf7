package api

import "fmt"

// AddTaskToCalendar mirrors a task into the user's calendar and returns
// the created event's ID.
func (c *Client) AddTaskToCalendar(taskID string) (*CalendarEventResponse, error) {
	var resp CalendarEventResponse
	if err := c.Post("/calendar/tasks/"+taskID, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to add task %s to calendar: %w", taskID, err)
	}
	return &resp, nil
}

// RemoveTaskFromCalendar deletes a task's mirrored calendar event.
func (c *Client) RemoveTaskFromCalendar(taskID string) error {
	if err := c.Delete("/calendar/tasks/" + taskID); err != nil {
		return fmt.Errorf("failed to remove task %s from calendar: %w", taskID, err)
	}
	return nil
}
