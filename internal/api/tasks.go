package api

import (
	"fmt"
	"time"
)

// GetTasks returns the full task collection.
func (c *Client) GetTasks() ([]Task, error) {
	tasks := make([]Task, 0)
	if err := c.Get("/tasks", &tasks); err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a single task by ID, always fresh from the server.
func (c *Client) GetTask(id string) (*Task, error) {
	var task Task
	if err := c.Get("/tasks/"+id, &task); err != nil {
		return nil, fmt.Errorf("failed to get task %s: %w", id, err)
	}
	return &task, nil
}

// CreateTask creates a new task with a JSON body.
func (c *Client) CreateTask(req CreateTaskRequest) (*Task, error) {
	var task Task
	if err := c.Post("/tasks", req, &task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &task, nil
}

// CreateTaskMultipart creates a new task with file attachments.
func (c *Client) CreateTaskMultipart(req CreateTaskRequest, files []FilePart) (*Task, error) {
	var task Task
	if err := c.PostMultipart("/tasks", createTaskFields(req), files, &task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &task, nil
}

// UpdateTask updates an existing task with a JSON body.
func (c *Client) UpdateTask(id string, req UpdateTaskRequest) (*Task, error) {
	var task Task
	if err := c.Put("/tasks/"+id, req, &task); err != nil {
		return nil, fmt.Errorf("failed to update task %s: %w", id, err)
	}
	return &task, nil
}

// UpdateTaskMultipart updates an existing task, adding file attachments.
func (c *Client) UpdateTaskMultipart(id string, req UpdateTaskRequest, files []FilePart) (*Task, error) {
	var task Task
	if err := c.PutMultipart("/tasks/"+id, updateTaskFields(req), files, &task); err != nil {
		return nil, fmt.Errorf("failed to update task %s: %w", id, err)
	}
	return &task, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(id string) error {
	if err := c.Delete("/tasks/" + id); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	return nil
}

// DeleteAttachment removes one attachment from a task. The caller is
// expected to re-fetch the task afterwards; the server owns the derived
// attachment fields.
func (c *Client) DeleteAttachment(taskID, attachmentID string) error {
	if err := c.Delete("/tasks/" + taskID + "/attachments/" + attachmentID); err != nil {
		return fmt.Errorf("failed to delete attachment %s from task %s: %w", attachmentID, taskID, err)
	}
	return nil
}

// createTaskFields flattens a create request into multipart form fields.
// Empty values are omitted, matching the JSON omitempty behavior.
func createTaskFields(req CreateTaskRequest) map[string]string {
	fields := map[string]string{
		"title": req.Title,
	}
	if req.Description != "" {
		fields["description"] = req.Description
	}
	if req.Status != "" {
		fields["status"] = string(req.Status)
	}
	if req.Priority != "" {
		fields["priority"] = string(req.Priority)
	}
	if req.CategoryID != "" {
		fields["category"] = req.CategoryID
	}
	if req.DueDate != nil {
		fields["dueDate"] = req.DueDate.Format(time.RFC3339)
	}
	return fields
}

// updateTaskFields flattens an update request into multipart form fields.
func updateTaskFields(req UpdateTaskRequest) map[string]string {
	fields := map[string]string{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Status != nil {
		fields["status"] = string(*req.Status)
	}
	if req.Priority != nil {
		fields["priority"] = string(*req.Priority)
	}
	if req.CategoryID != nil {
		fields["category"] = *req.CategoryID
	}
	if req.DueDate != nil {
		fields["dueDate"] = req.DueDate.Format(time.RFC3339)
	}
	return fields
}
