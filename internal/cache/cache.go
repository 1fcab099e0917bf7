// Package cache is the single source of truth for the in-memory task and
// category collections, reconciled with the server confirm-then-apply:
// local state changes only from response payloads, never from request
// payloads, so the collections always reflect what the server persisted.
package cache

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/taskdeck/taskdeck/internal/api"
)

// Cache holds the task and category collections. All writes go through
// the cache's own methods under one mutex (single writer); reads hand out
// snapshot copies. Concurrent same-id mutations are not serialized: if
// two updates to one task race, the collection reflects whichever
// response settled last.
type Cache struct {
	mu sync.Mutex

	client *api.Client
	log    *logrus.Logger

	tasks      []api.Task
	categories []api.Category

	loading bool
	lastErr string
	closed  bool
}

// New creates an empty cache around the given API client.
func New(client *api.Client, log *logrus.Logger) *Cache {
	if log == nil {
		log = logrus.New()
	}
	return &Cache{
		client: client,
		log:    log,
	}
}

// HandleAuthChange is the session store's subscription target: it loads
// both collections when authentication turns on and clears them when it
// turns off, so no stale data survives logout.
func (c *Cache) HandleAuthChange(authenticated bool) {
	if authenticated {
		if err := c.Load(); err != nil {
			c.log.WithField("operation", "cache.HandleAuthChange").
				WithError(err).Warn("initial load failed")
		}
		return
	}

	c.mu.Lock()
	c.tasks = nil
	c.categories = nil
	c.lastErr = ""
	c.mu.Unlock()
}

// Load fetches the full task and category collections.
func (c *Cache) Load() error {
	const op = "cache.Load"

	c.begin()
	defer c.end()

	tasks, err := c.client.GetTasks()
	if err != nil {
		return c.fail(op, "failed to load tasks", err)
	}

	categories, err := c.client.GetCategories()
	if err != nil {
		return c.fail(op, "failed to load categories", err)
	}

	c.mu.Lock()
	if !c.closed {
		c.tasks = tasks
		c.categories = categories
		c.lastErr = ""
	}
	c.mu.Unlock()

	c.log.WithField("operation", op).
		WithField("tasks", len(tasks)).
		WithField("categories", len(categories)).
		Debug("collections loaded")
	return nil
}

// Tasks returns a snapshot copy of the task collection.
func (c *Cache) Tasks() []api.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]api.Task(nil), c.tasks...)
}

// Categories returns a snapshot copy of the category collection.
func (c *Cache) Categories() []api.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]api.Category(nil), c.categories...)
}

// Loading reports whether a remote call is in flight.
func (c *Cache) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the last failure reason, empty after a successful operation.
func (c *Cache) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Close marks the cache disposed. Responses settling after Close are
// discarded instead of mutating a torn-down cache.
func (c *Cache) Close() {
	c.mu.Lock()
	c.closed = true
	c.tasks = nil
	c.categories = nil
	c.mu.Unlock()
}

// GetTask fetches a single task fresh from the server. Detail views need
// the latest attachments and state; the in-memory collection may be stale
// relative to a just-completed background mutation.
func (c *Cache) GetTask(id string) (*api.Task, error) {
	const op = "cache.GetTask"

	c.begin()
	defer c.end()

	task, err := c.client.GetTask(id)
	if err != nil {
		return nil, c.fail(op, "failed to load task details", err)
	}

	c.clearErr()
	return task, nil
}

// CreateTask creates a task, multipart when files are staged, and appends
// the server's record to the collection.
func (c *Cache) CreateTask(req api.CreateTaskRequest, files []api.FilePart) (*api.Task, error) {
	const op = "cache.CreateTask"

	c.begin()
	defer c.end()

	var task *api.Task
	var err error
	if len(files) > 0 {
		task, err = c.client.CreateTaskMultipart(req, files)
	} else {
		task, err = c.client.CreateTask(req)
	}
	if err != nil {
		return nil, c.fail(op, "failed to create task", err)
	}

	c.mu.Lock()
	if !c.closed {
		c.tasks = append(c.tasks, *task)
		c.lastErr = ""
	}
	c.mu.Unlock()

	c.log.WithField("operation", op).WithField("task", task.ID).Debug("task created")
	return task, nil
}

// UpdateTask updates a task and replaces the matching entry by id with
// the server's record. The whole record is replaced, never field-merged,
// so a late stale response cannot corrupt a newer record piecemeal.
func (c *Cache) UpdateTask(id string, req api.UpdateTaskRequest, files []api.FilePart) (*api.Task, error) {
	const op = "cache.UpdateTask"

	c.begin()
	defer c.end()

	var task *api.Task
	var err error
	if len(files) > 0 {
		task, err = c.client.UpdateTaskMultipart(id, req, files)
	} else {
		task, err = c.client.UpdateTask(id, req)
	}
	if err != nil {
		return nil, c.fail(op, "failed to update task", err)
	}

	c.replaceTask(*task)
	return task, nil
}

// DeleteTask deletes a task remotely, then drops it from the collection.
func (c *Cache) DeleteTask(id string) error {
	const op = "cache.DeleteTask"

	c.begin()
	defer c.end()

	if err := c.client.DeleteTask(id); err != nil {
		return c.fail(op, "failed to delete task", err)
	}

	c.mu.Lock()
	if !c.closed {
		kept := c.tasks[:0]
		for _, t := range c.tasks {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		c.tasks = kept
		c.lastErr = ""
	}
	c.mu.Unlock()
	return nil
}

// RemoveAttachment deletes one attachment, then re-fetches the task and
// replaces the entry. Attachments are not patched in place: the server is
// authoritative for derived fields like size and filename.
func (c *Cache) RemoveAttachment(taskID, attachmentID string) (*api.Task, error) {
	const op = "cache.RemoveAttachment"

	c.begin()
	defer c.end()

	if err := c.client.DeleteAttachment(taskID, attachmentID); err != nil {
		return nil, c.fail(op, "failed to remove attachment", err)
	}

	task, err := c.client.GetTask(taskID)
	if err != nil {
		return nil, c.fail(op, "failed to reload task after attachment removal", err)
	}

	c.replaceTask(*task)
	return task, nil
}

// AddToCalendar mirrors a task into the calendar and records the event id
// on the cached entry. A task without a due date cannot carry a calendar
// event; that case is rejected before any request is issued.
func (c *Cache) AddToCalendar(taskID string) (string, error) {
	const op = "cache.AddToCalendar"

	c.mu.Lock()
	for _, t := range c.tasks {
		if t.ID == taskID && t.DueDate == nil {
			c.mu.Unlock()
			err := fmt.Errorf("task %s has no due date", taskID)
			c.fail(op, "task needs a due date before it can be scheduled", err)
			return "", err
		}
	}
	c.mu.Unlock()

	c.begin()
	defer c.end()

	resp, err := c.client.AddTaskToCalendar(taskID)
	if err != nil {
		return "", c.fail(op, "failed to add task to calendar", err)
	}

	c.patchCalendarEvent(taskID, resp.EventID)
	return resp.EventID, nil
}

// RemoveFromCalendar deletes a task's calendar event and clears the event
// id on the cached entry.
func (c *Cache) RemoveFromCalendar(taskID string) error {
	const op = "cache.RemoveFromCalendar"

	c.begin()
	defer c.end()

	if err := c.client.RemoveTaskFromCalendar(taskID); err != nil {
		return c.fail(op, "failed to remove task from calendar", err)
	}

	c.patchCalendarEvent(taskID, "")
	return nil
}

// CreateCategory creates a category and appends the server's record.
func (c *Cache) CreateCategory(req api.CategoryRequest) (*api.Category, error) {
	const op = "cache.CreateCategory"

	c.begin()
	defer c.end()

	category, err := c.client.CreateCategory(req)
	if err != nil {
		return nil, c.fail(op, "failed to create category", err)
	}

	c.mu.Lock()
	if !c.closed {
		c.categories = append(c.categories, *category)
		c.lastErr = ""
	}
	c.mu.Unlock()
	return category, nil
}

// UpdateCategory updates a category and replaces the entry by id.
func (c *Cache) UpdateCategory(id string, req api.CategoryRequest) (*api.Category, error) {
	const op = "cache.UpdateCategory"

	c.begin()
	defer c.end()

	category, err := c.client.UpdateCategory(id, req)
	if err != nil {
		return nil, c.fail(op, "failed to update category", err)
	}

	c.mu.Lock()
	if !c.closed {
		for i := range c.categories {
			if c.categories[i].ID == category.ID {
				c.categories[i] = *category
			}
		}
		c.lastErr = ""
	}
	c.mu.Unlock()
	return category, nil
}

// DeleteCategory deletes a category remotely, then drops it locally.
func (c *Cache) DeleteCategory(id string) error {
	const op = "cache.DeleteCategory"

	c.begin()
	defer c.end()

	if err := c.client.DeleteCategory(id); err != nil {
		return c.fail(op, "failed to delete category", err)
	}

	c.mu.Lock()
	if !c.closed {
		kept := c.categories[:0]
		for _, cat := range c.categories {
			if cat.ID != id {
				kept = append(kept, cat)
			}
		}
		c.categories = kept
		c.lastErr = ""
	}
	c.mu.Unlock()
	return nil
}

// replaceTask swaps the collection entry with the given id for the
// server's record, atomically as one whole record.
func (c *Cache) replaceTask(task api.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	for i := range c.tasks {
		if c.tasks[i].ID == task.ID {
			c.tasks[i] = task
		}
	}
	c.lastErr = ""
}

// patchCalendarEvent is the one sanctioned field-level mutation: the
// calendar endpoints return only the event id, so the cached record is
// copied, the event field set, and the copy swapped in whole.
func (c *Cache) patchCalendarEvent(taskID, eventID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	for i := range c.tasks {
		if c.tasks[i].ID == taskID {
			updated := c.tasks[i]
			updated.GoogleCalendarEventID = eventID
			c.tasks[i] = updated
		}
	}
	c.lastErr = ""
}

func (c *Cache) begin() {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()
}

func (c *Cache) end() {
	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()
}

// fail records a displayable reason and passes the original error through
// so call sites can still react to it.
func (c *Cache) fail(op, msg string, err error) error {
	c.mu.Lock()
	c.lastErr = msg
	c.mu.Unlock()
	c.log.WithField("operation", op).WithError(err).Warn(msg)
	return err
}

func (c *Cache) clearErr() {
	c.mu.Lock()
	c.lastErr = ""
	c.mu.Unlock()
}
