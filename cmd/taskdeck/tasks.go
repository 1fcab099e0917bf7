package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/attach"
	"github.com/taskdeck/taskdeck/internal/notify"
	"github.com/taskdeck/taskdeck/internal/view"
)

func (a *app) cmdList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	tab := fs.String("tab", "all", "Tab: all, pending, in-progress, completed")
	status := fs.String("status", "", "Filter by status")
	category := fs.String("category", "", "Filter by category name or id")
	priority := fs.String("priority", "", "Filter by priority: low, medium, high")
	search := fs.String("search", "", "Case-insensitive search in title/description")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	criteria := view.Criteria{
		Tab:      view.Tab(*tab),
		Status:   api.TaskStatus(*status),
		Priority: api.TaskPriority(*priority),
		Search:   *search,
	}
	if criteria.Status != "" && !criteria.Status.Valid() {
		return fmt.Errorf("invalid status %q", *status)
	}
	if criteria.Priority != "" && !criteria.Priority.Valid() {
		return fmt.Errorf("invalid priority %q", *priority)
	}
	if *category != "" {
		id, err := a.resolveCategory(*category)
		if err != nil {
			return err
		}
		criteria.CategoryID = id
	}

	tasks := view.Apply(a.cache.Tasks(), criteria)
	printTaskTable(tasks, a.cfg.UI.Color)
	return nil
}

func (a *app) cmdShow(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: taskdeck show <task-id>")
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	// Detail views always fetch fresh; the collection may be stale.
	task, err := a.cache.GetTask(args[0])
	if err != nil {
		return fmt.Errorf("%s", a.cache.Err())
	}

	printTaskDetail(task, a.cfg.UI.Color)
	return nil
}

func (a *app) cmdAdd(args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	title := fs.String("title", "", "Task title")
	desc := fs.String("desc", "", "Task description")
	status := fs.String("status", string(api.StatusPending), "Status")
	priority := fs.String("priority", string(api.PriorityMedium), "Priority")
	category := fs.String("category", "", "Category name or id")
	due := fs.String("due", "", "Due date (2006-01-02 or RFC3339)")
	files := fs.String("attach", "", "Comma-separated file paths to attach")
	copyID := fs.Bool("copy", false, "Copy the new task id to the clipboard")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *title == "" {
		return fmt.Errorf("usage: taskdeck add -title <title> [options]")
	}

	req := api.CreateTaskRequest{
		Title:       *title,
		Description: *desc,
		Status:      api.TaskStatus(*status),
		Priority:    api.TaskPriority(*priority),
	}
	if !req.Status.Valid() {
		return fmt.Errorf("invalid status %q", *status)
	}
	if !req.Priority.Valid() {
		return fmt.Errorf("invalid priority %q", *priority)
	}
	if *due != "" {
		dueDate, err := parseDueDate(*due)
		if err != nil {
			return err
		}
		req.DueDate = &dueDate
	}

	if err := a.requireAuth(); err != nil {
		return err
	}

	if *category != "" {
		id, err := a.resolveCategory(*category)
		if err != nil {
			return err
		}
		req.CategoryID = id
	}

	parts, cleanup, err := stageFiles(*files)
	if err != nil {
		return err
	}
	defer cleanup()

	task, err := a.cache.CreateTask(req, parts)
	if err != nil {
		return fmt.Errorf("%s", a.cache.Err())
	}

	fmt.Printf("Created task %s: %s\n", task.ID, task.Title)
	if *copyID {
		if err := clipboard.WriteAll(task.ID); err == nil {
			fmt.Println("Task id copied to clipboard.")
		}
	}
	return nil
}

func (a *app) cmdEdit(args []string) error {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		return fmt.Errorf("usage: taskdeck edit <task-id> [options]")
	}
	taskID := args[0]

	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	title := fs.String("title", "", "New title")
	desc := fs.String("desc", "", "New description")
	status := fs.String("status", "", "New status")
	priority := fs.String("priority", "", "New priority")
	category := fs.String("category", "", "New category name or id")
	due := fs.String("due", "", "New due date (2006-01-02 or RFC3339)")
	files := fs.String("attach", "", "Comma-separated file paths to attach")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	var req api.UpdateTaskRequest
	if *title != "" {
		req.Title = api.StringPtr(*title)
	}
	if *desc != "" {
		req.Description = api.StringPtr(*desc)
	}
	if *status != "" {
		s := api.TaskStatus(*status)
		if !s.Valid() {
			return fmt.Errorf("invalid status %q", *status)
		}
		req.Status = &s
	}
	if *priority != "" {
		p := api.TaskPriority(*priority)
		if !p.Valid() {
			return fmt.Errorf("invalid priority %q", *priority)
		}
		req.Priority = &p
	}
	if *due != "" {
		dueDate, err := parseDueDate(*due)
		if err != nil {
			return err
		}
		req.DueDate = &dueDate
	}

	if err := a.requireAuth(); err != nil {
		return err
	}

	if *category != "" {
		id, err := a.resolveCategory(*category)
		if err != nil {
			return err
		}
		req.CategoryID = &id
	}

	parts, cleanup, err := stageFiles(*files)
	if err != nil {
		return err
	}
	defer cleanup()

	task, err := a.cache.UpdateTask(taskID, req, parts)
	if err != nil {
		return fmt.Errorf("%s", a.cache.Err())
	}

	fmt.Printf("Updated task %s: %s\n", task.ID, task.Title)
	return nil
}

func (a *app) cmdRemove(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: taskdeck rm <task-id>")
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	if err := a.cache.DeleteTask(args[0]); err != nil {
		return fmt.Errorf("%s", a.cache.Err())
	}

	fmt.Printf("Deleted task %s\n", args[0])
	return nil
}

func (a *app) cmdRemoveAttachment(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: taskdeck rm-attachment <task-id> <attachment-id>")
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	task, err := a.cache.RemoveAttachment(args[0], args[1])
	if err != nil {
		return fmt.Errorf("%s", a.cache.Err())
	}

	fmt.Printf("Removed attachment. Task %s now has %d attachment(s).\n", task.ID, len(task.Attachments))
	return nil
}

func (a *app) cmdCalendar(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: taskdeck calendar add|rm <task-id>")
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	taskID := args[1]
	switch args[0] {
	case "add":
		eventID, err := a.cache.AddToCalendar(taskID)
		if err != nil {
			return fmt.Errorf("%s", a.cache.Err())
		}
		fmt.Printf("Task %s added to calendar (event %s)\n", taskID, eventID)
		return nil
	case "rm":
		if err := a.cache.RemoveFromCalendar(taskID); err != nil {
			return fmt.Errorf("%s", a.cache.Err())
		}
		fmt.Printf("Task %s removed from calendar\n", taskID)
		return nil
	default:
		return fmt.Errorf("usage: taskdeck calendar add|rm <task-id>")
	}
}

func (a *app) cmdNotifyDue(args []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	if !a.cfg.UI.Notifications {
		return fmt.Errorf("notifications are disabled in the config file")
	}

	now := time.Now()
	due := notify.DueTasks(a.cache.Tasks(), now)
	if len(due) == 0 {
		fmt.Println("Nothing due.")
		return nil
	}
	return notify.Send(due, now)
}

// resolveCategory maps a category name (or raw id) to its id using the
// cached collection.
func (a *app) resolveCategory(nameOrID string) (string, error) {
	for _, cat := range a.cache.Categories() {
		if strings.EqualFold(cat.Name, nameOrID) || cat.ID == nameOrID {
			return cat.ID, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", nameOrID)
}

// stageFiles runs the attachment pipeline over a comma-separated path
// list, printing per-file rejections, and returns the multipart parts
// plus the pipeline cleanup.
func stageFiles(list string) ([]api.FilePart, func(), error) {
	if list == "" {
		return nil, func() {}, nil
	}

	pipeline := attach.NewPipeline()
	_, rejected, err := pipeline.Stage(strings.Split(list, ","))
	if err != nil {
		pipeline.Clear()
		return nil, nil, err
	}
	for _, r := range rejected {
		fmt.Printf("Skipping %s: %s\n", r.Name, r.Reason)
	}

	return pipeline.Parts(), pipeline.Clear, nil
}

// parseDueDate accepts a plain date or a full RFC3339 timestamp.
func parseDueDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q (want 2006-01-02 or RFC3339)", s)
	}
	return t, nil
}
