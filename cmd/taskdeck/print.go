package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/taskdeck/taskdeck/internal/api"
)

const titleWidth = 40

var (
	dimStyle      = lipgloss.NewStyle().Faint(true)
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	priorityStyle = map[api.TaskPriority]lipgloss.Style{
		api.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		api.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		api.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
)

func printTaskTable(tasks []api.Task, color bool) {
	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return
	}

	for _, t := range tasks {
		title := runewidth.Truncate(t.Title, titleWidth, "…")
		title = runewidth.FillRight(title, titleWidth)

		line := fmt.Sprintf("%-26s %-12s %-7s %s", t.ID, t.Status, t.Priority, title)
		if color {
			if style, ok := priorityStyle[t.Priority]; ok {
				line = fmt.Sprintf("%-26s %-12s %s %s", t.ID, t.Status, style.Render(fmt.Sprintf("%-7s", t.Priority)), title)
			}
		}

		if t.Category != nil {
			line += " " + renderCategory(t.Category, color)
		}
		if t.DueDate != nil {
			line += " " + renderDue(*t.DueDate, t.Status, color)
		}
		if t.GoogleCalendarEventID != "" {
			line += " [cal]"
		}

		fmt.Println(line)
	}
}

func printTaskDetail(t *api.Task, color bool) {
	fmt.Printf("Task:     %s\n", t.ID)
	fmt.Printf("Title:    %s\n", t.Title)
	if t.Description != "" {
		fmt.Printf("Desc:     %s\n", t.Description)
	}
	fmt.Printf("Status:   %s\n", t.Status)
	fmt.Printf("Priority: %s\n", t.Priority)
	if t.Category != nil {
		fmt.Printf("Category: %s\n", renderCategory(t.Category, color))
	}
	if t.DueDate != nil {
		fmt.Printf("Due:      %s\n", t.DueDate.Format("2006-01-02 15:04"))
	}
	if t.GoogleCalendarEventID != "" {
		fmt.Printf("Calendar: event %s\n", t.GoogleCalendarEventID)
	}
	fmt.Printf("Created:  %s\n", t.CreatedAt.Format(time.RFC3339))
	fmt.Printf("Updated:  %s\n", t.UpdatedAt.Format(time.RFC3339))

	if len(t.Attachments) > 0 {
		fmt.Println("Attachments:")
		for _, att := range t.Attachments {
			fmt.Printf("  %s  %s (%d bytes)\n", att.ID, att.OriginalName, att.Size)
		}
	}
}

func printCategoryTable(categories []api.Category, color bool) {
	if len(categories) == 0 {
		fmt.Println("No categories.")
		return
	}
	for _, cat := range categories {
		fmt.Printf("%-26s %s\n", cat.ID, renderCategory(&cat, color))
	}
}

// renderCategory shows the category name in its configured color.
func renderCategory(cat *api.Category, color bool) string {
	if !color || cat.Color == "" {
		return "#" + cat.Name
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(cat.Color)).Render("#" + cat.Name)
}

func renderDue(due time.Time, status api.TaskStatus, color bool) string {
	label := "due " + due.Format("2006-01-02")
	if status != api.StatusCompleted && due.Before(time.Now()) {
		if color {
			return overdueStyle.Render(label + " (overdue)")
		}
		return label + " (overdue)"
	}
	if color {
		return dimStyle.Render(label)
	}
	return label
}
