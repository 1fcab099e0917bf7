package view

import (
	"reflect"
	"testing"

	"github.com/taskdeck/taskdeck/internal/api"
)

func sampleTasks() []api.Task {
	return []api.Task{
		{
			ID:       "t1",
			Title:    "Quarterly report",
			Status:   api.StatusPending,
			Priority: api.PriorityHigh,
			Category: &api.Category{ID: "c1", Name: "Work"},
		},
		{
			ID:          "t2",
			Title:       "Buy milk",
			Description: "Oat milk for the report meeting",
			Status:      api.StatusCompleted,
			Priority:    api.PriorityLow,
		},
		{
			ID:       "t3",
			Title:    "Fix login bug",
			Status:   api.StatusInProgress,
			Priority: api.PriorityHigh,
			Category: &api.Category{ID: "c2", Name: "Dev"},
		},
		{
			ID:       "t4",
			Title:    "Plan sprint",
			Status:   api.StatusPending,
			Priority: api.PriorityMedium,
			Category: &api.Category{ID: "c1", Name: "Work"},
		},
	}
}

func ids(tasks []api.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{
			name:     "no criteria is identity",
			criteria: Criteria{},
			want:     []string{"t1", "t2", "t3", "t4"},
		},
		{
			name:     "all tab is identity",
			criteria: Criteria{Tab: TabAll},
			want:     []string{"t1", "t2", "t3", "t4"},
		},
		{
			name:     "pending tab",
			criteria: Criteria{Tab: TabPending},
			want:     []string{"t1", "t4"},
		},
		{
			name:     "in-progress tab",
			criteria: Criteria{Tab: TabInProgress},
			want:     []string{"t3"},
		},
		{
			name:     "all tab plus status equals status tab",
			criteria: Criteria{Tab: TabAll, Status: api.StatusCompleted},
			want:     []string{"t2"},
		},
		{
			name:     "contradictory tab and status yields empty",
			criteria: Criteria{Tab: TabCompleted, Status: api.StatusPending},
			want:     []string{},
		},
		{
			name:     "category filter",
			criteria: Criteria{CategoryID: "c1"},
			want:     []string{"t1", "t4"},
		},
		{
			name:     "priority filter",
			criteria: Criteria{Priority: api.PriorityHigh},
			want:     []string{"t1", "t3"},
		},
		{
			name:     "search is case-insensitive on title",
			criteria: Criteria{Search: "REPORT"},
			want:     []string{"t1", "t2"},
		},
		{
			name:     "search matches description",
			criteria: Criteria{Search: "oat milk"},
			want:     []string{"t2"},
		},
		{
			name: "all criteria ANDed",
			criteria: Criteria{
				Tab:        TabPending,
				CategoryID: "c1",
				Priority:   api.PriorityHigh,
				Search:     "quarterly",
			},
			want: []string{"t1"},
		},
		{
			name:     "no match",
			criteria: Criteria{Search: "nonexistent"},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(sampleTasks(), tt.criteria)
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("expected %v, got %v", tt.want, ids(got))
			}
		})
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	criteria := Criteria{Tab: TabPending, Priority: api.PriorityHigh}

	once := Apply(sampleTasks(), criteria)
	twice := Apply(once, criteria)

	if !reflect.DeepEqual(ids(once), ids(twice)) {
		t.Errorf("filter(filter(tasks, c), c) != filter(tasks, c): %v vs %v", ids(once), ids(twice))
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	tasks := sampleTasks()
	// Reverse the input; the output must follow the new order
	reversed := make([]api.Task, 0, len(tasks))
	for i := len(tasks) - 1; i >= 0; i-- {
		reversed = append(reversed, tasks[i])
	}

	got := Apply(reversed, Criteria{Tab: TabPending})
	if !reflect.DeepEqual(ids(got), []string{"t4", "t1"}) {
		t.Errorf("expected input order preserved, got %v", ids(got))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	tasks := sampleTasks()
	before := ids(tasks)

	Apply(tasks, Criteria{Tab: TabCompleted})

	if !reflect.DeepEqual(ids(tasks), before) {
		t.Error("input collection must not be mutated")
	}
}
