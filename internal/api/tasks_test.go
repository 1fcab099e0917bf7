package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"
)

func TestGetTasks(t *testing.T) {
	tests := []struct {
		name       string
		response   []Task
		statusCode int
		wantErr    bool
	}{
		{
			name: "successful request",
			response: []Task{
				{
					ID:       "t1",
					Title:    "Write report",
					Status:   StatusPending,
					Priority: PriorityLow,
				},
			},
			statusCode: http.StatusOK,
			wantErr:    false,
		},
		{
			name:       "empty collection",
			response:   []Task{},
			statusCode: http.StatusOK,
			wantErr:    false,
		},
		{
			name:       "unauthorized",
			statusCode: http.StatusUnauthorized,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := mockServer(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET request, got %s", r.Method)
				}
				if r.URL.Path != "/tasks" {
					t.Errorf("expected path /tasks, got %s", r.URL.Path)
				}

				w.WriteHeader(tt.statusCode)
				if tt.statusCode == http.StatusOK {
					json.NewEncoder(w).Encode(tt.response)
				}
			})
			defer server.Close()

			client := NewClient(server.URL)
			tasks, err := client.GetTasks()

			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			if len(tasks) != len(tt.response) {
				t.Errorf("expected %d tasks, got %d", len(tt.response), len(tasks))
			}

			if len(tasks) > 0 && tasks[0].Title != tt.response[0].Title {
				t.Errorf("expected title %q, got %q", tt.response[0].Title, tasks[0].Title)
			}
		})
	}
}

func TestGetTask(t *testing.T) {
	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks/t1" {
			t.Errorf("expected path /tasks/t1, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Task{ID: "t1", Title: "Write report"})
	})
	defer server.Close()

	client := NewClient(server.URL)
	task, err := client.GetTask("t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != "t1" {
		t.Errorf("expected id t1, got %q", task.ID)
	}
}

func TestCreateTask(t *testing.T) {
	tests := []struct {
		name       string
		request    CreateTaskRequest
		response   Task
		statusCode int
		wantErr    bool
	}{
		{
			name: "successful creation",
			request: CreateTaskRequest{
				Title:    "Buy milk",
				Status:   StatusPending,
				Priority: PriorityLow,
			},
			response: Task{
				ID:       "t9",
				Title:    "Buy milk",
				Status:   StatusPending,
				Priority: PriorityLow,
			},
			statusCode: http.StatusCreated,
			wantErr:    false,
		},
		{
			name: "validation error",
			request: CreateTaskRequest{
				Title: "",
			},
			statusCode: http.StatusBadRequest,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := mockServer(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST request, got %s", r.Method)
				}
				if r.Header.Get("Content-Type") != "application/json" {
					t.Error("expected Content-Type: application/json")
				}

				var req CreateTaskRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Errorf("failed to decode request: %v", err)
				}
				if req.Title != tt.request.Title {
					t.Errorf("expected title %q, got %q", tt.request.Title, req.Title)
				}

				w.WriteHeader(tt.statusCode)
				if !tt.wantErr {
					json.NewEncoder(w).Encode(tt.response)
				}
			})
			defer server.Close()

			client := NewClient(server.URL)
			task, err := client.CreateTask(tt.request)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			if task.ID != tt.response.ID {
				t.Errorf("expected server-assigned id %q, got %q", tt.response.ID, task.ID)
			}
		})
	}
}

func TestCreateTaskMultipart(t *testing.T) {
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST request, got %s", r.Method)
		}

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("expected multipart body: %v", err)
		}

		if got := r.FormValue("title"); got != "Buy milk" {
			t.Errorf("expected title field Buy milk, got %q", got)
		}
		if got := r.FormValue("dueDate"); got != due.Format(time.RFC3339) {
			t.Errorf("unexpected dueDate field %q", got)
		}

		files := r.MultipartForm.File["attachments"]
		if len(files) != 2 {
			t.Fatalf("expected 2 files under attachments, got %d", len(files))
		}
		if files[0].Filename != "receipt.pdf" {
			t.Errorf("expected first file receipt.pdf, got %q", files[0].Filename)
		}

		f, err := files[1].Open()
		if err != nil {
			t.Fatalf("failed to open uploaded file: %v", err)
		}
		defer f.Close()
		buf := make([]byte, 4)
		f.Read(buf)
		if string(buf) != "data" {
			t.Errorf("unexpected file content %q", buf)
		}

		json.NewEncoder(w).Encode(Task{
			ID:    "t10",
			Title: "Buy milk",
			Attachments: []Attachment{
				{ID: "a1", OriginalName: "receipt.pdf"},
				{ID: "a2", OriginalName: "photo.png"},
			},
		})
	})
	defer server.Close()

	client := NewClient(server.URL)
	task, err := client.CreateTaskMultipart(
		CreateTaskRequest{Title: "Buy milk", DueDate: &due},
		[]FilePart{
			{Name: "receipt.pdf", Data: []byte("%PDF")},
			{Name: "photo.png", Data: []byte("data")},
		},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(task.Attachments) != 2 {
		t.Errorf("expected 2 attachments, got %d", len(task.Attachments))
	}
}

func TestUpdateTask(t *testing.T) {
	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT request, got %s", r.Method)
		}
		if r.URL.Path != "/tasks/t1" {
			t.Errorf("expected path /tasks/t1, got %s", r.URL.Path)
		}

		var req map[string]interface{}
		json.NewDecoder(r.Body).Decode(&req)
		if req["status"] != "completed" {
			t.Errorf("expected status completed, got %v", req["status"])
		}
		if _, ok := req["title"]; ok {
			t.Error("unset fields must be omitted from the body")
		}

		json.NewEncoder(w).Encode(Task{ID: "t1", Title: "Write report", Status: StatusCompleted})
	})
	defer server.Close()

	client := NewClient(server.URL)
	task, err := client.UpdateTask("t1", UpdateTaskRequest{Status: StatusPtr(StatusCompleted)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Status != StatusCompleted {
		t.Errorf("expected status completed, got %q", task.Status)
	}
}

func TestDeleteTask(t *testing.T) {
	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE request, got %s", r.Method)
		}
		if r.URL.Path != "/tasks/t7" {
			t.Errorf("expected path /tasks/t7, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	defer server.Close()

	client := NewClient(server.URL)
	if err := client.DeleteTask("t7"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDeleteAttachment(t *testing.T) {
	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE request, got %s", r.Method)
		}
		if r.URL.Path != "/tasks/t1/attachments/a2" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	defer server.Close()

	client := NewClient(server.URL)
	if err := client.DeleteAttachment("t1", "a2"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCalendarEndpoints(t *testing.T) {
	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/calendar/tasks/t1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		switch r.Method {
		case http.MethodPost:
			json.NewEncoder(w).Encode(CalendarEventResponse{EventID: "ev42"})
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	})
	defer server.Close()

	client := NewClient(server.URL)

	resp, err := client.AddTaskToCalendar("t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.EventID != "ev42" {
		t.Errorf("expected event ev42, got %q", resp.EventID)
	}

	if err := client.RemoveTaskFromCalendar("t1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
