package api

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		creds      Credentials
		statusCode int
		response   AuthResponse
		wantErr    bool
	}{
		{
			name:       "successful login",
			creds:      Credentials{Email: "ada@example.com", Password: "hunter2"},
			statusCode: http.StatusOK,
			response: AuthResponse{
				Token: "tok-1",
				User:  User{ID: "u1", Name: "Ada", Email: "ada@example.com"},
			},
			wantErr: false,
		},
		{
			name:       "invalid credentials",
			creds:      Credentials{Email: "ada@example.com", Password: "wrong"},
			statusCode: http.StatusUnauthorized,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := mockServer(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST request, got %s", r.Method)
				}
				if r.URL.Path != "/auth/login" {
					t.Errorf("expected path /auth/login, got %s", r.URL.Path)
				}

				var creds Credentials
				json.NewDecoder(r.Body).Decode(&creds)
				if creds.Email != tt.creds.Email {
					t.Errorf("expected email %q, got %q", tt.creds.Email, creds.Email)
				}

				w.WriteHeader(tt.statusCode)
				if !tt.wantErr {
					json.NewEncoder(w).Encode(tt.response)
				}
			})
			defer server.Close()

			client := NewClient(server.URL)
			resp, err := client.Login(tt.creds)

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

			if resp.Token != tt.response.Token {
				t.Errorf("expected token %q, got %q", tt.response.Token, resp.Token)
			}
			if resp.User.Email != tt.response.User.Email {
				t.Errorf("expected user %q, got %q", tt.response.User.Email, resp.User.Email)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("expected path /auth/register, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(AuthResponse{
			Token: "tok-2",
			User:  User{ID: "u2", Name: "Grace", Email: "grace@example.com"},
		})
	})
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.Register(RegisterRequest{Name: "Grace", Email: "grace@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.User.ID != "u2" {
		t.Errorf("expected user u2, got %q", resp.User.ID)
	}
}

func TestGoogleLogin(t *testing.T) {
	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/google" {
			t.Errorf("expected path /auth/google, got %s", r.URL.Path)
		}

		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["idToken"] != "google-id-token" {
			t.Errorf("expected idToken field, got %v", body)
		}

		json.NewEncoder(w).Encode(AuthResponse{
			Token: "tok-3",
			User:  User{ID: "u3", GoogleID: "g-123"},
		})
	})
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.GoogleLogin("google-id-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.User.GoogleID != "g-123" {
		t.Errorf("expected google id g-123, got %q", resp.User.GoogleID)
	}
}

func TestMe(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    bool
	}{
		{name: "valid token", statusCode: http.StatusOK, wantErr: false},
		{name: "expired token", statusCode: http.StatusUnauthorized, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := mockServer(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/auth/me" {
					t.Errorf("expected path /auth/me, got %s", r.URL.Path)
				}
				w.WriteHeader(tt.statusCode)
				if !tt.wantErr {
					json.NewEncoder(w).Encode(User{ID: "u1", Email: "ada@example.com"})
				}
			})
			defer server.Close()

			client := NewClient(server.URL)
			client.SetToken("some-token")
			user, err := client.Me()

			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				apiErr, ok := AsAPIError(err)
				if !ok || !apiErr.IsUnauthorized() {
					t.Errorf("expected unauthorized APIError, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.ID != "u1" {
				t.Errorf("expected user u1, got %q", user.ID)
			}
		})
	}
}
