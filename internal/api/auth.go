package api

import "fmt"

// Me returns the user owning the current token. A 401 means the token is
// expired or invalid.
func (c *Client) Me() (*User, error) {
	var user User
	if err := c.Get("/auth/me", &user); err != nil {
		return nil, fmt.Errorf("failed to verify session: %w", err)
	}
	return &user, nil
}

// Login exchanges email/password credentials for a token and user.
func (c *Client) Login(creds Credentials) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.Post("/auth/login", creds, &resp); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return &resp, nil
}

// Register creates a new account and returns its token and user.
func (c *Client) Register(req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.Post("/auth/register", req, &resp); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	return &resp, nil
}

// GoogleLogin exchanges a Google ID token for a taskdeck token and user.
func (c *Client) GoogleLogin(idToken string) (*AuthResponse, error) {
	body := map[string]string{"idToken": idToken}

	var resp AuthResponse
	if err := c.Post("/auth/google", body, &resp); err != nil {
		return nil, fmt.Errorf("google login failed: %w", err)
	}
	return &resp, nil
}

// UpdateProfile replaces the current user's profile fields.
func (c *Client) UpdateProfile(req ProfileRequest) (*User, error) {
	var user User
	if err := c.Put("/auth/profile", req, &user); err != nil {
		return nil, fmt.Errorf("profile update failed: %w", err)
	}
	return &user, nil
}

// ChangePassword changes the current user's password.
func (c *Client) ChangePassword(req PasswordRequest) error {
	if err := c.Put("/auth/password", req, nil); err != nil {
		return fmt.Errorf("password change failed: %w", err)
	}
	return nil
}
