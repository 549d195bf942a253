package marketplace

import "context"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Login exchanges credentials for a bearer token and the admin's profile.
// The result is never cached.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var result LoginResult
	err := c.api.Post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &result)
	return result, err
}

// UpdatePassword changes the authenticated admin's password.
func (c *Client) UpdatePassword(ctx context.Context, current, newPassword, confirm string) error {
	return c.api.Put(ctx, "/auth/update-password", updatePasswordRequest{
		CurrentPassword: current,
		NewPassword:     newPassword,
		ConfirmPassword: confirm,
	}, nil)
}
