package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Login posts credentials and, on success, replaces all persisted client
// state with the returned user identifier. The server message is returned
// verbatim on a business failure.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}

	var resp struct {
		envelope
		UserID json.Number `json:"userId"`
	}
	if err := c.do(ctx, "POST", "/api/auth/login", nil, body, &resp); err != nil {
		return "", err
	}
	if resp.failed() {
		return "", resp.err("Invalid credentials")
	}

	userID := resp.UserID.String()
	if userID == "" {
		return "", errors.New("login response carried no user id")
	}

	// Discard any prior session before storing the new identifier
	if err := c.session.SetUserID(userID); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}

	return userID, nil
}

// Register creates a new account. No session state changes; the caller is
// expected to log in afterwards.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}

	var resp envelope
	if err := c.do(ctx, "POST", "/api/auth/register", nil, body, &resp); err != nil {
		return err
	}
	if resp.failed() {
		return resp.err("Registration failed")
	}
	return nil
}

// ForgotPassword requests an OTP to be emailed. The server message is
// surfaced verbatim either way.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	body := map[string]string{"email": email}

	var resp envelope
	if err := c.do(ctx, "POST", "/api/auth/forgot", nil, body, &resp); err != nil {
		return "", err
	}
	if resp.failed() {
		return "", resp.err("Failed to send OTP")
	}
	return resp.text(), nil
}

// ResetPassword completes the OTP flow with the new password
func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) (string, error) {
	body := map[string]string{"email": email, "otp": otp, "newPassword": newPassword}

	var resp envelope
	if err := c.do(ctx, "POST", "/api/auth/reset", nil, body, &resp); err != nil {
		return "", err
	}
	if resp.failed() {
		return "", resp.err("Reset failed")
	}
	return resp.text(), nil
}
