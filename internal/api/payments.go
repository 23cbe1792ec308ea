package api

import (
	"context"
	"net/url"

	"github.com/Shashankyadav00/milk-attendance-system/pkg/models"
)

// ListPayments returns the payment rows of one shift. Rows are keyed by
// customer name; callers must match them to customers with
// models.NormalizeName.
func (c *Client) ListPayments(ctx context.Context, shift string) ([]models.Payment, error) {
	var resp struct {
		envelope
		Payments []models.Payment `json:"payments"`
	}
	if err := c.do(ctx, "GET", "/api/payments/"+url.PathEscape(shift), nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.failed() {
		return nil, resp.err("Failed to load payments")
	}
	return resp.Payments, nil
}

// SetPaid writes the paid flag for one customer for today. The flag is
// period-level, not tied to any displayed calendar day.
func (c *Client) SetPaid(ctx context.Context, customerName, shift string, paid bool) error {
	userID, err := c.userIDNum()
	if err != nil {
		return err
	}

	body := models.Payment{
		CustomerName: customerName,
		Shift:        shift,
		Paid:         paid,
		UserID:       userID,
	}

	var resp envelope
	if err := c.do(ctx, "POST", "/api/payments", nil, body, &resp); err != nil {
		return err
	}
	if resp.failed() {
		return resp.err("Failed to update payment status")
	}
	return nil
}

// UnpaidRows returns the server-filtered list of customers with an
// outstanding status for the current period
func (c *Client) UnpaidRows(ctx context.Context, shift string) ([]models.UnpaidRow, error) {
	query := url.Values{}
	query.Set("shift", shift)

	var resp struct {
		envelope
		Rows []models.UnpaidRow `json:"rows"`
	}
	if err := c.do(ctx, "GET", "/api/payments/unpaid", query, nil, &resp); err != nil {
		return nil, err
	}
	if resp.failed() {
		return nil, resp.err("Failed to load unpaid rows")
	}
	return resp.Rows, nil
}

// GetReminder loads the reminder configuration for one shift
func (c *Client) GetReminder(ctx context.Context, shift string) (*models.Reminder, error) {
	query := url.Values{}
	query.Set("shift", shift)

	var reminder models.Reminder
	if err := c.do(ctx, "GET", "/api/customers/reminder", query, nil, &reminder); err != nil {
		return nil, err
	}
	if reminder.Time == "" {
		reminder.Time = "08:00"
	}
	if reminder.RepeatDays < 1 {
		reminder.RepeatDays = 1
	}
	return &reminder, nil
}

// SaveReminder upserts the reminder configuration for one shift
func (c *Client) SaveReminder(ctx context.Context, shift string, reminder models.Reminder) error {
	userID, err := c.userIDNum()
	if err != nil {
		return err
	}

	body := struct {
		UserID int64  `json:"userId"`
		Shift  string `json:"shift"`
		models.Reminder
	}{UserID: userID, Shift: shift, Reminder: reminder}

	var resp envelope
	if err := c.do(ctx, "POST", "/api/payments/save-reminder", nil, body, &resp); err != nil {
		return err
	}
	if resp.failed() {
		return resp.err("Failed to save reminder")
	}
	return nil
}

// TriggerReminder fires a one-shot reminder without waiting for the
// configured schedule
func (c *Client) TriggerReminder(ctx context.Context, shift string) error {
	query := url.Values{}
	query.Set("shift", shift)

	var resp envelope
	if err := c.do(ctx, "POST", "/api/payments/trigger-reminder", query, nil, &resp); err != nil {
		return err
	}
	if resp.failed() {
		return resp.err("Failed to trigger reminder")
	}
	return nil
}

// SendUnpaidEmail dispatches the unpaid-customers report to the admin inbox
func (c *Client) SendUnpaidEmail(ctx context.Context, shift string) error {
	query := url.Values{}
	query.Set("shift", shift)

	var resp envelope
	if err := c.do(ctx, "POST", "/api/payments/email/unpaid", query, nil, &resp); err != nil {
		return err
	}
	if resp.failed() {
		return resp.err("Failed to send unpaid report")
	}
	return nil
}

// ListNotifications returns the read-only reminder email log
func (c *Client) ListNotifications(ctx context.Context, shift string) ([]models.Notification, error) {
	query := url.Values{}
	query.Set("shift", shift)

	var notifications []models.Notification
	if err := c.do(ctx, "GET", "/api/notifications", query, nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}
