package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Shashankyadav00/milk-attendance-system/pkg/models"
)

// ErrEntryIncomplete is returned before any network call when a delivery
// entry is missing its customer, litres or rate
var ErrEntryIncomplete = errors.New("customer, litres and rate are required")

// ListEntries returns the delivery entries of one shift
func (c *Client) ListEntries(ctx context.Context, shift string) ([]models.Entry, error) {
	query := url.Values{}
	query.Set("shift", shift)

	var entries []models.Entry
	if err := c.do(ctx, "GET", "/api/milk", query, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateEntry records one delivery. The amount is computed here, at submit
// time, and sent pre-computed; the server stores it as given. Validation is
// presence-only, matching the form it replaces.
func (c *Client) CreateEntry(ctx context.Context, entry models.Entry) (*models.Entry, error) {
	entry.CustomerName = strings.TrimSpace(entry.CustomerName)
	if entry.CustomerName == "" || entry.Litres == 0 || entry.Rate == 0 {
		return nil, ErrEntryIncomplete
	}

	entry.Amount = models.Amount(entry.Litres, entry.Rate)

	var err error
	entry.UserID, err = c.userIDNum()
	if err != nil {
		return nil, err
	}

	var created models.Entry
	if err := c.do(ctx, "POST", "/api/milk", nil, entry, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// QuickAddEntry submits an overview cell edit: the existing litres for the
// (day, customer) slot is the baseline, a step accumulates onto it, and a
// zero step resets the cell. The entry is dated to the clicked day and rated
// at the customer's configured price.
func (c *Client) QuickAddEntry(ctx context.Context, ov *models.Overview, customer *models.Customer, shift string, day int, step float64) (float64, error) {
	if day < 1 || day > ov.DaysInMonth {
		return 0, fmt.Errorf("day %d outside month (1-%d)", day, ov.DaysInMonth)
	}

	baseline := ov.Litres(day, customer.ID)
	litres := 0.0
	if step != 0 {
		litres = models.AddLitres(baseline, step)
	}

	rate := customer.Rate()
	entry := models.Entry{
		CustomerName: customer.DisplayName(),
		Shift:        shift,
		Date:         fmt.Sprintf("%04d-%02d-%02d", ov.Year, ov.Month, day),
		Litres:       litres,
		Rate:         rate,
		Amount:       models.Amount(litres, rate),
	}

	var err error
	entry.UserID, err = c.userIDNum()
	if err != nil {
		return 0, err
	}

	// Sent directly rather than through CreateEntry: a reset to zero litres
	// is a valid quick-entry submission
	if err := c.do(ctx, "POST", "/api/milk", nil, entry, nil); err != nil {
		return 0, err
	}
	return litres, nil
}

// DeleteEntry removes one delivery entry
func (c *Client) DeleteEntry(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/milk/%d", id)
	return c.do(ctx, "DELETE", path, nil, nil, nil)
}
