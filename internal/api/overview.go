package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/Shashankyadav00/milk-attendance-system/pkg/models"
)

// GetOverview fetches the precomputed month x customer delivery matrix.
// The response is recomputed fully server-side on every call; the client
// never patches it locally.
func (c *Client) GetOverview(ctx context.Context, shift string, month, year int) (*models.Overview, error) {
	query := url.Values{}
	query.Set("shift", shift)
	query.Set("month", strconv.Itoa(month))
	query.Set("year", strconv.Itoa(year))

	var ov models.Overview
	if err := c.do(ctx, "GET", "/api/overview", query, nil, &ov); err != nil {
		return nil, err
	}
	return &ov, nil
}
