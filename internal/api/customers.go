package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Shashankyadav00/milk-attendance-system/pkg/models"
)

// ErrNameRequired is returned before any network call when a customer is
// submitted with a blank (whitespace-only) full name
var ErrNameRequired = errors.New("customer name is required")

// CustomerParams carries raw form input for creating a customer. Nickname
// and price are optional and normalized to null when blank.
type CustomerParams struct {
	FullName      string
	Nickname      string
	PricePerLitre string
	Shift         string
}

func (p *CustomerParams) normalize() (*models.Customer, error) {
	fullName := strings.TrimSpace(p.FullName)
	if fullName == "" {
		return nil, ErrNameRequired
	}

	c := &models.Customer{
		FullName: fullName,
		Shift:    p.Shift,
	}

	if nickname := strings.TrimSpace(p.Nickname); nickname != "" {
		c.Nickname = &nickname
	}

	if priceStr := strings.TrimSpace(p.PricePerLitre); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid price per litre: %q", p.PricePerLitre)
		}
		c.PricePerLitre = &price
	}

	return c, nil
}

// ListCustomers returns the customers of one shift
func (c *Client) ListCustomers(ctx context.Context, shift string) ([]models.Customer, error) {
	query := url.Values{}
	query.Set("shift", shift)

	var customers []models.Customer
	if err := c.do(ctx, "GET", "/api/customers", query, nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// CreateCustomer validates and creates a customer record. Validation
// failures never reach the network.
func (c *Client) CreateCustomer(ctx context.Context, p CustomerParams) (*models.Customer, error) {
	customer, err := p.normalize()
	if err != nil {
		return nil, err
	}

	customer.UserID, err = c.userIDNum()
	if err != nil {
		return nil, err
	}

	var created models.Customer
	if err := c.do(ctx, "POST", "/api/customers", nil, customer, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCustomer saves an edited record. The price is already coerced to a
// number or null by the caller; no conflict detection happens if the record
// changed between load and save.
func (c *Client) UpdateCustomer(ctx context.Context, id int64, customer *models.Customer) (*models.Customer, error) {
	var updated models.Customer
	path := fmt.Sprintf("/api/customers/%d", id)
	if err := c.do(ctx, "PUT", path, nil, customer, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCustomer removes a customer record
func (c *Client) DeleteCustomer(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/customers/%d", id)
	return c.do(ctx, "DELETE", path, nil, nil, nil)
}

// FindCustomer resolves a customer by id or by name (trimmed,
// case-insensitive, nickname accepted) within one shift. The CLI addresses
// customers by id wherever possible; names remain a display projection.
func (c *Client) FindCustomer(ctx context.Context, shift, ref string) (*models.Customer, error) {
	customers, err := c.ListCustomers(ctx, shift)
	if err != nil {
		return nil, err
	}

	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		for i := range customers {
			if customers[i].ID == id {
				return &customers[i], nil
			}
		}
	}

	want := models.NormalizeName(ref)
	for i := range customers {
		if models.NormalizeName(customers[i].FullName) == want {
			return &customers[i], nil
		}
		if customers[i].Nickname != nil && models.NormalizeName(*customers[i].Nickname) == want {
			return &customers[i], nil
		}
	}

	return nil, fmt.Errorf("no customer %q in %s shift", ref, shift)
}
