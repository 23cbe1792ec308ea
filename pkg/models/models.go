package models

// Shift names used as partition keys across customers, entries and payments
const (
	ShiftMorning = "Morning"
	ShiftNight   = "Night"
)

// Customer represents a milk delivery customer within one shift
type Customer struct {
	ID            int64    `json:"id"`
	FullName      string   `json:"fullName"`
	Nickname      *string  `json:"nickname"`
	PricePerLitre *float64 `json:"pricePerLitre"`
	Shift         string   `json:"shift"`
	UserID        int64    `json:"userId,omitempty"`
}

// DisplayName returns the full name, falling back to the nickname
func (c *Customer) DisplayName() string {
	if c.FullName != "" {
		return c.FullName
	}
	if c.Nickname != nil {
		return *c.Nickname
	}
	return ""
}

// Rate returns the configured price per litre, or 0 when unset
func (c *Customer) Rate() float64 {
	if c.PricePerLitre == nil {
		return 0
	}
	return *c.PricePerLitre
}

// Entry represents one recorded delivery (one customer, one date, one shift)
type Entry struct {
	ID           int64   `json:"id"`
	CustomerName string  `json:"customerName"`
	Shift        string  `json:"shift"`
	Date         string  `json:"date"` // YYYY-MM-DD
	Litres       float64 `json:"litres"`
	Rate         float64 `json:"rate"`
	Amount       float64 `json:"amount"`
	UserID       int64   `json:"userId,omitempty"`
}

// Payment represents the paid/unpaid flag for one customer in one shift
type Payment struct {
	ID           int64  `json:"id,omitempty"`
	CustomerName string `json:"customerName"`
	Shift        string `json:"shift"`
	Paid         bool   `json:"paid"`
	UserID       int64  `json:"userId,omitempty"`
}

// UnpaidRow is one row of the server-filtered unpaid customer list
type UnpaidRow struct {
	CustomerName string `json:"customerName"`
	Shift        string `json:"shift"`
}

// Reminder holds the per-shift email reminder configuration
type Reminder struct {
	Enabled    bool   `json:"enabled"`
	Time       string `json:"time"` // HH:MM
	RepeatDays int    `json:"repeatDays"`
}

// Notification is one read-only entry of the reminder email log
type Notification struct {
	ID       int64  `json:"id"`
	Subject  string `json:"subject"`
	DateSent string `json:"dateSent"`
}

// Cell is one (day, customer) slot of the overview matrix
type Cell struct {
	Litres float64 `json:"litres"`
}

// Overview is the server-computed month x customer delivery matrix.
// Totals come precomputed; the client never rederives them.
type Overview struct {
	Year                   int                    `json:"year"`
	Month                  int                    `json:"month"`
	DaysInMonth            int                    `json:"daysInMonth"`
	Customers              []Customer             `json:"customers"`
	Matrix                 map[int]map[int64]Cell `json:"matrix"`
	TotalLitresPerCustomer map[int64]float64      `json:"totalLitresPerCustomer"`
	TotalAmountPerCustomer map[int64]float64      `json:"totalAmountPerCustomer"`
	TotalPerDay            map[int]float64        `json:"totalPerDay"`
	GrandTotalAmount       float64                `json:"grandTotalAmount"`
	PaymentsToday          map[string]bool        `json:"paymentsToday"`
}

// Litres returns the recorded litres for a (day, customer) slot, 0 when empty
func (o *Overview) Litres(day int, customerID int64) float64 {
	if o.Matrix == nil {
		return 0
	}
	return o.Matrix[day][customerID].Litres
}

// PaidToday reports whether the customer is marked paid for today.
// paymentsToday is keyed by normalized customer name.
func (o *Overview) PaidToday(customerName string) bool {
	return o.PaymentsToday[NormalizeName(customerName)]
}
